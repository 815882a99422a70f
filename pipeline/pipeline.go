// Package pipeline exposes the two conceptual entry points from §6:
// Parse (text → Document) and Process (Document → ProcessedStaves). It
// owns no state of its own — it only sequences the five pipeline
// stages in order, exactly as the concurrency model in §5 requires.
package pipeline

import (
	"notegrid/attach"
	"notegrid/detect"
	"notegrid/postprocess"
	"notegrid/rhythm"
	"notegrid/stave"
)

// Parse runs the tokenizer, classifier, and stave assembler, returning
// an unresolved Document. It is the only stage that can fail — every
// later stage is total.
func Parse(text string) (*stave.Document, error) {
	return stave.Parse(text)
}

// Process runs detect, attach, and rhythm over doc in place, then the
// post-processor, returning the final renderer-ready ProcessedStaves.
// doc is mutated; callers that need the unresolved Document should Parse
// again rather than reuse doc afterward.
func Process(doc *stave.Document) []postprocess.ProcessedStave {
	detect.Resolve(doc)
	attach.Resolve(doc)
	rhythm.Resolve(doc)
	return postprocess.Process(doc)
}

// Run is the one-shot convenience entry point most callers want: parse
// then process, in a single call.
func Run(text string) (*stave.Document, []postprocess.ProcessedStave, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, nil, err
	}
	return doc, Process(doc), nil
}
