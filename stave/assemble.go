package stave

import (
	"strings"
	"unicode/utf8"

	"notegrid/lineclass"
	"notegrid/token"
)

// ParseError reports the parse-stage-only failure modes from §7:
// undecodable input. Every later stage is total and reports diagnostics
// instead of failing.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// Parse runs the tokenizer, line classifier, and stave assembler over
// raw text and returns an unresolved Document: content rows carry
// Notes whose ambiguous pitches have not yet been assigned a System
// (that's package detect), and no spans have been attached or durations
// computed yet (packages attach and rhythm). Empty input yields a
// zero-stave Document with no diagnostics, per the boundary behavior in
// spec §8 — it is not treated as an InputError.
func Parse(text string) (*Document, error) {
	if !utf8.ValidString(text) {
		return nil, &ParseError{Message: "input is not valid UTF-8"}
	}

	doc := &Document{}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	meta, body := ExtractMetadata(lines)
	doc.Metadata = meta

	tokenLines := token.TokenizeLines(strings.Join(body, "\n"))
	roles := make([]lineclass.Role, len(tokenLines))
	for i, tl := range tokenLines {
		roles[i] = lineclass.Classify(tl)
	}

	doc.Staves = assembleStaves(tokenLines, roles)
	return doc, nil
}

// assembleStaves groups blank-separated runs of rows into Staves, one
// per content row within a run, per §4.3.
func assembleStaves(tokenLines [][]token.Token, roles []lineclass.Role) []Stave {
	var staves []Stave

	runStart := 0
	for runStart < len(roles) {
		if roles[runStart] == lineclass.RoleBlank {
			runStart++
			continue
		}
		runEnd := runStart
		for runEnd < len(roles) && roles[runEnd] != lineclass.RoleBlank {
			runEnd++
		}

		staves = append(staves, assembleRun(tokenLines[runStart:runEnd], roles[runStart:runEnd])...)
		runStart = runEnd
	}

	return staves
}

// assembleRun handles one blank-delimited run of rows, possibly
// containing more than one content row.
func assembleRun(tokenLines [][]token.Token, roles []lineclass.Role) []Stave {
	var contentIdx []int
	for i, r := range roles {
		if r == lineclass.RoleContent {
			contentIdx = append(contentIdx, i)
		}
	}

	staves := make([]Stave, 0, len(contentIdx))
	for n, ci := range contentIdx {
		lowerBound := 0
		if n > 0 {
			lowerBound = contentIdx[n-1] + 1
		}
		upperBound := len(roles) - 1
		if n+1 < len(contentIdx) {
			upperBound = contentIdx[n+1] - 1
		}

		before := annotationRun(tokenLines, roles, ci-1, lowerBound, -1)
		after := annotationRun(tokenLines, roles, ci+1, upperBound, 1)

		for i := range after {
			after[i].IsLyricsRow = lineclass.LooksLikeLyrics(tokenLines[after[i].Row])
		}

		staves = append(staves, Stave{
			TextLinesBefore: before,
			ContentLine:     ContentElements(tokenLines[ci]),
			TextLinesAfter:  after,
		})
	}
	return staves
}

// annotationRun walks from start toward bound (inclusive) in the given
// direction, collecting the maximal contiguous run of RoleAnnotation
// rows, and returns them in row order regardless of walk direction.
func annotationRun(tokenLines [][]token.Token, roles []lineclass.Role, start, bound, dir int) []TextLine {
	var rows []int
	for i := start; (dir < 0 && i >= bound) || (dir > 0 && i <= bound); i += dir {
		if roles[i] != lineclass.RoleAnnotation {
			break
		}
		rows = append(rows, i)
	}
	if dir < 0 {
		for l, r := 0, len(rows)-1; l < r; l, r = l+1, r-1 {
			rows[l], rows[r] = rows[r], rows[l]
		}
	}

	out := make([]TextLine, 0, len(rows))
	for _, r := range rows {
		out = append(out, TextLineFromTokens(r, tokenLines[r]))
	}
	return out
}
