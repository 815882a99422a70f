// Package postprocess implements the stave post-processor (§4.7): it
// walks the rhythm FSM's Beat output in order, resolves slur Begin/End
// into matched pairs (diagnosing, never failing, on imbalance),
// propagates syllables across notes the spatial attacher left bare
// (tied continuations and interior slur members), and assembles the
// final renderer-ready ProcessedStave.
package postprocess

import (
	"fmt"

	"notegrid/pitch"
	"notegrid/stave"
	"notegrid/token"
)

// ItemKind tags whether a ProcessedStave entry is a Beat or a pass-through
// Barline.
type ItemKind int

const (
	ItemBeat ItemKind = iota
	ItemBarline
)

// Item is one renderer-facing entry in left-to-right order.
type Item struct {
	Kind    ItemKind
	Beat    stave.Beat
	Barline token.BarlineStyle
}

// ProcessedStave is the final, renderer-ready form of one Stave.
type ProcessedStave struct {
	TextLinesBefore []stave.TextLine
	TextLinesAfter  []stave.TextLine
	DetectedSystem  pitch.System
	Items           []Item
}

// Process runs the post-processor over every Stave in doc (which must
// already have had detect/attach/rhythm applied) and returns the final
// ProcessedStaves. Diagnostics for unbalanced slurs are appended to
// doc.Diagnostics.
func Process(doc *stave.Document) []ProcessedStave {
	out := make([]ProcessedStave, 0, len(doc.Staves))
	for i := range doc.Staves {
		st := &doc.Staves[i]
		items := buildItems(st.ContentLine, st.Beats)
		propagateSyllables(items)
		doc.Diagnostics = append(doc.Diagnostics, checkSlurBalance(st.ContentLine)...)

		out = append(out, ProcessedStave{
			TextLinesBefore: st.TextLinesBefore,
			TextLinesAfter:  st.TextLinesAfter,
			DetectedSystem:  st.DetectedSystem,
			Items:           items,
		})
	}
	return out
}

// buildItems re-walks a content row using the same space/barline
// segmentation the rhythm FSM used, matching each non-empty run back to
// its Beat by position. A run contributes a Beat only if it held at
// least one Note or Dash — the same condition that makes processBeat
// flush a non-empty item list.
func buildItems(elements []stave.MusicalElement, beats []stave.Beat) []Item {
	var items []Item
	beatIdx := 0

	i := 0
	for i < len(elements) {
		switch elements[i].Kind {
		case stave.ElemBarline:
			items = append(items, Item{Kind: ItemBarline, Barline: elements[i].BarlineStyle})
			i++
			continue
		case stave.ElemSpace:
			i++
			continue
		}

		start := i
		for i < len(elements) && elements[i].Kind != stave.ElemSpace && elements[i].Kind != stave.ElemBarline {
			i++
		}

		hasBeat := false
		for _, el := range elements[start:i] {
			if el.Kind == stave.ElemNote || el.Kind == stave.ElemDash {
				hasBeat = true
				break
			}
		}
		if hasBeat && beatIdx < len(beats) {
			items = append(items, Item{Kind: ItemBeat, Beat: beats[beatIdx]})
			beatIdx++
		}
	}
	return items
}

// propagateSyllables fills in Syllable on notes the attacher left bare
// because they are tied continuations or interior slur members, rather
// than leaving renderers to notice the gap themselves.
func propagateSyllables(items []Item) {
	var lastSyllable *string
	for ii := range items {
		if items[ii].Kind != ItemBeat {
			continue
		}
		elems := items[ii].Beat.Elements
		for j := range elems {
			el := &elems[j].Element
			if el.Kind != stave.ElemNote {
				continue
			}
			if el.Syllable != nil {
				lastSyllable = el.Syllable
				continue
			}
			if el.TiedToPrev || (el.InSlur && el.SlurRole != stave.SlurBegin) {
				el.Syllable = lastSyllable
			}
		}
	}
}

// checkSlurBalance walks a content row's Notes in column order and
// verifies every SlurBegin has a matching SlurEnd. Imbalance never
// fails the pipeline — it produces a best-effort diagnostic instead.
func checkSlurBalance(elements []stave.MusicalElement) []stave.Diagnostic {
	var diags []stave.Diagnostic
	depth := 0
	for _, el := range elements {
		if el.Kind != stave.ElemNote {
			continue
		}
		switch el.SlurRole {
		case stave.SlurBegin:
			depth++
		case stave.SlurEnd:
			if depth == 0 {
				diags = append(diags, stave.Diagnostic{
					Pos:      el.Source,
					Severity: stave.SeverityWarning,
					Message:  "slur end with no matching begin",
				})
				continue
			}
			depth--
		}
	}
	if depth > 0 {
		diags = append(diags, stave.Diagnostic{
			Severity: stave.SeverityWarning,
			Message:  fmt.Sprintf("%d unmatched slur begin(s)", depth),
		})
	}
	return diags
}
