// Package attach implements the spatial attacher (§4.5): it walks each
// Stave's upper and lower TextLines and, by column-range overlap against
// the content row, fills in the attachment fields ContentElements left
// zeroed — slur membership, beat grouping, octave shifts, and lyric
// syllables.
package attach

import "notegrid/stave"

// Resolve runs the attacher over every Stave in doc, in place.
func Resolve(doc *stave.Document) {
	for i := range doc.Staves {
		resolveStave(&doc.Staves[i])
	}
}

func resolveStave(st *stave.Stave) {
	for _, tl := range st.TextLinesBefore {
		for _, span := range tl.Spans {
			switch span.Kind {
			case stave.SpanUnderline:
				applySlur(st.ContentLine, span)
			case stave.SpanOctaveDot:
				shiftOctave(st.ContentLine, span, octaveDelta(span.Text))
			}
		}
	}

	lastSyllable := (*string)(nil)
	noteIdx := 0
	notes := noteIndices(st.ContentLine)

	for _, tl := range st.TextLinesAfter {
		for _, span := range tl.Spans {
			switch span.Kind {
			case stave.SpanUnderline:
				applyBeatGroup(st.ContentLine, span)
			case stave.SpanOctaveDot:
				shiftOctave(st.ContentLine, span, -octaveDelta(span.Text))
			case stave.SpanWord:
				if !tl.IsLyricsRow {
					continue
				}
				noteIdx, lastSyllable = assignSyllable(st.ContentLine, notes, noteIdx, span.Text, lastSyllable)
			case stave.SpanSymbol:
				if !tl.IsLyricsRow || span.Text != "_" {
					continue
				}
				noteIdx, lastSyllable = assignMelismaNote(st.ContentLine, notes, noteIdx, lastSyllable)
			}
		}
	}
}

// octaveDelta reports how many octaves one occurrence of a dot/colon
// glyph shifts a note: a plain dot is one octave, a colon (two dots
// stacked) is two.
func octaveDelta(text string) int8 {
	if text == ":" {
		return 2
	}
	return 1
}

// noteIndices returns the positions in elements that hold a Note, in
// column order (elements are already column-ordered by construction).
func noteIndices(elements []stave.MusicalElement) []int {
	var idx []int
	for i, el := range elements {
		if el.Kind == stave.ElemNote {
			idx = append(idx, i)
		}
	}
	return idx
}

// overlapping returns the indices (into elements) of every element whose
// column range intersects [colStart, colEnd), restricted to the supplied
// candidate kind via the filter.
func overlapping(elements []stave.MusicalElement, colStart, colEnd int, filter func(stave.MusicalElement) bool) []int {
	var hits []int
	for i, el := range elements {
		if el.ColEnd <= colStart || el.ColStart >= colEnd {
			continue
		}
		if filter == nil || filter(el) {
			hits = append(hits, i)
		}
	}
	return hits
}

func isNote(el stave.MusicalElement) bool { return el.Kind == stave.ElemNote }

// closestOverlap picks one element index out of candidates by the
// tie-break rule in §4.5: prefer Notes, then the element whose column
// center is nearest the span's own center.
func closestOverlap(elements []stave.MusicalElement, colStart, colEnd int) (int, bool) {
	hits := overlapping(elements, colStart, colEnd, nil)
	if len(hits) == 0 {
		return 0, false
	}

	center := float64(colStart+colEnd) / 2
	best := hits[0]
	bestIsNote := isNote(elements[best])
	bestDist := centerDist(elements[best], center)

	for _, h := range hits[1:] {
		hIsNote := isNote(elements[h])
		hDist := centerDist(elements[h], center)
		if hIsNote && !bestIsNote {
			best, bestIsNote, bestDist = h, true, hDist
			continue
		}
		if hIsNote == bestIsNote && hDist < bestDist {
			best, bestDist = h, hDist
		}
	}
	return best, true
}

func centerDist(el stave.MusicalElement, center float64) float64 {
	elCenter := float64(el.ColStart+el.ColEnd) / 2
	d := elCenter - center
	if d < 0 {
		d = -d
	}
	return d
}

// applySlur marks every Note under an upper underline span as part of a
// slur, tagging the first Note Begin and the last End when the span
// covers at least two Notes (§8's worked example: a run covering three
// notes marks all three in_slur, the first Begin, the last End). A span
// over a single Note sets InSlur and leaves SlurRole at SlurNone.
func applySlur(elements []stave.MusicalElement, span stave.Span) {
	hits := overlapping(elements, span.ColStart, span.ColEnd, isNote)
	for _, h := range hits {
		elements[h].InSlur = true
	}
	if len(hits) >= 2 {
		elements[hits[0]].SlurRole = stave.SlurBegin
		elements[hits[len(hits)-1]].SlurRole = stave.SlurEnd
	}
}

// applyBeatGroup marks every Note under a lower underline span as beamed
// together.
func applyBeatGroup(elements []stave.MusicalElement, span stave.Span) {
	hits := overlapping(elements, span.ColStart, span.ColEnd, isNote)
	for _, h := range hits {
		elements[h].InBeatGroup = true
	}
}

// shiftOctave nudges the single closest Note under a dot/colon span by
// delta octaves.
func shiftOctave(elements []stave.MusicalElement, span stave.Span, delta int8) {
	i, ok := closestOverlap(elements, span.ColStart, span.ColEnd)
	if !ok || elements[i].Kind != stave.ElemNote {
		return
	}
	elements[i].Octave += delta
}

// isInteriorSlurMember reports whether a Note is a non-first member of a
// slur — interior or the closing End — that inherits its syllable from
// the note before it rather than consuming a new lyric span (melisma).
func isInteriorSlurMember(el stave.MusicalElement) bool {
	return el.InSlur && el.SlurRole != stave.SlurBegin
}

// assignSyllable consumes the next assignable note (skipping interior
// slur members, which melisma onto the previous syllable) and gives it
// span's text as its Syllable. It returns the updated walk state.
func assignSyllable(elements []stave.MusicalElement, notes []int, noteIdx int, text string, lastSyllable *string) (int, *string) {
	for noteIdx < len(notes) && isInteriorSlurMember(elements[notes[noteIdx]]) {
		elements[notes[noteIdx]].Syllable = lastSyllable
		noteIdx++
	}
	if noteIdx >= len(notes) {
		return noteIdx, lastSyllable
	}
	s := text
	elements[notes[noteIdx]].Syllable = &s
	noteIdx++
	return noteIdx, &s
}

// assignMelismaNote handles a standalone "_" span: it consumes the next
// assignable note but repeats the previous syllable instead of reading
// new text, extending the melisma by one note.
func assignMelismaNote(elements []stave.MusicalElement, notes []int, noteIdx int, lastSyllable *string) (int, *string) {
	for noteIdx < len(notes) && isInteriorSlurMember(elements[notes[noteIdx]]) {
		elements[notes[noteIdx]].Syllable = lastSyllable
		noteIdx++
	}
	if noteIdx >= len(notes) {
		return noteIdx, lastSyllable
	}
	elements[notes[noteIdx]].Syllable = lastSyllable
	noteIdx++
	return noteIdx, lastSyllable
}
