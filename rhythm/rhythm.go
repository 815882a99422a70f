// Package rhythm implements the rhythm finite-state machine (§4.6): it
// partitions a content row into Beats, accounts for dash-extensions and
// breath-mark breaks, classifies each Beat as regular or tuplet, and
// emits every element's exact rational duration.
package rhythm

import "notegrid/stave"

// Resolve runs the FSM over every Stave in doc, populating Stave.Beats
// and backfilling Duration/TiedToPrev onto the first (non-tied)
// occurrence of each Note/Rest in Stave.ContentLine. The FSM never
// fails: malformed input (a Dash with nothing to extend) becomes a Rest.
func Resolve(doc *stave.Document) {
	for i := range doc.Staves {
		resolveStave(&doc.Staves[i])
	}
}

// item is one element accumulated inside a Beat before its Duration can
// be computed (that needs the Beat's total divisions, known only once
// the Beat ends).
type item struct {
	el      stave.MusicalElement
	sub     int
	tied    bool
	origIdx int // index into the Stave's ContentLine, or -1 if synthesized
}

func resolveStave(st *stave.Stave) {
	elements := st.ContentLine
	var beats []stave.Beat

	var carry *stave.MusicalElement
	carryBroken := true

	i := 0
	for i < len(elements) {
		switch elements[i].Kind {
		case stave.ElemSpace, stave.ElemBarline:
			i++
			continue
		}

		start := i
		for i < len(elements) && elements[i].Kind != stave.ElemSpace && elements[i].Kind != stave.ElemBarline {
			i++
		}
		run := elements[start:i]
		indices := make([]int, len(run))
		for k := range run {
			indices[k] = start + k
		}

		beat, nextCarry, nextBroken := processBeat(run, indices, elements, carry, carryBroken)
		if beat != nil {
			beats = append(beats, *beat)
		}
		carry = nextCarry
		carryBroken = nextBroken
	}

	st.Beats = beats
}

// processBeat runs the subdivision-accounting scan (§4.6 steps 1-4) over
// one space/barline-delimited run, then classifies the resulting Beat
// and computes every element's reduced duration.
func processBeat(run []stave.MusicalElement, indices []int, content []stave.MusicalElement, carry *stave.MusicalElement, carryBroken bool) (*stave.Beat, *stave.MusicalElement, bool) {
	var items []item
	var current *item
	// broken tracks whether a breath mark has been seen since the last
	// Note/Rest started — it starts from carryBroken and reports the state
	// as of the END of this run (a fresh Note or Rest later in the same
	// run always supersedes an earlier breath; a run with neither keeps
	// the incoming state).
	broken := carryBroken

	flush := func() {
		if current != nil {
			items = append(items, *current)
			current = nil
		}
	}

	if len(run) > 0 && run[0].Kind == stave.ElemDash && carry != nil && !carryBroken {
		c := *carry
		current = &item{el: c, sub: 0, tied: true, origIdx: -1}
	}

	for idx, el := range run {
		switch el.Kind {
		case stave.ElemNote:
			flush()
			current = &item{el: el, sub: 1, tied: false, origIdx: indices[idx]}
			broken = false

		case stave.ElemDash:
			if current != nil && current.el.ExtendableNote {
				current.sub++
			} else {
				flush()
				rest := stave.MusicalElement{
					Kind:           stave.ElemRest,
					Source:         el.Source,
					ColStart:       el.ColStart,
					ColEnd:         el.ColEnd,
					ExtendableNote: true,
				}
				current = &item{el: rest, sub: 1, tied: false, origIdx: -1}
				broken = false
			}

		case stave.ElemBreath:
			flush()
			broken = true

		case stave.ElemWord:
			// permissive content (§4.3): ignored by the FSM entirely.
		}
	}
	flush()

	if len(items) == 0 {
		return nil, carry, broken
	}

	divisions := 0
	for _, it := range items {
		divisions += it.sub
	}

	isTuplet := divisions&(divisions-1) != 0
	var ratio stave.Fraction
	if isTuplet {
		ratio = stave.Fraction{Num: divisions, Den: largestPowerOfTwoBelow(divisions)}
	}

	beat := &stave.Beat{Divisions: divisions, IsTuplet: isTuplet, TupletRatio: ratio}
	for _, it := range items {
		el := it.el
		el.TiedToPrev = it.tied
		dur := stave.NewFraction(it.sub, divisions*4)
		el.Duration = &dur
		beat.Elements = append(beat.Elements, stave.BeatElement{Element: el, Subdivisions: it.sub})

		if it.origIdx >= 0 && !it.tied {
			content[it.origIdx].Duration = &dur
			content[it.origIdx].TiedToPrev = false
		}
	}

	last := items[len(items)-1].el
	return beat, &last, broken
}

// largestPowerOfTwoBelow returns the largest power of two strictly less
// than d (§8 invariant 4: P = 2^floor(log2(d-1))).
func largestPowerOfTwoBelow(d int) int {
	p := 1
	for p*2 < d {
		p *= 2
	}
	return p
}
