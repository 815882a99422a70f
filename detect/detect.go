// Package detect implements the two-pass notation-system detector (§4.4):
// gather per-note votes, then resolve every ambiguous note in a stave to
// the one NotationSystem the stave is written in.
package detect

import (
	"notegrid/pitch"
	"notegrid/stave"
)

// Resolve runs the detector over every Stave in doc, setting
// Stave.DetectedSystem and rewriting every ambiguous Note's Pitch/System
// in place. Diagnostics (AmbiguityUnresolved) are appended to
// doc.Diagnostics; detection never fails.
func Resolve(doc *stave.Document) {
	for i := range doc.Staves {
		st := &doc.Staves[i]
		chosen, diags := resolveStave(st.ContentLine)
		st.DetectedSystem = chosen
		doc.Diagnostics = append(doc.Diagnostics, diags...)
	}
}

func resolveStave(elements []stave.MusicalElement) (pitch.System, []stave.Diagnostic) {
	votes := map[pitch.System]int{}
	for _, el := range elements {
		if el.Kind != stave.ElemNote {
			continue
		}
		if len(el.AmbiguousIn) == 0 {
			votes[el.System]++
		}
	}

	var diags []stave.Diagnostic
	chosen := pick(votes)
	if chosen == pitch.Bhatkhande {
		// Bhatkhande is its own unambiguous alphabet; a Bhatkhande vote
		// always wins outright (§4.4 pass 2, rule 1).
	} else if votes[pitch.Sargam] == 0 && votes[pitch.Western] == 0 && votes[pitch.Number] == 0 {
		hasAmbiguous := false
		for _, el := range elements {
			if el.Kind == stave.ElemNote && len(el.AmbiguousIn) > 0 {
				hasAmbiguous = true
				break
			}
		}
		if hasAmbiguous {
			diags = append(diags, stave.Diagnostic{
				Severity: stave.SeverityWarning,
				Message:  "all notes ambiguous and no system received a vote; resolving by tie-break order Sargam > Western > Number",
			})
		}
		chosen = pitch.Number
	}

	// chosen (rule 4's Number default, or pick's own tie-break) may still
	// be unable to spell a given ambiguous symbol — Number never shares a
	// spelling with Sargam/Western/Bhatkhande. When that happens, walk the
	// tie-break order (Sargam > Western > Number) for the first system
	// that does, and promote chosen to it so every note in the stave, and
	// DetectedSystem itself, end up agreeing on one system (§3).
	for i := range elements {
		el := &elements[i]
		if el.Kind != stave.ElemNote || len(el.AmbiguousIn) == 0 {
			continue
		}
		code, ok := pitch.Resolve(el.Symbol, chosen)
		if !ok {
			fallback, fcode, fok := resolveFallback(el.Symbol, chosen)
			if !fok {
				diags = append(diags, stave.Diagnostic{
					Pos:      el.Source,
					Severity: stave.SeverityError,
					Message:  "internal: ambiguous symbol " + el.Symbol + " has no mapping in any notation system",
				})
				continue
			}
			chosen, code, ok = fallback, fcode, fok
		}
		el.Pitch = code
		el.System = chosen
		el.AmbiguousIn = nil
	}

	return chosen, diags
}

// resolveFallback walks the tie-break order (Sargam > Western > Number),
// skipping exclude (the system that just failed), and returns the first
// system able to spell symbol.
func resolveFallback(symbol string, exclude pitch.System) (pitch.System, pitch.Code, bool) {
	for _, sys := range []pitch.System{pitch.Sargam, pitch.Western, pitch.Number} {
		if sys == exclude {
			continue
		}
		if code, ok := pitch.Resolve(symbol, sys); ok {
			return sys, code, true
		}
	}
	return 0, 0, false
}

// pick applies pass-2 rule 1 (Bhatkhande wins outright) and rule 2/3
// (highest unambiguous vote count, tie-broken Sargam > Western > Number).
func pick(votes map[pitch.System]int) pitch.System {
	if votes[pitch.Bhatkhande] > 0 {
		return pitch.Bhatkhande
	}

	best := pitch.Number
	bestVotes := -1
	for _, sys := range []pitch.System{pitch.Sargam, pitch.Western, pitch.Number} {
		v := votes[sys]
		if v > bestVotes || (v == bestVotes && sys.Priority() > best.Priority()) {
			bestVotes = v
			best = sys
		}
	}
	return best
}
