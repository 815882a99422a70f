package stave

import (
	"notegrid/pitch"
	"notegrid/token"
)

// ContentElements converts one content row's raw tokens into the
// MusicalElement sequence spec §3/§4.4 describes. Ambiguous pitch tokens
// are left with System unset and AmbiguousIn populated — package detect
// resolves them in pass 2. Breath marks ("'") become ElemBreath; any
// other stray symbol, and any unmatched digit, becomes a permissive
// ElemWord so the rhythm FSM can ignore it without choking on it.
func ContentElements(tokens []token.Token) []MusicalElement {
	var out []MusicalElement
	for _, tok := range tokens {
		start := tok.Pos.Col
		end := start + tok.Width()

		switch tok.Kind {
		case token.KindPitchCandidate:
			el := MusicalElement{
				Kind: ElemNote, Source: tok.Pos, ColStart: start, ColEnd: end,
				ExtendableNote: true, Symbol: tok.Text,
			}
			cands := pitch.Candidates(tok.Text)
			if len(cands) == 1 {
				el.System = cands[0]
				el.Pitch, _ = pitch.Resolve(tok.Text, cands[0])
			} else {
				el.AmbiguousIn = cands
			}
			out = append(out, el)

		case token.KindDash:
			out = append(out, MusicalElement{Kind: ElemDash, Source: tok.Pos, ColStart: start, ColEnd: end})

		case token.KindBarline:
			out = append(out, MusicalElement{
				Kind: ElemBarline, Source: tok.Pos, ColStart: start, ColEnd: end,
				BarlineStyle: tok.Barline,
			})

		case token.KindWhitespace:
			out = append(out, MusicalElement{
				Kind: ElemSpace, Source: tok.Pos, ColStart: start, ColEnd: end,
				SpaceCount: tok.Len,
			})

		case token.KindWord, token.KindDigit:
			out = append(out, MusicalElement{Kind: ElemWord, Source: tok.Pos, ColStart: start, ColEnd: end, Text: tok.Text})

		case token.KindSymbol:
			if tok.Text == "'" {
				out = append(out, MusicalElement{Kind: ElemBreath, Source: tok.Pos, ColStart: start, ColEnd: end})
			} else {
				out = append(out, MusicalElement{Kind: ElemWord, Source: tok.Pos, ColStart: start, ColEnd: end, Text: tok.Text})
			}

		case token.KindUnderlineRun:
			// An underline run embedded in a content row has no rhythm
			// meaning; preserve it as filler so columns still line up.
			out = append(out, MusicalElement{Kind: ElemWord, Source: tok.Pos, ColStart: start, ColEnd: end, Text: tok.Text})
		}
	}
	return out
}

// TextLineFromTokens converts one annotation row's raw tokens into a
// TextLine of (col_start, col_end, kind, text) spans, skipping
// whitespace gaps entirely.
func TextLineFromTokens(row int, tokens []token.Token) TextLine {
	tl := TextLine{Row: row}
	for _, tok := range tokens {
		start := tok.Pos.Col
		end := start + tok.Width()

		switch tok.Kind {
		case token.KindUnderlineRun:
			tl.Spans = append(tl.Spans, Span{ColStart: start, ColEnd: end, Kind: SpanUnderline, Text: tok.Text})
		case token.KindWord:
			tl.Spans = append(tl.Spans, Span{ColStart: start, ColEnd: end, Kind: SpanWord, Text: tok.Text})
		case token.KindSymbol:
			if tok.Text == "." || tok.Text == ":" {
				tl.Spans = append(tl.Spans, Span{ColStart: start, ColEnd: end, Kind: SpanOctaveDot, Text: tok.Text})
			} else {
				tl.Spans = append(tl.Spans, Span{ColStart: start, ColEnd: end, Kind: SpanSymbol, Text: tok.Text})
			}
		case token.KindWhitespace:
			// gaps between spans carry no information
		}
	}
	return tl
}
