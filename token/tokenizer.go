package token

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"notegrid/pitch"
)

// Tokenize scans text into a position-tagged token stream. Lines are
// split on "\n" (with "\r\n" normalized first); each line is scanned one
// grapheme cluster at a time via uniseg, so a Devanagari consonant plus
// its combining vowel sign (e.g. "रे") arrives as a single cluster and is
// matched as one pitch_candidate.
func Tokenize(text string) []Token {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	var out []Token
	for row, line := range lines {
		out = append(out, tokenizeLine(line, row)...)
		if row < len(lines)-1 {
			out = append(out, Token{Pos: Position{Row: row, Col: graphemeLen(line)}, Kind: KindNewline})
		}
	}
	return out
}

func graphemeLen(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n++
	}
	return n
}

// graphemeCount is the exported-package-internal name used by Token.Width.
func graphemeCount(s string) int {
	return graphemeLen(s)
}

// TokenizeLines splits text into rows and tokenizes each independently,
// without the cross-row Newline tokens Tokenize emits — convenient for
// stages (stave assembly) that already work row by row.
func TokenizeLines(text string) [][]Token {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([][]Token, len(lines))
	for row, line := range lines {
		out[row] = tokenizeLine(line, row)
	}
	return out
}

func clusters(line string) []string {
	var out []string
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func tokenizeLine(line string, row int) []Token {
	gs := clusters(line)
	var out []Token
	col := 0

	at := func(i int) string {
		if i < 0 || i >= len(gs) {
			return ""
		}
		return gs[i]
	}

	isSpace := func(g string) bool {
		return g == " " || g == "\t"
	}
	isBoundary := func(g string) bool {
		return g == "" || isSpace(g) || g == "_" || g == "|" || g == ":" || g == "." || g == "'"
	}
	isLetter := func(g string) bool { return g != "" && unicode.IsLetter([]rune(g)[0]) }
	// A note letter is a pitch only if the whole letter run from it spells notes ("SRG"), not a word ("night").
	letterPitchRun := func(j int) bool {
		for n, ok := 0, true; j < len(gs) && isLetter(gs[j]); j += n {
			if _, n, ok = matchPitch(gs, j); !ok {
				return false
			}
		}
		return true
	}

	i := 0
	for i < len(gs) {
		start := col
		g := gs[i]

		switch {
		case isSpace(g):
			n := 0
			for i < len(gs) && isSpace(gs[i]) {
				i++
				n++
			}
			out = append(out, Token{Pos: Position{row, start}, Kind: KindWhitespace, Len: n})
			col += n

		case g == "_":
			n := 0
			for i < len(gs) && gs[i] == "_" {
				i++
				n++
			}
			if n >= 3 {
				out = append(out, Token{Pos: Position{row, start}, Kind: KindUnderlineRun, Len: n})
			} else {
				for k := 0; k < n; k++ {
					out = append(out, Token{Pos: Position{row, start + k}, Kind: KindSymbol, Text: "_"})
				}
			}
			col += n

		case g == "|":
			switch at(i + 1) {
			case "|":
				out = append(out, Token{Pos: Position{row, start}, Kind: KindBarline, Barline: BarlineDouble})
				i += 2
				col += 2
			case "]":
				out = append(out, Token{Pos: Position{row, start}, Kind: KindBarline, Barline: BarlineFinal})
				i += 2
				col += 2
			case ":":
				out = append(out, Token{Pos: Position{row, start}, Kind: KindBarline, Barline: BarlineRepeatOpen})
				i += 2
				col += 2
			default:
				out = append(out, Token{Pos: Position{row, start}, Kind: KindBarline, Barline: BarlineSingle})
				i++
				col++
			}

		case g == ":":
			if at(i+1) == "|" {
				out = append(out, Token{Pos: Position{row, start}, Kind: KindBarline, Barline: BarlineRepeatClose})
				i += 2
				col += 2
			} else {
				out = append(out, Token{Pos: Position{row, start}, Kind: KindSymbol, Text: ":"})
				i++
				col++
			}

		default:
			if text, n, ok := matchPitch(gs, i); ok && (!isLetter(g) || letterPitchRun(i)) {
				out = append(out, Token{Pos: Position{row, start}, Kind: KindPitchCandidate, Text: text})
				i += n
				col += n
				continue
			}

			if g == "-" {
				prevWord := i > 0 && !isBoundary(gs[i-1]) && !isPitchStart(gs, i-1)
				nextWord := !isBoundary(at(i+1)) && !pitchStartsAt(gs, i+1)
				if !prevWord && !nextWord {
					out = append(out, Token{Pos: Position{row, start}, Kind: KindDash})
					i++
					col++
					continue
				}
			}

			if isASCIIDigit(g) {
				out = append(out, Token{Pos: Position{row, start}, Kind: KindDigit, Text: g})
				i++
				col++
				continue
			}

			// Word: maximal run of non-whitespace, non-barline,
			// non-underline characters; it stops at a non-letter
			// pitch_candidate (a digit), while note letters inside it
			// stay part of the word.
			var sb strings.Builder
			n := 0
			for i < len(gs) && !isBoundary(gs[i]) {
				if _, _, ok := matchPitch(gs, i); ok && !isLetter(gs[i]) {
					break
				}
				sb.WriteString(gs[i])
				i++
				n++
			}
			if n == 0 {
				// Single standalone symbol character (punctuation,
				// breath mark, dot, etc.) that didn't fit any other case.
				out = append(out, Token{Pos: Position{row, start}, Kind: KindSymbol, Text: g})
				i++
				col++
			} else {
				out = append(out, Token{Pos: Position{row, start}, Kind: KindWord, Text: sb.String()})
				col += n
			}
		}
	}

	return out
}

// matchPitch attempts the longest pitch_candidate starting at gs[i]:
// first a two-cluster form (base + trailing accidental), then a
// single-cluster form.
func matchPitch(gs []string, i int) (text string, n int, ok bool) {
	if i+1 < len(gs) {
		next := gs[i+1]
		if next == "#" || next == "b" {
			two := gs[i] + next
			if len(pitch.Candidates(two)) > 0 {
				return two, 2, true
			}
		}
	}
	one := gs[i]
	if len(pitch.Candidates(one)) > 0 {
		return one, 1, true
	}
	return "", 0, false
}

func isPitchStart(gs []string, i int) bool {
	_, _, ok := matchPitch(gs, i)
	return ok
}

func pitchStartsAt(gs []string, i int) bool {
	if i < 0 || i >= len(gs) {
		return false
	}
	return isPitchStart(gs, i)
}

func isASCIIDigit(g string) bool {
	return len(g) == 1 && g[0] >= '0' && g[0] <= '9'
}
