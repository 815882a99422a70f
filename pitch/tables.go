package pitch

// symbolTable maps a recognized surface spelling to its Code within one
// notation system. Entries that would collide with an adjacent natural
// degree are intentionally absent (see the comment on names) — the
// tokenizer never offers them as pitch_candidates because no table
// accepts them.
type symbolTable map[string]Code

var numberTable = symbolTable{
	"1": Deg1, "1b": Deg1Flat, "1#": Deg1Sharp,
	"2": Deg2, "2b": Deg2Flat, "2#": Deg2Sharp,
	"3": Deg3, "3b": Deg3Flat,
	"4": Deg4, "4#": Deg4Sharp,
	"5": Deg5, "5b": Deg5Flat, "5#": Deg5Sharp,
	"6": Deg6, "6b": Deg6Flat, "6#": Deg6Sharp,
	"7": Deg7, "7b": Deg7Flat,
}

// westernTable assigns each natural letter the scale degree it holds in
// C major (C=1 .. B=7); Western
// input is read key-agnostically, the same way the teacher's NoteToMidi
// reads "C".."B" without reference to a track key.
var westernTable = symbolTable{
	"C": Deg1, "Cb": Deg1Flat, "C#": Deg1Sharp,
	"D": Deg2, "Db": Deg2Flat, "D#": Deg2Sharp,
	"E": Deg3, "Eb": Deg3Flat,
	"F": Deg4, "F#": Deg4Sharp,
	"G": Deg5, "Gb": Deg5Flat, "G#": Deg5Sharp,
	"A": Deg6, "Ab": Deg6Flat, "A#": Deg6Sharp,
	"B": Deg7, "Bb": Deg7Flat,
}

// sargamTable follows real Hindustani practice: S and P never take a
// komal/tivra variant (sa and pa are always shuddha); R, G, D, N take a
// lowercase komal (flat) spelling; Ma is the one exception where the case
// convention flips — lowercase "m" is shuddha (natural 4) and uppercase
// "M" is tivra (sharp 4).
var sargamTable = symbolTable{
	"S": Deg1,
	"R": Deg2, "r": Deg2Flat,
	"G": Deg3, "g": Deg3Flat,
	"m": Deg4, "M": Deg4Sharp,
	"P": Deg5,
	"D": Deg6, "d": Deg6Flat,
	"N": Deg7, "n": Deg7Flat,
}

// bhatkhandeTable maps Devanagari syllables (and their short komal forms)
// directly to Code; Bhatkhande tokens always vote unambiguously per §4.4.
var bhatkhandeTable = symbolTable{
	"स":  Deg1,
	"रे":  Deg2, "र": Deg2Flat,
	"ग":  Deg3,
	"म":  Deg4,
	"प":  Deg5,
	"ध":  Deg6, "द": Deg6Flat,
	"नि": Deg7,
}

func tableFor(sys System) symbolTable {
	switch sys {
	case Number:
		return numberTable
	case Western:
		return westernTable
	case Sargam:
		return sargamTable
	case Bhatkhande:
		return bhatkhandeTable
	}
	return nil
}

// Systems lists every notation system, in tie-break priority order
// (highest first): Sargam > Western > Number. Bhatkhande is listed first
// since a single Bhatkhande vote always wins outright (§4.4 pass 2, rule
// 1); it never participates in the priority tie-break.
var Systems = []System{Bhatkhande, Sargam, Western, Number}

// Candidates returns every System in which text is a recognized pitch
// symbol. Zero systems means text is not a pitch symbol at all (the
// tokenizer falls back to word/symbol classification). More than one
// system means the symbol is ambiguous and must wait for detector pass 2.
func Candidates(text string) []System {
	var out []System
	for _, sys := range Systems {
		if _, ok := tableFor(sys)[text]; ok {
			out = append(out, sys)
		}
	}
	return out
}

// Resolve looks up text's Code within a specific System. ok is false if
// text is not a valid symbol in that system.
func Resolve(text string, sys System) (Code, bool) {
	c, ok := tableFor(sys)[text]
	return c, ok
}

// IsBhatkhande reports whether text is only ever a Bhatkhande syllable —
// used by the tokenizer to recognize multi-codepoint Devanagari grapheme
// clusters as a single pitch_candidate.
func IsBhatkhande(text string) bool {
	_, ok := bhatkhandeTable[text]
	return ok
}

// MaxSymbolLen returns the longest surface spelling across all systems,
// counted in runes (code points), not grapheme clusters.
func MaxSymbolLen() int {
	max := 0
	for _, t := range Systems {
		for sym := range tableFor(t) {
			n := 0
			for range sym {
				n++
			}
			if n > max {
				max = n
			}
		}
	}
	return max
}
