// Package lineclass assigns each input row a structural role using the
// content-based heuristics from spec §4.2. Upper/lower polarity is not
// decided here — that depends on a row's adjacency to a content row,
// which only the stave assembler (package stave) knows — this package
// only tells you whether a row COULD serve as an annotation row.
package lineclass

import (
	"strings"
	"unicode"

	"notegrid/token"
)

// Role is a row's structural classification.
type Role int

const (
	// RoleBlank: whitespace only. Acts as a stave separator.
	RoleBlank Role = iota
	// RoleContent: contains at least one pitch_candidate or barline.
	RoleContent
	// RoleAnnotation: non-blank, contains only the token classes a
	// slur/octave/beat-group/lyric row is allowed to carry. Whether it
	// ends up "before" or "after" a content row is decided by position.
	RoleAnnotation
	// RoleUnknown: non-blank, but neither Content nor a valid
	// Annotation row (e.g. bare dashes/digits with no pitch or
	// barline nearby). Rare; the assembler treats it as a separator.
	RoleUnknown
)

func (r Role) String() string {
	switch r {
	case RoleBlank:
		return "blank"
	case RoleContent:
		return "content"
	case RoleAnnotation:
		return "annotation"
	case RoleUnknown:
		return "unknown"
	}
	return "?"
}

// Classify assigns a Role to one row given its already-tokenized content.
func Classify(tokens []token.Token) Role {
	if isBlank(tokens) {
		return RoleBlank
	}
	if isContent(tokens) {
		return RoleContent
	}
	if isAnnotation(tokens) {
		return RoleAnnotation
	}
	return RoleUnknown
}

func isBlank(tokens []token.Token) bool {
	for _, tok := range tokens {
		if tok.Kind != token.KindWhitespace {
			return false
		}
	}
	return true
}

func isContent(tokens []token.Token) bool {
	for _, tok := range tokens {
		if tok.Kind == token.KindPitchCandidate || tok.Kind == token.KindBarline {
			return true
		}
	}
	return false
}

func isAnnotation(tokens []token.Token) bool {
	for _, tok := range tokens {
		switch tok.Kind {
		case token.KindUnderlineRun, token.KindSymbol, token.KindWhitespace, token.KindWord:
			// allowed
		default:
			return false
		}
	}
	return true
}

// LooksLikeLyrics reports whether an annotation row's non-whitespace
// spans are predominantly word tokens containing a hyphen or alphabetic
// content — the heuristic the stave assembler uses to mark a
// lower-annotation row as a lyrics row (TextLine.IsLyricsRow).
func LooksLikeLyrics(tokens []token.Token) bool {
	words, nonWords := 0, 0
	for _, tok := range tokens {
		switch tok.Kind {
		case token.KindWord:
			if strings.ContainsFunc(tok.Text, func(r rune) bool { return r == '-' || unicode.IsLetter(r) }) {
				words++
			} else {
				nonWords++
			}
		case token.KindUnderlineRun, token.KindSymbol:
			nonWords++
		}
	}
	if words == 0 {
		return false
	}
	return words >= nonWords
}
