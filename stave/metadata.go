package stave

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ExtractMetadata peels a leading "key: value" attribute block off lines
// (title/author/key/tempo) and decodes it with yaml.Unmarshal into the
// yaml-tagged Metadata struct, the way the teacher's BTML parser reads
// its track header. Collection stops at the first blank line or the
// first line that isn't a bare "key: value" pair — whichever comes
// first. A decode error is ignored rather than failing the whole parse
// (fields that did not decode stay zero); the core never fails past the
// UTF-8 check (§7).
func ExtractMetadata(lines []string) (Metadata, []string) {
	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		if !looksLikeAttributeLine(trimmed) {
			break
		}
		i++
	}

	var meta Metadata
	if i > 0 {
		block := strings.Join(lines[:i], "\n")
		_ = yaml.Unmarshal([]byte(block), &meta)
	}
	return meta, lines[i:]
}

// looksLikeAttributeLine reports whether a trimmed line is a plausible
// "key: value" pair and not, say, a content row that happens to contain
// a colon (a Sargam octave marker, say). The text before the first colon
// must be non-empty and made only of ASCII letters, '_' or '-', so a
// colon-first line, a barline, a digit or a space before the colon
// rules it out; the text after the colon is not inspected.
func looksLikeAttributeLine(line string) bool {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" {
		return false
	}
	for _, r := range key {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
