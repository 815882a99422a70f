package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatesAmbiguity(t *testing.T) {
	// D and G are the only letters shared between Western and Sargam's
	// alphabets, so they are the symbols genuinely ambiguous by system.
	assert.ElementsMatch(t, []System{Sargam, Western}, Candidates("D"))
	assert.ElementsMatch(t, []System{Sargam, Western}, Candidates("G"))

	// R, M, P, N exist only in Sargam's alphabet (Western has no note
	// letters by those names), so they are unambiguous despite looking
	// like they might collide.
	assert.ElementsMatch(t, []System{Sargam}, Candidates("R"))
	assert.ElementsMatch(t, []System{Sargam}, Candidates("M"))
	assert.ElementsMatch(t, []System{Sargam}, Candidates("P"))
	assert.ElementsMatch(t, []System{Sargam}, Candidates("N"))

	assert.Empty(t, Candidates("xyz"))
}

func TestSargamCaseSensitivity(t *testing.T) {
	r, ok := Resolve("R", Sargam)
	require.True(t, ok)
	assert.Equal(t, Deg2, r)

	komal, ok := Resolve("r", Sargam)
	require.True(t, ok)
	assert.Equal(t, Deg2Flat, komal)

	shuddhaMa, ok := Resolve("m", Sargam)
	require.True(t, ok)
	assert.Equal(t, Deg4, shuddhaMa)

	tivraMa, ok := Resolve("M", Sargam)
	require.True(t, ok)
	assert.Equal(t, Deg4Sharp, tivraMa)
}

func TestBhatkhandeNeverAmbiguous(t *testing.T) {
	cands := Candidates("स")
	require.Len(t, cands, 1)
	assert.Equal(t, Bhatkhande, cands[0])
	assert.True(t, IsBhatkhande("स"))
}

func TestEnharmonicSemitones(t *testing.T) {
	assert.Equal(t, 11, Deg1Flat.Semitone())
	assert.Equal(t, 11, Deg7.Semitone())
	assert.Equal(t, Deg2Sharp.Semitone(), Deg3Flat.Semitone())
	assert.Equal(t, Deg6Sharp.Semitone(), Deg7Flat.Semitone())
}

func TestPriorityTieBreak(t *testing.T) {
	assert.Greater(t, Sargam.Priority(), Western.Priority())
	assert.Greater(t, Western.Priority(), Number.Priority())
}
