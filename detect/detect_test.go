package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notegrid/pitch"
	"notegrid/stave"
)

func parseAndDetect(t *testing.T, text string) *stave.Document {
	t.Helper()
	doc, err := stave.Parse(text)
	require.NoError(t, err)
	Resolve(doc)
	return doc
}

func TestDetectNumberSystem(t *testing.T) {
	doc := parseAndDetect(t, "|1 2 3|")
	require.Len(t, doc.Staves, 1)
	assert.Equal(t, pitch.Number, doc.Staves[0].DetectedSystem)
}

func TestDetectUnambiguousSargam(t *testing.T) {
	doc := parseAndDetect(t, "|S R G|")
	require.Len(t, doc.Staves, 1)
	assert.Equal(t, pitch.Sargam, doc.Staves[0].DetectedSystem)
	for _, el := range doc.Staves[0].ContentLine {
		if el.Kind == stave.ElemNote {
			assert.Equal(t, pitch.Sargam, el.System)
		}
	}
}

func TestDetectAmbiguousFallsBackPastNumberDefault(t *testing.T) {
	// "D G" are both ambiguous (Western/Sargam) and there is no other
	// evidence in the stave, so pass 1 records zero unambiguous votes and
	// rule 4 initially defaults the stave to Number — but Number has no
	// symbols "D"/"G" at all, so resolution must fall through the
	// tie-break order (Sargam > Western > Number) to the first system
	// that actually accepts the spelling. Both "D" and "G" are valid
	// Sargam spellings (Dha, Ga), so that's where resolution lands.
	doc := parseAndDetect(t, "|D G|")
	require.Len(t, doc.Staves, 1)
	st := doc.Staves[0]
	var notes []stave.MusicalElement
	for _, el := range st.ContentLine {
		if el.Kind == stave.ElemNote {
			notes = append(notes, el)
		}
	}
	require.Len(t, notes, 2)

	assert.Equal(t, pitch.Sargam, st.DetectedSystem)
	assert.Empty(t, notes[0].AmbiguousIn)
	assert.Empty(t, notes[1].AmbiguousIn)
	assert.Equal(t, st.DetectedSystem, notes[0].System)
	assert.Equal(t, st.DetectedSystem, notes[1].System)
	assert.Equal(t, pitch.Deg6, notes[0].Pitch) // Sargam "D" (Dha)
	assert.Equal(t, pitch.Deg3, notes[1].Pitch) // Sargam "G" (Ga)
}

func TestDetectBhatkhandeAlwaysWins(t *testing.T) {
	doc := parseAndDetect(t, "स रे ग")
	require.Len(t, doc.Staves, 1)
	assert.Equal(t, pitch.Bhatkhande, doc.Staves[0].DetectedSystem)
}
