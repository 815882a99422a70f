package rhythm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notegrid/attach"
	"notegrid/detect"
	"notegrid/stave"
)

func parseFull(t *testing.T, text string) *stave.Document {
	t.Helper()
	doc, err := stave.Parse(text)
	require.NoError(t, err)
	detect.Resolve(doc)
	attach.Resolve(doc)
	Resolve(doc)
	return doc
}

func TestThreeEqualBeats(t *testing.T) {
	doc := parseFull(t, "|1 2 3|")
	require.Len(t, doc.Staves, 1)
	beats := doc.Staves[0].Beats
	require.Len(t, beats, 3)
	for _, b := range beats {
		assert.False(t, b.IsTuplet)
		assert.Equal(t, 1, b.Divisions)
		require.Len(t, b.Elements, 1)
		assert.Equal(t, stave.Fraction{Num: 1, Den: 4}, *b.Elements[0].Element.Duration)
	}
}

func TestDashExtensionWithinBeatFormsTuplet(t *testing.T) {
	doc := parseFull(t, "|1-2|")
	require.Len(t, doc.Staves, 1)
	beats := doc.Staves[0].Beats
	require.Len(t, beats, 1)
	b := beats[0]
	assert.True(t, b.IsTuplet)
	assert.Equal(t, 3, b.Divisions)
	assert.Equal(t, stave.Fraction{Num: 3, Den: 2}, b.TupletRatio)
	require.Len(t, b.Elements, 2)
	assert.Equal(t, 2, b.Elements[0].Subdivisions)
	assert.Equal(t, 1, b.Elements[1].Subdivisions)
}

func TestLargeRunFormsTuplet(t *testing.T) {
	line := strings.Repeat("1", 31)
	doc := parseFull(t, line)
	require.Len(t, doc.Staves, 1)
	beats := doc.Staves[0].Beats
	require.Len(t, beats, 1)
	b := beats[0]
	assert.True(t, b.IsTuplet)
	assert.Equal(t, 31, b.Divisions)
	assert.Equal(t, stave.Fraction{Num: 31, Den: 16}, b.TupletRatio)
}

func TestLeadingDashWithNoExtendableBecomesRest(t *testing.T) {
	doc := parseFull(t, "-2")
	require.Len(t, doc.Staves, 1)
	b := doc.Staves[0].Beats[0]
	require.Len(t, b.Elements, 2)
	assert.Equal(t, stave.ElemRest, b.Elements[0].Element.Kind)
	assert.Equal(t, stave.ElemNote, b.Elements[1].Element.Kind)
}

func TestTieAcrossSpace(t *testing.T) {
	doc := parseFull(t, "S- -S")
	require.Len(t, doc.Staves, 1)
	beats := doc.Staves[0].Beats
	require.Len(t, beats, 2)

	assert.False(t, beats[0].Elements[0].Element.TiedToPrev)

	require.Len(t, beats[1].Elements, 2)
	assert.True(t, beats[1].Elements[0].Element.TiedToPrev)
	assert.Equal(t, stave.ElemNote, beats[1].Elements[0].Element.Kind)
	assert.False(t, beats[1].Elements[1].Element.TiedToPrev)
	assert.Equal(t, 1, beats[1].Elements[0].Subdivisions)
	assert.Equal(t, 1, beats[1].Elements[1].Subdivisions)
}

func TestBreathBreaksExtension(t *testing.T) {
	doc := parseFull(t, "1 ' -2")
	require.Len(t, doc.Staves, 1)
	beats := doc.Staves[0].Beats
	require.Len(t, beats, 2)
	last := beats[len(beats)-1]
	assert.Equal(t, stave.ElemRest, last.Elements[0].Element.Kind)
	assert.False(t, last.Elements[0].Element.TiedToPrev)
}

func TestWordInsideContentIgnoredByFSM(t *testing.T) {
	withWord := parseFull(t, "|1 hello 2|")
	plain := parseFull(t, "|1 2|")
	require.Len(t, withWord.Staves, 1)
	require.Len(t, plain.Staves, 1)
	assert.Equal(t, len(plain.Staves[0].Beats), len(withWord.Staves[0].Beats))
}

func TestEmptyInputHasNoStaves(t *testing.T) {
	doc, err := stave.Parse("")
	require.NoError(t, err)
	Resolve(doc)
	assert.Empty(t, doc.Staves)
}
