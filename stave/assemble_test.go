package stave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyInput(t *testing.T) {
	doc, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, doc.Staves)
	assert.Empty(t, doc.Diagnostics)
}

func TestParseSinglePitch(t *testing.T) {
	doc, err := Parse("1")
	require.NoError(t, err)
	require.Len(t, doc.Staves, 1)
	require.Len(t, doc.Staves[0].ContentLine, 1)
	assert.Equal(t, ElemNote, doc.Staves[0].ContentLine[0].Kind)
}

func TestParseContentRowWithBarlines(t *testing.T) {
	doc, err := Parse("|1 2 3|")
	require.NoError(t, err)
	require.Len(t, doc.Staves, 1)
	els := doc.Staves[0].ContentLine
	require.Len(t, els, 7)
	assert.Equal(t, ElemBarline, els[0].Kind)
	assert.Equal(t, ElemNote, els[1].Kind)
	assert.Equal(t, ElemSpace, els[2].Kind)
	assert.Equal(t, ElemBarline, els[6].Kind)
}

func TestParseAttachesAnnotationRows(t *testing.T) {
	text := "___\n|1 2 3|\nhel-lo world"
	doc, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, doc.Staves, 1)
	st := doc.Staves[0]
	require.Len(t, st.TextLinesBefore, 1)
	require.Len(t, st.TextLinesAfter, 1)
	assert.True(t, st.TextLinesAfter[0].IsLyricsRow)
}

func TestParseMultipleContentRowsInOneRun(t *testing.T) {
	text := "|1 2|\n|3 4|"
	doc, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, doc.Staves, 2)
}

func TestParseStavesSeparatedByBlankLine(t *testing.T) {
	text := "|1 2|\n\n|3 4|"
	doc, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, doc.Staves, 2)
}

func TestParseMetadataBlock(t *testing.T) {
	text := "title: Test Song\nkey: C\n\n|1 2 3|"
	doc, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "Test Song", doc.Metadata.Title)
	assert.Equal(t, "C", doc.Metadata.Key)
	require.Len(t, doc.Staves, 1)
}

func TestParseInvalidUTF8(t *testing.T) {
	_, err := Parse(string([]byte{0xff, 0xfe, 0xfd}))
	require.Error(t, err)
}

func TestFractionReduction(t *testing.T) {
	f := NewFraction(2, 8)
	assert.Equal(t, Fraction{Num: 1, Den: 4}, f)
}
