package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEndToEnd(t *testing.T) {
	doc, staves, err := Run("title: Test\nkey: C\n\n___\n|1 2 3|\nho- ly night")
	require.NoError(t, err)
	assert.Equal(t, "Test", doc.Metadata.Title)
	require.Len(t, staves, 1)
	assert.NotEmpty(t, staves[0].Items)
}

func TestRunInvalidUTF8ReturnsError(t *testing.T) {
	_, _, err := Run(string([]byte{0xff, 0xfe}))
	require.Error(t, err)
}

func TestRunEmptyInput(t *testing.T) {
	doc, staves, err := Run("")
	require.NoError(t, err)
	assert.Empty(t, doc.Staves)
	assert.Empty(t, staves)
}
