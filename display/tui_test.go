package display

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notegrid/attach"
	"notegrid/detect"
	"notegrid/postprocess"
	"notegrid/rhythm"
	"notegrid/stave"
)

func buildModel(t *testing.T, text string) BrowserModel {
	t.Helper()
	doc, err := stave.Parse(text)
	require.NoError(t, err)
	detect.Resolve(doc)
	attach.Resolve(doc)
	rhythm.Resolve(doc)
	staves := postprocess.Process(doc)
	return NewBrowserModel(doc.Metadata, staves, doc.Diagnostics)
}

func TestBrowserViewShowsFirstStave(t *testing.T) {
	m := buildModel(t, "|1 2 3|\n\n|4 5 6|")
	out := m.View()
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "←/→")
}

func TestBrowserNavigatesForwardAndBack(t *testing.T) {
	m := buildModel(t, "|1 2 3|\n\n|4 5 6|")
	require.Len(t, m.staves, 2)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	nm := next.(BrowserModel)
	assert.Equal(t, 1, nm.current)

	back, _ := nm.Update(tea.KeyMsg{Type: tea.KeyLeft})
	bm := back.(BrowserModel)
	assert.Equal(t, 0, bm.current)
}

func TestBrowserNavigationClampsAtBounds(t *testing.T) {
	m := buildModel(t, "|1 2 3|")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	nm := next.(BrowserModel)
	assert.Equal(t, 0, nm.current)
}

func TestBrowserQuitKeySetsQuitting(t *testing.T) {
	m := buildModel(t, "|1 2 3|")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	nm := next.(BrowserModel)
	assert.True(t, nm.quitting)
	require.NotNil(t, cmd)
	assert.Empty(t, nm.View())
}

func TestBrowserEmptyDocument(t *testing.T) {
	m := buildModel(t, "")
	out := m.View()
	assert.True(t, strings.Contains(out, "empty"))
}

func TestHeaderGradientProducesDistinctColors(t *testing.T) {
	colors := headerGradient(3)
	require.Len(t, colors, 3)
	assert.NotEqual(t, colors[0], colors[2])
}
