package display

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"notegrid/postprocess"
	"notegrid/render"
	"notegrid/stave"
)

// Styles for the TUI, following the same color-and-composite-style
// convention as the teacher's live-playback browser, scoped to a
// single score instead of a playing transport.
var (
	primaryColor = lipgloss.Color("#00FFFF")
	dimColor     = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	headerStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	currentStaveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	diagnosticStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)

// headerGradient returns n colors interpolated from primaryColor to white,
// used to tint the stave-picker row — the one place this package reaches for
// go-colorful rather than lipgloss's flat Color values.
func headerGradient(n int) []lipgloss.Color {
	start, _ := colorful.Hex("#00FFFF")
	end, _ := colorful.Hex("#FFFFFF")
	colors := make([]lipgloss.Color, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		colors[i] = lipgloss.Color(start.BlendLuv(end, t).Hex())
	}
	return colors
}

// BrowserModel is the Bubble Tea model for paging through a document's
// staves. Unlike the teacher's TUIModel it owns no transport state — there
// is no playback position, only a selected stave index.
type BrowserModel struct {
	meta     stave.Metadata
	staves   []postprocess.ProcessedStave
	diags    []stave.Diagnostic
	current  int
	quitting bool
}

// NewBrowserModel builds a browser over an already-processed document.
func NewBrowserModel(meta stave.Metadata, staves []postprocess.ProcessedStave, diags []stave.Diagnostic) BrowserModel {
	return BrowserModel{meta: meta, staves: staves, diags: diags}
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "left", "k":
			if m.current > 0 {
				m.current--
			}
		case "right", "j":
			if m.current < len(m.staves)-1 {
				m.current++
			}
		case "home":
			m.current = 0
		case "end":
			m.current = len(m.staves) - 1
		}
	}
	return m, nil
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.staves) == 0 {
		return titleStyle.Render("(empty document)") + "\n"
	}

	var sb strings.Builder

	title := m.meta.Title
	if title == "" {
		title = "notegrid"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf("key: %s  tempo: %d", m.meta.Key, m.meta.Tempo)))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderStaveRow())
	sb.WriteString("\n\n")

	st := m.staves[m.current]
	sb.WriteString(render.Engrave(stave.Metadata{}, []postprocess.ProcessedStave{st}))
	sb.WriteString("\n")

	if len(m.diags) > 0 {
		sb.WriteString("\n")
		for _, d := range m.diags {
			sb.WriteString(diagnosticStyle.Render(fmt.Sprintf("! %s", d.Message)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("←/→ or j/k: staves   q: quit"))
	sb.WriteString("\n")

	return sb.String()
}

// renderStaveRow prints a one-line stave picker, tinting each number with
// a gradient step and bolding the selected one.
func (m BrowserModel) renderStaveRow() string {
	gradient := headerGradient(len(m.staves))
	var parts []string
	for i := range m.staves {
		label := fmt.Sprintf("%d", i+1)
		if i == m.current {
			parts = append(parts, currentStaveStyle.Render(label))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(gradient[i]).Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(meta stave.Metadata, staves []postprocess.ProcessedStave, diags []stave.Diagnostic) error {
	_, err := tea.NewProgram(NewBrowserModel(meta, staves, diags)).Run()
	return err
}
