// Package display renders a parsed score to a terminal: ShowDocument
// prints a plain summary box, and Run launches the interactive
// Bubble Tea stave browser.
package display

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"notegrid/postprocess"
	"notegrid/render"
	"notegrid/stave"
)

// ShowDocument prints a header box (title/key/tempo/stave count), then
// the engraved score, then any diagnostics, in the teacher's
// box-drawing + fmt.Printf style.
// Box width is measured in terminal cells via go-runewidth rather than
// byte length, so a Devanagari or accented title still lines up.
func ShowDocument(doc *stave.Document, staves []postprocess.ProcessedStave) {
	title := doc.Metadata.Title
	if title == "" {
		title = "(untitled)"
	}
	info := fmt.Sprintf("Key: %s | Tempo: %d BPM | %d stave(s)", doc.Metadata.Key, doc.Metadata.Tempo, len(staves))

	maxLen := runewidth.StringWidth(title)
	if w := runewidth.StringWidth(info); w > maxLen {
		maxLen = w
	}

	fmt.Printf("┌─ %s %s┐\n", title, strings.Repeat("─", maxLen-runewidth.StringWidth(title)+1))
	fmt.Printf("│ %s%s │\n", info, strings.Repeat(" ", maxLen-runewidth.StringWidth(info)))
	fmt.Printf("└%s┘\n\n", strings.Repeat("─", maxLen+2))

	fmt.Println(render.Engrave(doc.Metadata, staves))

	if len(doc.Diagnostics) > 0 {
		fmt.Printf("\n%d diagnostic(s):\n", len(doc.Diagnostics))
		for _, d := range doc.Diagnostics {
			fmt.Printf("  [%s] %s: %s\n", d.Severity, d.Pos, d.Message)
		}
	}
}
