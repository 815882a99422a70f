// Package render turns ProcessedStaves into the three output shapes
// spec §5 names: an engraving-source plain-text score, a JSON payload
// for the in-browser renderer, and a supplemental MIDI-preview file.
package render

import (
	"fmt"
	"strings"

	"notegrid/postprocess"
	"notegrid/stave"
)

// Engrave renders every ProcessedStave to a textual score, one stave
// per blank-separated block, in the teacher's plain string.Builder
// style — no templating engine, just Sprintf and concatenation.
func Engrave(meta stave.Metadata, staves []postprocess.ProcessedStave) string {
	var sb strings.Builder

	if meta.Title != "" {
		sb.WriteString(fmt.Sprintf("%s\n", meta.Title))
	}
	if meta.Key != "" || meta.Tempo != 0 {
		sb.WriteString(fmt.Sprintf("key: %s  tempo: %d\n", meta.Key, meta.Tempo))
	}
	if meta.Title != "" || meta.Key != "" || meta.Tempo != 0 {
		sb.WriteString("\n")
	}

	for i, st := range staves {
		sb.WriteString(engraveStave(st))
		if i < len(staves)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func engraveStave(st postprocess.ProcessedStave) string {
	var line, lyrics strings.Builder
	haveLyrics := false

	for _, item := range st.Items {
		switch item.Kind {
		case postprocess.ItemBarline:
			line.WriteString(item.Barline.String())

		case postprocess.ItemBeat:
			tokens, syllables := engraveBeat(item.Beat)
			if item.Beat.IsTuplet {
				line.WriteString("[")
				line.WriteString(strings.Join(tokens, " "))
				line.WriteString(fmt.Sprintf("]%d:%d", item.Beat.TupletRatio.Num, item.Beat.TupletRatio.Den))
			} else {
				line.WriteString(strings.Join(tokens, " "))
			}
			line.WriteString(" ")

			for _, s := range syllables {
				if s != "" {
					haveLyrics = true
				}
				lyrics.WriteString(s)
				lyrics.WriteString(" ")
			}
		}
	}

	out := strings.TrimRight(line.String(), " ")
	if haveLyrics {
		out += "\n" + strings.TrimRight(lyrics.String(), " ")
	}
	return out
}

// engraveBeat renders one Beat's elements as engraving tokens, returning
// the note/rest tokens and, in parallel, each element's syllable (empty
// string when it has none).
func engraveBeat(b stave.Beat) (tokens []string, syllables []string) {
	for _, be := range b.Elements {
		el := be.Element
		var sb strings.Builder

		if el.TiedToPrev {
			sb.WriteString("~")
		}

		switch el.Kind {
		case stave.ElemRest:
			sb.WriteString("R")
		case stave.ElemNote:
			sb.WriteString(el.Pitch.String())
			switch {
			case el.Octave > 0:
				sb.WriteString(strings.Repeat("'", int(el.Octave)))
			case el.Octave < 0:
				sb.WriteString(strings.Repeat(",", int(-el.Octave)))
			}
			if el.InSlur {
				switch el.SlurRole {
				case stave.SlurBegin:
					sb.WriteString("(")
				case stave.SlurEnd:
					sb.WriteString(")")
				}
			}
		}

		tokens = append(tokens, sb.String())

		syl := ""
		if el.Syllable != nil {
			syl = *el.Syllable
		}
		syllables = append(syllables, syl)
	}
	return tokens, syllables
}
