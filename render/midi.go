package render

import (
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"notegrid/postprocess"
	"notegrid/stave"
)

// midiEvent is an absolute-tick MIDI event, collected then sorted and
// re-emitted with delta times — the same two-pass approach the teacher
// uses for chord/bass/drum events.
type midiEvent struct {
	tick    uint32
	message midi.Message
}

const (
	ticksPerQuarter = 480
	ticksPerWhole   = ticksPerQuarter * 4
	tonicNote       = 60 // MIDI middle C; octave 0 is the tonic's own octave
)

// MIDIPreview encodes ProcessedStaves as a single-track Standard MIDI
// File — a data/event preview only, never audio synthesis (§ Non-goals).
// Rests and ties produce no NoteOn of their own; a tied note's sustain
// is simply the sum of both segments' durations.
func MIDIPreview(tempo int, staves []postprocess.ProcessedStave) *smf.SMF {
	if tempo <= 0 {
		tempo = 120
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var meta smf.Track
	meta.Add(0, smf.MetaTempo(float64(tempo)))
	meta.Close(0)
	s.Add(meta)

	var notes smf.Track
	notes.Add(0, midi.ProgramChange(0, 0))

	var events []midiEvent
	var tick uint32
	var sustain *sustainedNote // the currently-open NoteOn, extended across ties

	for _, st := range staves {
		for _, item := range st.Items {
			if item.Kind != postprocess.ItemBeat {
				continue
			}
			for _, be := range item.Beat.Elements {
				el := be.Element
				durTicks := durationTicks(el.Duration)

				switch {
				case el.Kind == stave.ElemNote && el.TiedToPrev && sustain != nil:
					sustain.offTick += durTicks

				case el.Kind == stave.ElemNote:
					if sustain != nil {
						events = append(events, midiEvent{sustain.offTick, midi.NoteOff(0, sustain.note)})
					}
					note := midiNote(el)
					events = append(events, midiEvent{tick, midi.NoteOn(0, note, 96)})
					sustain = &sustainedNote{note: note, offTick: tick + durTicks}

				default: // Rest
					if sustain != nil {
						events = append(events, midiEvent{sustain.offTick, midi.NoteOff(0, sustain.note)})
						sustain = nil
					}
				}

				tick += durTicks
			}
		}
	}
	if sustain != nil {
		events = append(events, midiEvent{sustain.offTick, midi.NoteOff(0, sustain.note)})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].tick < events[j].tick })

	prev := uint32(0)
	for _, evt := range events {
		notes.Add(evt.tick-prev, evt.message)
		prev = evt.tick
	}
	notes.Close(0)
	s.Add(notes)

	return s
}

type sustainedNote struct {
	note    uint8
	offTick uint32
}

func durationTicks(d *stave.Fraction) uint32 {
	if d == nil || d.Den == 0 {
		return 0
	}
	return uint32(d.Num * ticksPerWhole / d.Den)
}

func midiNote(el stave.MusicalElement) uint8 {
	n := tonicNote + el.Pitch.Semitone() + int(el.Octave)*12
	if n < 0 {
		n = 0
	}
	if n > 127 {
		n = 127
	}
	return uint8(n)
}
