package render

import (
	"github.com/goccy/go-json"

	"notegrid/postprocess"
	"notegrid/stave"
)

// Payload is the structured, JSON-shaped document the in-browser
// renderer consumes (§5): the same semantic fields as the engraving
// renderer, arranged for a front-end consumer instead of a human eye.
type Payload struct {
	Title  string         `json:"title"`
	Key    string         `json:"key"`
	Tempo  int            `json:"tempo"`
	Staves []StavePayload `json:"staves"`
}

// StavePayload is one stave's renderable items.
type StavePayload struct {
	System string        `json:"system"`
	Items  []ItemPayload `json:"items"`
}

// ItemPayload is either a barline or a beat; exactly one of Barline/Beat
// is populated, selected by Kind.
type ItemPayload struct {
	Kind    string       `json:"kind"`
	Barline string       `json:"barline,omitempty"`
	Beat    *BeatPayload `json:"beat,omitempty"`
}

// BeatPayload carries a Beat's tuplet classification plus its elements.
type BeatPayload struct {
	Divisions   int              `json:"divisions"`
	IsTuplet    bool             `json:"is_tuplet"`
	TupletRatio *RatioPayload    `json:"tuplet_ratio,omitempty"`
	Elements    []ElementPayload `json:"elements"`
}

// RatioPayload is a D:P tuplet ratio.
type RatioPayload struct {
	Num int `json:"num"`
	Den int `json:"den"`
}

// ElementPayload is one Note or Rest, with duration as an explicit
// (num, den) pair — never a float, per §4.6's rational-arithmetic rule.
type ElementPayload struct {
	Kind        string   `json:"kind"`
	Pitch       string   `json:"pitch,omitempty"`
	Octave      int      `json:"octave,omitempty"`
	DurationNum int      `json:"duration_num"`
	DurationDen int      `json:"duration_den"`
	TiedToPrev  bool     `json:"tied_to_prev"`
	InSlur      bool     `json:"in_slur,omitempty"`
	SlurRole    string   `json:"slur_role,omitempty"`
	InBeatGroup bool     `json:"in_beat_group,omitempty"`
	Syllable    *string  `json:"syllable,omitempty"`
}

// ToPayload converts processed staves into the wire Payload.
func ToPayload(meta stave.Metadata, staves []postprocess.ProcessedStave) Payload {
	p := Payload{Title: meta.Title, Key: meta.Key, Tempo: meta.Tempo}
	for _, st := range staves {
		p.Staves = append(p.Staves, stavePayload(st))
	}
	return p
}

func stavePayload(st postprocess.ProcessedStave) StavePayload {
	sp := StavePayload{System: st.DetectedSystem.String()}
	for _, item := range st.Items {
		switch item.Kind {
		case postprocess.ItemBarline:
			sp.Items = append(sp.Items, ItemPayload{Kind: "barline", Barline: item.Barline.String()})
		case postprocess.ItemBeat:
			sp.Items = append(sp.Items, ItemPayload{Kind: "beat", Beat: beatPayload(item.Beat)})
		}
	}
	return sp
}

func beatPayload(b stave.Beat) *BeatPayload {
	bp := &BeatPayload{Divisions: b.Divisions, IsTuplet: b.IsTuplet}
	if b.IsTuplet {
		bp.TupletRatio = &RatioPayload{Num: b.TupletRatio.Num, Den: b.TupletRatio.Den}
	}
	for _, be := range b.Elements {
		bp.Elements = append(bp.Elements, elementPayload(be))
	}
	return bp
}

func elementPayload(be stave.BeatElement) ElementPayload {
	el := be.Element
	ep := ElementPayload{
		Kind:        el.Kind.String(),
		TiedToPrev:  el.TiedToPrev,
		InSlur:      el.InSlur,
		InBeatGroup: el.InBeatGroup,
		Syllable:    el.Syllable,
	}
	if el.Duration != nil {
		ep.DurationNum = el.Duration.Num
		ep.DurationDen = el.Duration.Den
	}
	if el.Kind == stave.ElemNote {
		ep.Pitch = el.Pitch.String()
		ep.Octave = int(el.Octave)
	}
	switch el.SlurRole {
	case stave.SlurBegin:
		ep.SlurRole = "begin"
	case stave.SlurEnd:
		ep.SlurRole = "end"
	}
	return ep
}

// Marshal renders a Payload to indented JSON via goccy/go-json, a
// drop-in encoding/json replacement this module imports directly.
func Marshal(p Payload) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}
