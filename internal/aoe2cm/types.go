// Package aoe2cm pulls drafts from the external draft service. The service
// owns all turn logic; this package only fetches the current event list and
// maps it to reducer input.
package aoe2cm

import "github.com/overseerhq/caster-overlay-server/internal/draft"

// RawEvent is one event exactly as the draft service serializes it.
type RawEvent struct {
	Player           string `json:"player"`
	ExecutingPlayer  string `json:"executingPlayer"`
	ActionType       string `json:"actionType"`
	ChosenOptionID   string `json:"chosenOptionId"`
	IsRandomlyChosen bool   `json:"isRandomlyChosen"`
	Offset           int64  `json:"offset"`
}

type RawPreset struct {
	Name         string         `json:"name"`
	PresetID     string         `json:"presetId"`
	DraftOptions []draft.Option `json:"draftOptions"`
}

// RawDraft is the draft service's full response for one draft id.
type RawDraft struct {
	NextAction int        `json:"nextAction"`
	Events     []RawEvent `json:"events"`
	NameHost   string     `json:"nameHost"`
	NameGuest  string     `json:"nameGuest"`
	Preset     *RawPreset `json:"preset"`
}

// MapEvents maps raw events to reducer events. Attribution follows
// executingPlayer; malformed entries survive the mapping and are filtered
// by the reducer, which logs-and-skips rather than failing the batch.
func MapEvents(raw []RawEvent) []draft.Event {
	events := make([]draft.Event, 0, len(raw))
	for _, r := range raw {
		events = append(events, draft.Event{
			Player:   draft.Player(r.ExecutingPlayer),
			Action:   draft.Action(r.ActionType),
			OptionID: r.ChosenOptionID,
			Sequence: r.Offset,
		})
	}
	return events
}

func (d RawDraft) DraftEvents() []draft.Event {
	return MapEvents(d.Events)
}

func (d RawDraft) Catalog() []draft.Option {
	if d.Preset == nil {
		return nil
	}
	return d.Preset.DraftOptions
}
