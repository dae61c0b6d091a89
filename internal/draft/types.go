package draft

import (
	"strconv"
	"strings"
)

type Player string

const (
	PlayerHost  Player = "HOST"
	PlayerGuest Player = "GUEST"
	PlayerNone  Player = "NONE"
)

type Action string

const (
	ActionPick Action = "pick"
	ActionBan  Action = "ban"
)

type Kind string

const (
	KindCiv Kind = "civ"
	KindMap Kind = "map"
)

// HiddenBanID is the sentinel the draft service substitutes for a ban it has
// not revealed yet.
const HiddenBanID = "HIDDEN_BAN"

// HiddenBanName is the placeholder rendered until a reveal fills the slot.
const HiddenBanName = "Hidden Ban"

// civPrefix marks a qualified civilization key, e.g. "aoe4.chinese".
const civPrefix = "aoe4."

// Option is one catalog entry of a draft preset.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is a single pick or ban action. Sequence is the service's millisecond
// offset within the draft and establishes total order; delivery order of a
// batch is not authoritative.
type Event struct {
	Player   Player `json:"executingPlayer"`
	Action   Action `json:"actionType"`
	OptionID string `json:"chosenOptionId"`
	Sequence int64  `json:"offset"`
}

// Valid reports whether the event carries a known player and action.
// Invalid events are dropped by the reducer; callers log them.
func (e Event) Valid() bool {
	switch e.Player {
	case PlayerHost, PlayerGuest, PlayerNone:
	default:
		return false
	}
	switch e.Action {
	case ActionPick, ActionBan:
	default:
		return false
	}
	return true
}

// revealKey identifies a reveal across redeliveries. The sequence component
// keeps two bans of the same option by different players distinct.
func (e Event) revealKey() string {
	return e.OptionID + "#" + strconv.FormatInt(e.Sequence, 10)
}

// KindOf classifies an option id by its namespace: qualified civilization
// keys carry the civ prefix, everything else is a map.
func KindOf(optionID string) Kind {
	if strings.HasPrefix(optionID, civPrefix) {
		return KindCiv
	}
	return KindMap
}
