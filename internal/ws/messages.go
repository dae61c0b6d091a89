package ws

import (
	"github.com/overseerhq/caster-overlay-server/internal/aoe2cm"
	"github.com/overseerhq/caster-overlay-server/internal/session"
)

// ClientMessage is the envelope for everything a control client can send.
// Unused fields stay at their zero value; Type decides which ones matter.
type ClientMessage struct {
	Type string `json:"type"`

	// importDraft
	DraftID   string `json:"draftId,omitempty"`
	DraftType string `json:"draftType,omitempty"` // "civ" | "map"

	// pushEvents / revealBans
	Events []aoe2cm.RawEvent `json:"events,omitempty"`

	// updateDraftData
	Data *MetaPayload `json:"data,omitempty"`

	// series controls
	Format string `json:"format,omitempty"`
	Index  int    `json:"index,omitempty"`
	Field  string `json:"field,omitempty"`
	Value  string `json:"value,omitempty"`
	Winner string `json:"winner,omitempty"`
}

// MetaPayload is the pass-through display data. Pointers distinguish "not
// sent" from "set to empty", so partial updates never clobber other fields.
type MetaPayload struct {
	HostName   *string        `json:"hostName"`
	GuestName  *string        `json:"guestName"`
	Scores     *ScoresPayload `json:"scores"`
	HostColor  *string        `json:"hostColor"`
	GuestColor *string        `json:"guestColor"`
	HostFlag   *string        `json:"hostFlag"`
	GuestFlag  *string        `json:"guestFlag"`
}

type ScoresPayload struct {
	Host  *int `json:"host"`
	Guest *int `json:"guest"`
}

type ServerMessage struct {
	Type    string                   `json:"type"` // "broadcastState" | "error"
	Version int                      `json:"version,omitempty"`
	State   *session.BroadcastState  `json:"state,omitempty"`
	Error   string                   `json:"error,omitempty"`
}
