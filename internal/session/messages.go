package session

import "github.com/overseerhq/caster-overlay-server/internal/draft"

type Msg interface{ isSessionMsg() }

// Join registers a client outbox; the current snapshot is sent immediately.
type Join struct {
	ClientID string
	Outbox   chan Snapshot
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

// ImportDraft is a full resync of one draft kind: the kind's state is rebuilt
// from empty out of the complete event list. Names are adopted only when the
// payload carries them, so importing the map draft after the civ draft does
// not wipe the players.
type ImportDraft struct {
	Kind      draft.Kind
	DraftID   string
	Events    []draft.Event
	Catalog   []draft.Option
	HostName  string
	GuestName string
}

func (ImportDraft) isSessionMsg() {}

// PushEvents applies an incremental batch of new events through the same
// reducer path as a full import. The sender guarantees the batch only
// contains events not delivered before.
type PushEvents struct {
	Kind   draft.Kind
	Events []draft.Event
}

func (PushEvents) isSessionMsg() {}

// RevealBans carries the out-of-band reveal notification for hidden bans.
type RevealBans struct {
	Events []draft.Event
}

func (RevealBans) isSessionMsg() {}

// UpdateMeta merges pass-through display fields. Nil pointers leave the
// current value untouched; partial payloads never clobber the rest.
type UpdateMeta struct {
	HostName   *string
	GuestName  *string
	ScoreHost  *int
	ScoreGuest *int
	HostColor  *string
	GuestColor *string
	HostFlag   *string
	GuestFlag  *string
}

func (UpdateMeta) isSessionMsg() {}

type SetSeriesFormat struct{ Format string }

func (SetSeriesFormat) isSessionMsg() {}

type SetGameWinner struct {
	Index  int
	Winner string
}

func (SetGameWinner) isSessionMsg() {}

type ToggleGameVisibility struct{ Index int }

func (ToggleGameVisibility) isSessionMsg() {}

type UpdateGame struct {
	Index        int
	Field, Value string
}

func (UpdateGame) isSessionMsg() {}

// Reset discards the board and meta but keeps connected clients.
type Reset struct{}

func (Reset) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type Snapshot struct {
	Version int
	State   BroadcastState
}

type View struct {
	Version    int
	NumClients int
	State      BroadcastState
}
