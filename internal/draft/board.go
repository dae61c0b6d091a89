package draft

import (
	"cmp"
	"slices"
	"time"
)

// LastAction describes the most recently processed event. It drives the
// overlay's "just happened" highlight and is overwritten, never accumulated.
type LastAction struct {
	Item      string `json:"item"`
	ItemType  Kind   `json:"itemType"`
	Action    string `json:"action"` // "pick", "ban" or "reveal"
	Player    Player `json:"player"`
	SlotIndex int    `json:"slotIndex"`
	Timestamp int64  `json:"timestamp"`
}

const actionReveal = "reveal"

// Board is the reducer's whole output: both per-kind draft states, the
// best-of-N series slots and the last-action marker. All methods are pure;
// they return an updated copy and never mutate the receiver or caller-owned
// slices.
type Board struct {
	Civ    State
	Map    State
	Series Series
	Last   *LastAction
}

func NewBoard() Board {
	return Board{Civ: newState(), Map: newState()}
}

var nowMillis = func() int64 { return time.Now().UnixMilli() }

func (b Board) clone() Board {
	c := Board{
		Civ:    b.Civ.clone(),
		Map:    b.Map.clone(),
		Series: b.Series.clone(),
	}
	if b.Last != nil {
		last := *b.Last
		c.Last = &last
	}
	return c
}

func (b *Board) stateFor(kind Kind) *State {
	if kind == KindCiv {
		return &b.Civ
	}
	return &b.Map
}

// ResetDraft discards one kind's derived state, leaving the other kind and
// the series controls (winners, visibility) intact. A full resync is
// ResetDraft followed by ApplyDraft with the complete event list.
func (b Board) ResetDraft(kind Kind) Board {
	next := b.clone()
	*next.stateFor(kind) = newState()
	next.rederiveSeries()
	return next
}

// ApplyDraft folds a batch of pick/ban events into one kind's state. Events
// are applied in sequence order regardless of delivery order. Events with an
// unknown player or action are skipped. An empty batch returns an equal board.
func (b Board) ApplyDraft(kind Kind, events []Event, catalog []Option) Board {
	next := b.clone()

	batch := slices.Clone(events)
	slices.SortStableFunc(batch, func(x, y Event) int {
		return cmp.Compare(x.Sequence, y.Sequence)
	})

	for _, ev := range batch {
		if !ev.Valid() {
			continue
		}
		next.applyOne(kind, ev, catalog)
	}

	next.rederiveSeries()
	return next
}

func (b *Board) applyOne(kind Kind, ev Event, catalog []Option) {
	st := b.stateFor(kind)

	switch ev.Action {
	case ActionPick:
		name := ResolveName(ev.OptionID, catalog)
		var list *[]string
		switch ev.Player {
		case PlayerHost:
			list = &st.PicksHost
		case PlayerGuest:
			list = &st.PicksGuest
		default:
			list = &st.PicksGlobal
		}
		*list = append(*list, name)
		b.Last = &LastAction{
			Item:      name,
			ItemType:  kind,
			Action:    string(ActionPick),
			Player:    ev.Player,
			SlotIndex: len(*list) - 1,
			Timestamp: nowMillis(),
		}

	case ActionBan:
		name := HiddenBanName
		if ev.OptionID != HiddenBanID {
			name = ResolveName(ev.OptionID, catalog)
		}
		list := st.bansFor(ev.Player)
		*list = append(*list, name)
		b.Last = &LastAction{
			Item:      name,
			ItemType:  kind,
			Action:    string(ActionBan),
			Player:    ev.Player,
			SlotIndex: len(*list) - 1,
			Timestamp: nowMillis(),
		}
	}
}
