package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/overseerhq/caster-overlay-server/internal/draft"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvView(t *testing.T, ch <-chan View, within time.Duration) View {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(within):
		t.Fatalf("timed out waiting for view")
		return View{} // unreachable
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return New(ctx, zap.NewNop())
}

func TestSession_JoinSendsCurrentSnapshot(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 2)
	s.Inbox() <- Join{ClientID: "c1", Outbox: out}

	first := recvSnapshot(t, out, 100*time.Millisecond)
	require.Equal(t, 0, first.Version)
	require.Equal(t, "Player 1", first.State.HostName)
	require.Equal(t, "Player 2", first.State.GuestName)
	require.Empty(t, first.State.CivPicksHost)
	require.Nil(t, first.State.LastDraftAction)
}

func TestSession_ImportDraftBroadcastsAndAdoptsNames(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 4)
	s.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond) // join snapshot

	s.Inbox() <- ImportDraft{
		Kind:    draft.KindCiv,
		DraftID: "civDraftId",
		Events: []draft.Event{
			{Player: draft.PlayerHost, Action: draft.ActionPick, OptionID: "aoe4.english", Sequence: 1000},
		},
		HostName:  "PlayerA",
		GuestName: "PlayerB",
	}

	snap := recvSnapshot(t, out, 100*time.Millisecond)
	require.Equal(t, 1, snap.Version)
	require.Equal(t, []string{"english"}, snap.State.CivPicksHost)
	require.Equal(t, "PlayerA", snap.State.HostName)
	require.Equal(t, "civDraftId", snap.State.CivDraftID)
}

func TestSession_MapImportPreservesCivState(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 4)
	s.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	s.Inbox() <- ImportDraft{
		Kind:    draft.KindCiv,
		DraftID: "civDraftId",
		Events: []draft.Event{
			{Player: draft.PlayerHost, Action: draft.ActionPick, OptionID: "aoe4.English", Sequence: 1000},
		},
		HostName:  "PlayerA",
		GuestName: "PlayerB",
	}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	// The map draft payload carries no names; the civ draft's must survive.
	s.Inbox() <- ImportDraft{
		Kind:    draft.KindMap,
		DraftID: "mapDraftId",
		Events: []draft.Event{
			{Player: draft.PlayerGuest, Action: draft.ActionPick, OptionID: "Lipany", Sequence: 1000},
		},
	}

	snap := recvSnapshot(t, out, 100*time.Millisecond)
	require.Equal(t, []string{"Lipany"}, snap.State.MapPicksGuest)
	require.Equal(t, []string{"English"}, snap.State.CivPicksHost)
	require.Equal(t, "PlayerA", snap.State.HostName)
	require.Equal(t, "PlayerB", snap.State.GuestName)
}

func TestSession_ReimportIsIdempotent(t *testing.T) {
	s := newTestSession(t)

	imp := ImportDraft{
		Kind:    draft.KindCiv,
		DraftID: "d1",
		Events: []draft.Event{
			{Player: draft.PlayerHost, Action: draft.ActionPick, OptionID: "aoe4.english", Sequence: 1000},
			{Player: draft.PlayerGuest, Action: draft.ActionPick, OptionID: "aoe4.french", Sequence: 2000},
		},
	}
	s.Inbox() <- imp
	s.Inbox() <- imp // full resync of the same draft

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	require.Equal(t, []string{"english"}, view.State.CivPicksHost)
	require.Equal(t, []string{"french"}, view.State.CivPicksGuest)
}

func TestSession_RevealBansUsesImportedCatalog(t *testing.T) {
	s := newTestSession(t)

	s.Inbox() <- ImportDraft{
		Kind:    draft.KindCiv,
		DraftID: "d1",
		Events: []draft.Event{
			{Player: draft.PlayerHost, Action: draft.ActionBan, OptionID: draft.HiddenBanID, Sequence: 1000},
			{Player: draft.PlayerGuest, Action: draft.ActionBan, OptionID: draft.HiddenBanID, Sequence: 2000},
		},
		Catalog: []draft.Option{{ID: "aoe4.chinese", Name: "Chinese"}},
	}

	s.Inbox() <- RevealBans{Events: []draft.Event{
		{Player: draft.PlayerHost, Action: draft.ActionBan, OptionID: "aoe4.chinese", Sequence: 1000},
	}}

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	require.Equal(t, []string{"Chinese"}, view.State.CivBansHost)
	require.Equal(t, []string{draft.HiddenBanName}, view.State.CivBansGuest)
	require.NotNil(t, view.State.LastDraftAction)
	require.Equal(t, "reveal", view.State.LastDraftAction.Action)
}

func TestSession_UpdateMetaMergesFieldByField(t *testing.T) {
	s := newTestSession(t)

	host := "Numudan"
	color := "#ff0000"
	score := 2
	s.Inbox() <- UpdateMeta{HostName: &host, HostColor: &color, ScoreHost: &score}

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	require.Equal(t, "Numudan", view.State.HostName)
	require.Equal(t, "Player 2", view.State.GuestName) // untouched
	require.Equal(t, 2, view.State.Scores.Host)
	require.NotNil(t, view.State.HostColor)
	require.Equal(t, "#ff0000", *view.State.HostColor)
	require.Nil(t, view.State.GuestColor)
}

func TestSession_ResetDiscardsStateButKeepsClients(t *testing.T) {
	s := newTestSession(t)

	out := make(chan Snapshot, 8)
	s.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	s.Inbox() <- ImportDraft{
		Kind:    draft.KindCiv,
		DraftID: "d1",
		Events: []draft.Event{
			{Player: draft.PlayerHost, Action: draft.ActionPick, OptionID: "aoe4.english", Sequence: 1000},
		},
		HostName: "PlayerA",
	}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	s.Inbox() <- Reset{}
	snap := recvSnapshot(t, out, 100*time.Millisecond)

	require.Empty(t, snap.State.CivPicksHost)
	require.Equal(t, "Player 1", snap.State.HostName)
	require.Empty(t, snap.State.CivDraftID)

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)
	require.Equal(t, 1, view.NumClients)
}

func TestSession_SeriesControls(t *testing.T) {
	s := newTestSession(t)

	s.Inbox() <- SetSeriesFormat{Format: "bo3"}
	s.Inbox() <- SetGameWinner{Index: 0, Winner: "HOST"}
	s.Inbox() <- ToggleGameVisibility{Index: 2}
	s.Inbox() <- UpdateGame{Index: 1, Field: "map", Value: "Arena"}

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	require.Equal(t, "bo3", view.State.BoxSeriesFormat)
	require.Len(t, view.State.BoxSeriesGames, 3)
	require.Equal(t, "HOST", view.State.BoxSeriesGames[0].Winner)
	require.False(t, view.State.BoxSeriesGames[2].Visible)
	require.Equal(t, "Arena", view.State.BoxSeriesGames[1].Map)
}

func TestSession_DropSlowClient(t *testing.T) {
	s := newTestSession(t)

	// Unbuffered outbox with no reader: the join snapshot is sent directly,
	// so join with a buffered channel first, then fill it.
	out := make(chan Snapshot, 1)
	s.Inbox() <- Join{ClientID: "c1", Outbox: out}

	// Join snapshot occupies the single buffer slot; the next broadcast
	// cannot be delivered and the client is dropped.
	s.Inbox() <- SetSeriesFormat{Format: "bo1"}
	s.Inbox() <- SetSeriesFormat{Format: "bo3"}

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	require.Equal(t, 0, view.NumClients)
}

func TestSession_PushEventsAppendsIncrementally(t *testing.T) {
	s := newTestSession(t)

	s.Inbox() <- ImportDraft{
		Kind:    draft.KindMap,
		DraftID: "d1",
		Events: []draft.Event{
			{Player: draft.PlayerHost, Action: draft.ActionPick, OptionID: "Dry Arabia", Sequence: 1000},
		},
	}
	s.Inbox() <- PushEvents{
		Kind: draft.KindMap,
		Events: []draft.Event{
			{Player: draft.PlayerGuest, Action: draft.ActionPick, OptionID: "Four Lakes", Sequence: 2000},
		},
	}

	reply := make(chan View, 1)
	s.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	require.Equal(t, []string{"Dry Arabia"}, view.State.MapPicksHost)
	require.Equal(t, []string{"Four Lakes"}, view.State.MapPicksGuest)
}
