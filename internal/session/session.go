package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/overseerhq/caster-overlay-server/internal/draft"
)

// Session is the single writer for one overlay session: one goroutine owns
// the board, the pass-through meta and the client outboxes. Batches are
// applied strictly one at a time; readers only ever see the immutable
// snapshot copies handed out on broadcast. The board is replaced wholesale
// on every reduction, so slices referenced by an already-sent snapshot are
// never written again.
type Session struct {
	inbox   chan Msg
	board   draft.Board
	meta    Meta
	version int
	clients map[string]chan Snapshot

	civDraftID string
	mapDraftID string
	civCatalog []draft.Option
	mapCatalog []draft.Option

	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		inbox:   make(chan Msg, 64),
		board:   draft.NewBoard(),
		meta:    defaultMeta(),
		clients: make(map[string]chan Snapshot),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go s.loop()
	return s
}

func (s *Session) Inbox() chan<- Msg { return s.inbox }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: s.version, State: s.merged()}

			case Leave:
				delete(s.clients, msg.ClientID)

			case ImportDraft:
				s.importDraft(msg)
				s.bump()

			case PushEvents:
				s.dropInvalid(msg.Events)
				s.board = s.board.ApplyDraft(msg.Kind, msg.Events, s.catalogFor(msg.Kind))
				s.bump()

			case RevealBans:
				catalog := append(append([]draft.Option{}, s.civCatalog...), s.mapCatalog...)
				s.board = s.board.RevealBans(msg.Events, catalog)
				s.bump()

			case UpdateMeta:
				s.mergeMeta(msg)
				s.bump()

			case SetSeriesFormat:
				s.board = s.board.SetSeriesFormat(msg.Format)
				s.bump()

			case SetGameWinner:
				s.board = s.board.SetGameWinner(msg.Index, msg.Winner)
				s.bump()

			case ToggleGameVisibility:
				s.board = s.board.ToggleGameVisibility(msg.Index)
				s.bump()

			case UpdateGame:
				s.board = s.board.UpdateGame(msg.Index, msg.Field, msg.Value)
				s.bump()

			case Reset:
				s.board = draft.NewBoard()
				s.meta = defaultMeta()
				s.civDraftID, s.mapDraftID = "", ""
				s.civCatalog, s.mapCatalog = nil, nil
				s.bump()

			case GetState:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					State:      s.merged(),
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

// importDraft rebuilds one kind's state from the complete event list.
// Resync and first import share this path: apply everything from empty.
func (s *Session) importDraft(msg ImportDraft) {
	s.dropInvalid(msg.Events)

	s.board = s.board.ResetDraft(msg.Kind).ApplyDraft(msg.Kind, msg.Events, msg.Catalog)

	if msg.Kind == draft.KindCiv {
		s.civDraftID, s.civCatalog = msg.DraftID, msg.Catalog
	} else {
		s.mapDraftID, s.mapCatalog = msg.DraftID, msg.Catalog
	}
	if msg.HostName != "" {
		s.meta.HostName = msg.HostName
	}
	if msg.GuestName != "" {
		s.meta.GuestName = msg.GuestName
	}
}

func (s *Session) mergeMeta(msg UpdateMeta) {
	if msg.HostName != nil {
		s.meta.HostName = *msg.HostName
	}
	if msg.GuestName != nil {
		s.meta.GuestName = *msg.GuestName
	}
	if msg.ScoreHost != nil {
		s.meta.ScoreHost = *msg.ScoreHost
	}
	if msg.ScoreGuest != nil {
		s.meta.ScoreGuest = *msg.ScoreGuest
	}
	if msg.HostColor != nil {
		s.meta.HostColor = msg.HostColor
	}
	if msg.GuestColor != nil {
		s.meta.GuestColor = msg.GuestColor
	}
	if msg.HostFlag != nil {
		s.meta.HostFlag = msg.HostFlag
	}
	if msg.GuestFlag != nil {
		s.meta.GuestFlag = msg.GuestFlag
	}
}

func (s *Session) catalogFor(kind draft.Kind) []draft.Option {
	if kind == draft.KindCiv {
		return s.civCatalog
	}
	return s.mapCatalog
}

// dropInvalid logs malformed events; the reducer skips them anyway, a single
// corrupt upstream event must not stall the broadcast.
func (s *Session) dropInvalid(events []draft.Event) {
	for _, ev := range events {
		if !ev.Valid() {
			s.log.Warn("dropping malformed draft event",
				zap.String("player", string(ev.Player)),
				zap.String("action", string(ev.Action)),
				zap.String("option", ev.OptionID))
		}
	}
}

func (s *Session) merged() BroadcastState {
	return mergeBroadcastState(s.board, s.meta, s.civDraftID, s.mapDraftID)
}

func (s *Session) bump() {
	s.version++
	s.broadcast(Snapshot{Version: s.version, State: s.merged()})
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(s.clients, id)
		}
	}
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	s.cancel()
}
