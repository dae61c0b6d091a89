package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/overseerhq/caster-overlay-server/internal/aoe2cm"
	"github.com/overseerhq/caster-overlay-server/internal/draft"
	"github.com/overseerhq/caster-overlay-server/internal/hub"
	"github.com/overseerhq/caster-overlay-server/internal/session"
)

var errMissingDraft = errors.New("importDraft requires draftId and draftType")

func Handler(h *hub.Hub, drafts *aoe2cm.Client, log *zap.Logger, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		sess := <-reply
		if sess == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		clientID := uuid.NewString()

		sess.Inbox() <- session.Join{ClientID: clientID, Outbox: out}
		defer func() { sess.Inbox() <- session.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := ServerMessage{Type: "broadcastState", Version: snap.Version, State: &snap.State}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			if cm.Type == "importDraft" {
				// The only control that suspends: pull the draft, then hand
				// the batch to the session. A failed pull keeps the last good
				// snapshot; only the requester hears about it.
				if err := importDraft(r.Context(), sess, drafts, cm); err != nil {
					log.Warn("draft import failed",
						zap.String("draftId", cm.DraftID), zap.Error(err))
					writeError(r.Context(), conn, "draft import failed: "+err.Error())
				}
				continue
			}

			msg, ok := toSessionMsg(cm)
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}
			sess.Inbox() <- msg
		}
	}
}

func importDraft(ctx context.Context, sess *session.Session, drafts *aoe2cm.Client, cm ClientMessage) error {
	kind, ok := parseKind(cm.DraftType)
	if !ok || cm.DraftID == "" {
		return errMissingDraft
	}

	raw, err := drafts.FetchDraft(ctx, cm.DraftID)
	if err != nil {
		return err
	}

	sess.Inbox() <- session.ImportDraft{
		Kind:      kind,
		DraftID:   cm.DraftID,
		Events:    raw.DraftEvents(),
		Catalog:   raw.Catalog(),
		HostName:  raw.NameHost,
		GuestName: raw.NameGuest,
	}
	return nil
}

func toSessionMsg(cm ClientMessage) (session.Msg, bool) {
	switch cm.Type {
	case "pushEvents":
		kind, ok := parseKind(cm.DraftType)
		if !ok {
			return nil, false
		}
		return session.PushEvents{Kind: kind, Events: aoe2cm.MapEvents(cm.Events)}, true

	case "revealBans":
		return session.RevealBans{Events: aoe2cm.MapEvents(cm.Events)}, true

	case "updateDraftData":
		if cm.Data == nil {
			return nil, false
		}
		return toUpdateMeta(*cm.Data), true

	case "setSeriesFormat":
		return session.SetSeriesFormat{Format: cm.Format}, true

	case "setGameWinner":
		return session.SetGameWinner{Index: cm.Index, Winner: cm.Winner}, true

	case "toggleGameVisibility":
		return session.ToggleGameVisibility{Index: cm.Index}, true

	case "updateGame":
		return session.UpdateGame{Index: cm.Index, Field: cm.Field, Value: cm.Value}, true

	case "reset":
		return session.Reset{}, true

	default:
		return nil, false
	}
}

func toUpdateMeta(p MetaPayload) session.UpdateMeta {
	m := session.UpdateMeta{
		HostName:   p.HostName,
		GuestName:  p.GuestName,
		HostColor:  p.HostColor,
		GuestColor: p.GuestColor,
		HostFlag:   p.HostFlag,
		GuestFlag:  p.GuestFlag,
	}
	if p.Scores != nil {
		m.ScoreHost = p.Scores.Host
		m.ScoreGuest = p.Scores.Guest
	}
	return m
}

func parseKind(s string) (draft.Kind, bool) {
	switch s {
	case "civ":
		return draft.KindCiv, true
	case "map":
		return draft.KindMap, true
	default:
		return "", false
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(ServerMessage{Type: "error", Error: msg})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}
