package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/overseerhq/caster-overlay-server/internal/aoe2cm"
	"github.com/overseerhq/caster-overlay-server/internal/hub"
	"github.com/overseerhq/caster-overlay-server/internal/ws"
)

func SetupRoutes(h *hub.Hub, drafts *aoe2cm.Client, log *zap.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Post("/sessions", CreateSession(h, log))
	r.Get("/sessions/{code}/broadcast_state", BroadcastState(h))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, drafts, log, allowedOrigins))

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(r)
}
