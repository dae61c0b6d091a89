package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/overseerhq/caster-overlay-server/internal/aoe2cm"
	"github.com/overseerhq/caster-overlay-server/internal/config"
	"github.com/overseerhq/caster-overlay-server/internal/httpapi"
	"github.com/overseerhq/caster-overlay-server/internal/hub"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h := hub.NewHub(ctx, log)
	drafts := aoe2cm.NewClient(cfg.DraftBaseURL)

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, drafts, log, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		h.Inbox() <- hub.ShutdownHub{}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
