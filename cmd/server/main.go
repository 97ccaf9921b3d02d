// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/sketchchain/sketchchain/internal/config"
	"github.com/sketchchain/sketchchain/internal/game"
	"github.com/sketchchain/sketchchain/internal/handlers"
	"github.com/sketchchain/sketchchain/internal/middleware"
	"github.com/sketchchain/sketchchain/internal/room"
	"github.com/sketchchain/sketchchain/internal/transport"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogrusLevel())

	store := room.NewStore()
	hub := transport.NewHub(logger)
	coord := game.NewCoordinator(store, hub, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go coord.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handlers.HealthHandler)
	mux.Handle("/connections", middleware.RequestLogger(logger)(handlers.ConnectionsHandler(hub)))
	mux.Handle("/ws", middleware.RequestLogger(logger)(handlers.WSHandler(logger, hub, coord, cfg.AllowedOrigins)))

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
	}).Handler(mux)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", server.Addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		logger.Fatalf("server exited: %v", err)
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("shutdown: %v", err)
		}
	}
}
