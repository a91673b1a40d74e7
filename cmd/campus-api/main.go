// main is the entry point of the campus API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open (and set up) the SQLite database
//  4. Build the router
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, close the database
//
// RUNNING THE SERVER:
//
//	go run ./cmd/campus-api --config=config/local.yaml
//
// or:
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/campus-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/http/router"
	"github.com/aanand-mishra/campus-api/internal/storage/sqlite"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting campus-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// The rest of the code only sees the storage.Storage interface.
	store, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised", slog.String("path", cfg.StoragePath))

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router.New(store, log, cfg.CORS.AllowedOrigins),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed after Shutdown; that
		// is the normal exit path.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Buffered so the signal is not dropped if main is briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
	}

	if err := store.Close(); err != nil {
		log.Error("failed to close storage", slog.String("error", err.Error()))
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
//	dev (default): human-readable text at DEBUG
//	staging:       JSON at DEBUG
//	prod:          JSON at INFO
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
