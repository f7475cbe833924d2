package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/pint-index/auth"
	"github.com/danielhkuo/pint-index/cliparse"
	"github.com/danielhkuo/pint-index/db"
	"github.com/danielhkuo/pint-index/router"
	"github.com/danielhkuo/pint-index/store"
	"github.com/danielhkuo/pint-index/telemetry"
)

const version = "1.0.0"

func main() {
	var err error

	// Load .env before flags so env fallbacks see it
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg, os.Stderr))

	if cfg.PrintAdminKey {
		fmt.Println(auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt))
		return
	}

	if !cfg.AdminEnabled() {
		slog.Warn("ADMIN_KEY_SALT not set, admin routes are disabled")
	}

	// Tracing
	var traceOut io.Writer
	if cfg.TraceStdout {
		traceOut = os.Stdout
	}
	shutdownTracing, err := telemetry.Setup(telemetry.ServiceName, version, traceOut)
	if err != nil {
		slog.Error("tracing setup failed", "error", err)
		os.Exit(1)
	}

	// Connect to storage
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	s, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("storage connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer s.Close()
	slog.Info("Storage ready", "type", cfg.DatabaseType, "price_model", cfg.PriceModel)

	// Create server
	server := http.Server{
		Handler:           router.NewHandler(s, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "version", version)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		slog.Warn("tracing shutdown failed", "error", err)
	}
}

func newLogger(cfg cliparse.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func openStore(ctx context.Context, cfg cliparse.Config) (store.Store, error) {
	switch cfg.DatabaseType {
	case cliparse.DatabaseMemory:
		slog.Warn("using in-memory storage, data is lost on exit")
		return store.NewMemory(), nil
	case cliparse.DatabaseSQLite:
		conn, err := db.Open(ctx, db.DialectSQLite, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store.NewSQL(conn, db.DialectSQLite), nil
	case cliparse.DatabasePostgres:
		conn, err := db.Open(ctx, db.DialectPostgres, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store.NewSQL(conn, db.DialectPostgres), nil
	case cliparse.DatabaseFirestore:
		return store.NewFirestore(ctx, cfg.FirestoreProject)
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}
}
