package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alexandremahdhaoui/tooling/pkg/flaterrors"
	"github.com/joho/godotenv"

	"github.com/zr6b/voteapp/auth"
	"github.com/zr6b/voteapp/calendar"
	"github.com/zr6b/voteapp/cliparse"
	"github.com/zr6b/voteapp/db"
	"github.com/zr6b/voteapp/ledger"
	"github.com/zr6b/voteapp/middleware"
	"github.com/zr6b/voteapp/ratelimit"
	"github.com/zr6b/voteapp/router"
)

func main() {
	var err error

	// A missing .env is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.PrintAdminKey {
		fmt.Println(auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt))
		return
	}

	loc, err := calendar.LoadZone(cfg.TimeZone)
	if err != nil {
		slog.Error("invalid time zone", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the store
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "dialect", cfg.DatabaseType)

	tun := cfg.Tunables
	votes := ratelimit.NewVoteLimiter(loc, nil)
	messages := ratelimit.NewMessageLimiter(tun.MessageCooldown.Duration, tun.MessageSweepAge.Duration, nil)

	lg := ledger.New(dbConn, votes, messages, ledger.OptionsFromTunables(tun, loc))
	if err := lg.Seed(ctx); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Ledger ready", "regions", len(lg.Regions()), "today", lg.Today(), "zone", loc.String())

	go ratelimit.RunSweeper(ctx, tun.SweepInterval.Duration, time.Now, votes, messages)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(router.NewRouter(lg, cfg)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err == http.ErrServerClosed {
		err = nil
	}
	err = flaterrors.Join(err, dbConn.Close())
	if err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}
