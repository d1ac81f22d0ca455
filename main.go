package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mankru71/OpinionHub/cliparse"
	"github.com/mankru71/OpinionHub/db"
	"github.com/mankru71/OpinionHub/middleware"
	"github.com/mankru71/OpinionHub/notify"
	"github.com/mankru71/OpinionHub/polls"
	"github.com/mankru71/OpinionHub/router"
	"github.com/mankru71/OpinionHub/scheduler"
)

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Configuration from flags and environment
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Fail fast if the database is unreachable
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Ensure tables exist
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Schema ready")

	svc := polls.NewService(dbConn, cfg.VoterHashSalt)
	hub := notify.NewHub()

	// Cooperative stop signal for the lifecycle scheduler
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(svc, cfg.ArchiveAfterDays)
	go sched.Run(ctx)

	mux := router.NewRouter(svc, hub, cfg)

	// Browser clients need the CORS wrapper
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
