package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msomdec/trainer-streaks/internal/domain"
	"github.com/msomdec/trainer-streaks/internal/handler"
	"github.com/msomdec/trainer-streaks/internal/notify"
	"github.com/msomdec/trainer-streaks/internal/repository/postgres"
	"github.com/msomdec/trainer-streaks/internal/repository/sqlite"
	"github.com/msomdec/trainer-streaks/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "trainer.db")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	// Default to secure cookies; disable only for local development.
	cookieSecure := os.Getenv("COOKIE_SECURE") != "false"

	bcryptCost, err := envInt("BCRYPT_COST", 12)
	if err != nil {
		slog.Error("invalid BCRYPT_COST", "error", err)
		os.Exit(1)
	}
	if bcryptCost < 4 || bcryptCost > 14 {
		slog.Error("BCRYPT_COST must be between 4 and 14", "value", bcryptCost)
		os.Exit(1)
	}

	loc := time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			slog.Error("invalid TIMEZONE", "value", tz, "error", err)
			os.Exit(1)
		}
	}

	rps, err := strconv.ParseFloat(envOrDefault("RATE_LIMIT_RPS", "5"), 64)
	if err != nil || rps <= 0 {
		slog.Error("RATE_LIMIT_RPS must be a positive number", "value", os.Getenv("RATE_LIMIT_RPS"))
		os.Exit(1)
	}
	burst, err := envInt("RATE_LIMIT_BURST", 30)
	if err != nil || burst <= 0 {
		slog.Error("RATE_LIMIT_BURST must be a positive integer", "value", os.Getenv("RATE_LIMIT_BURST"))
		os.Exit(1)
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	var markers domain.MarkerStore = db.Markers()
	if url := os.Getenv("MARKER_DATABASE_URL"); url != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pg, err := postgres.Open(ctx, url)
		cancel()
		if err != nil {
			slog.Error("failed to open marker database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		markers = pg
		slog.Info("using postgres marker store")
	}

	var notifier service.Notifier
	fcm, err := notify.NewFCM(context.Background(), os.Getenv("FCM_SERVICE_ACCOUNT_JSON"), os.Getenv("FCM_CREDENTIALS_FILE"))
	switch {
	case err == nil:
		notifier = fcm
		slog.Info("push sharing enabled")
	case errors.Is(err, notify.ErrNoCredentials):
		slog.Info("push sharing disabled, celebrations will be shared by clipboard")
	default:
		slog.Warn("could not initialize push sharing", "error", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	handler.RegisterMetrics(reg)
	service.RegisterMetrics(reg)

	authService := service.NewAuthService(db.Users(), jwtSecret, bcryptCost)
	clientService := service.NewClientService(db.Clients(), db.Sessions(), db.Progress())
	gamificationService := service.NewGamificationService(
		clientService,
		service.NewRecoveryService(markers, loc),
		service.NewCelebrationService(markers, notifier),
		service.NewBadgeService(db.BadgeUnlocks()),
		loc,
	)
	limiter := service.NewRateLimiter(rps, burst)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, clientService, gamificationService, limiter, loc, cookieSecure)
	mux.Handle("GET /readyz", handler.HandleReadyz(db.SqlDB))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.RequestID(handler.SecurityHeaders(handler.Monitor(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func envInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}
