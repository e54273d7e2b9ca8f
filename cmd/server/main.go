package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/fairsplit/internal/auth"
	"github.com/mmynk/fairsplit/internal/config"
	"github.com/mmynk/fairsplit/internal/history"
	"github.com/mmynk/fairsplit/internal/metrics"
	"github.com/mmynk/fairsplit/internal/middleware"
	"github.com/mmynk/fairsplit/internal/service"
	"github.com/mmynk/fairsplit/internal/storage"
	"github.com/mmynk/fairsplit/internal/storage/sqlite"
	"github.com/mmynk/fairsplit/pkg/api/apiconnect"
	"github.com/mmynk/fairsplit/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(cfg.LogLevel)
	logger := slog.Default()
	if cfg.JWTSecret == config.DevJWTSecret {
		logger.Warn("Using development JWT secret; set JWT_SECRET outside local runs")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	registry := prometheus.NewRegistry()
	metrics.RegisterRuntime(registry)
	m := metrics.New(metrics.Namespace, registry)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)
	manager := history.NewManager(store, history.WithLimit(cfg.HistoryLimit))

	// Outermost first. Metrics see rejected tokens; logging sees the user.
	chain := func(authn connect.Interceptor) connect.HandlerOption {
		return connect.WithInterceptors(
			middleware.MetricsInterceptor(m),
			authn,
			middleware.LoggingInterceptor(logger),
		)
	}
	optional := chain(middleware.OptionalAuth(jwtManager))
	required := chain(middleware.RequireAuth(jwtManager))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSplitServiceHandler(service.NewSplitService(logger, m), optional))
	mux.Handle(apiconnect.NewHistoryServiceHandler(service.NewHistoryService(manager, logger, m), required))
	mux.Handle(apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager, store, logger), optional))
	mux.Handle("/metrics", metrics.Handler(registry))
	mux.Handle("/healthz", healthHandler(store))

	handler := loggingMiddleware(logger, corsMiddleware(cfg, mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Connect server starting", "address", server.Addr, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}

// healthHandler reports 200 while the database answers.
func healthHandler(store storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// loggingMiddleware logs all incoming requests at debug level.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access from allowed origins.
func corsMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && cfg.AllowsOrigin(origin) {
			if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", strings.Join([]string{
				"Content-Type", "Authorization", "Connect-Protocol-Version", "Connect-Timeout-Ms",
			}, ", "))
			w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
