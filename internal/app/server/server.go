// Package server wires configuration, storage, and HTTP routes into the
// running payroll service.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"nairapay/internal/domain/auth"
	"nairapay/internal/domain/employees"
	"nairapay/internal/domain/payroll"
	"nairapay/internal/domain/salary"
	"nairapay/internal/platform/config"
	cryptoutil "nairapay/internal/platform/crypto"
	"nairapay/internal/platform/db"
	"nairapay/internal/platform/email"
	"nairapay/internal/platform/metrics"
	"nairapay/internal/transport/http/api"
	authhandler "nairapay/internal/transport/http/handlers/auth"
	employeehandler "nairapay/internal/transport/http/handlers/employees"
	payrollhandler "nairapay/internal/transport/http/handlers/payroll"
	"nairapay/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	cryptoSvc, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		slog.Error("crypto init failed", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	calc, err := salary.NewCalculatorWithEmployerRate(salary.DefaultComponents(), cfg.PensionEmployerRate)
	if err != nil {
		slog.Error("calculator init failed", "err", err)
		os.Exit(1)
	}

	collector := metrics.New()
	mailer := email.New(cfg)
	payrollStore := payroll.NewStore(pool, cryptoSvc)
	payrollSvc := payroll.NewService(payrollStore, calc, mailer, collector, cfg.EmailFrom, cfg.PayslipDir)
	employeeStore := employees.NewStore(pool, cryptoSvc)
	authStore := auth.NewStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recover)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc).RegisterRoutes(r)
	})

	slog.Info("payroll server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
