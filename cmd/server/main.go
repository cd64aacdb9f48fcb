package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"vacations/internal/domain/auth"
	"vacations/internal/domain/employee"
	"vacations/internal/domain/substitute"
	"vacations/internal/domain/vacation"
	"vacations/internal/platform/cache"
	"vacations/internal/platform/config"
	"vacations/internal/platform/db"
	"vacations/internal/platform/holiday"
	"vacations/internal/platform/jobs"
	"vacations/internal/platform/metrics"
	"vacations/internal/transport/http/api"
	"vacations/internal/transport/http/handlers/authhandler"
	"vacations/internal/transport/http/handlers/employeehandler"
	"vacations/internal/transport/http/handlers/substitutehandler"
	"vacations/internal/transport/http/handlers/vacationhandler"
	"vacations/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	collector := metrics.New()
	memCache := cache.New(time.Now)
	holidays := holiday.NewProvider(cfg.HolidayAPIURL, cfg.HolidayAPITimeout, memCache, cfg.HolidayCacheTTL)

	employeeStore := employee.NewStore(pool)
	vacationStore := vacation.NewStore(pool)
	substituteStore := substitute.NewStore(pool)
	authStore := auth.NewStore(pool)

	distributor := vacation.NewDistributor(vacationStore, holidays, vacation.DistributorConfig{
		Capacity:              cfg.OccupancyCapacity,
		KeyByYear:             cfg.OccupancyKeyByYear,
		LongAbsenceDays:       cfg.LongAbsenceDays,
		SundayOnlyConventions: cfg.SundayOnlyConventions,
	})
	reconciler := &vacation.Reconciler{
		Store:           vacationStore,
		WindowDays:      cfg.ReconcileWindowDays,
		LongAbsenceDays: cfg.LongAbsenceDays,
	}

	jobsSvc := jobs.New(pool)
	jobsSvc.Start(ctx, cfg.ReconcileInterval, func(ctx context.Context) (any, error) {
		result, err := reconciler.Reconcile(ctx, time.Now())
		if err == nil {
			collector.RecordCancellations(result.CancelledCount)
		}
		return result, err
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.SecureHeaders)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
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
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			vacationhandler.NewHandler(vacationStore, distributor, reconciler, jobsSvc, collector).RegisterRoutes(r)
			employeehandler.NewHandler(employeeStore).RegisterRoutes(r)
			substitutehandler.NewHandler(substituteStore).RegisterRoutes(r)
		})
	})

	slog.Info("vacation scheduler listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
