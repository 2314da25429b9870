package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/ledger"
	portsrepo "github.com/finpulse/finpulse_ledger/internal/core/ports/repositories"
	"github.com/finpulse/finpulse_ledger/internal/core/services"
	"github.com/finpulse/finpulse_ledger/internal/handlers"
	"github.com/finpulse/finpulse_ledger/internal/middleware"
	"github.com/finpulse/finpulse_ledger/internal/platform/config"
	"github.com/finpulse/finpulse_ledger/internal/repositories/database/pgsql"
	"github.com/finpulse/finpulse_ledger/internal/repositories/memory"
	"github.com/finpulse/finpulse_ledger/internal/seed"
	"github.com/finpulse/finpulse_ledger/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// @title Fin-Pulse Ledger API
// @version 1.0
// @description General ledger: chart of accounts, double-entry journal and reports.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engineOpts := []ledger.Option{}
	var auditRepo portsrepo.AuditRepository = memory.NewAuditRepository()

	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return err
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}

		repos := pgsql.NewRepositoryProvider(dbPool)
		engineOpts = append(engineOpts, ledger.WithStore(repos.LedgerStore))
		auditRepo = repos.AuditRepo
	} else {
		logger.Warn("No database configured, ledger state will not survive a restart")
	}

	engine := ledger.New(engineOpts...)
	if cfg.DatabaseURL != "" {
		if err := services.LoadLedger(ctx, engine, logger); err != nil {
			return err
		}
	}
	if cfg.SeedDefaultChart {
		created, err := seed.Apply(ctx, engine, seed.DefaultChart, "system")
		if err != nil {
			return err
		}
		if len(created) > 0 {
			logger.Info("Seeded default chart of accounts", slog.Int("accounts", len(created)))
		}
	}

	limiters, closeRedis, err := newLimiters(cfg)
	if err != nil {
		return err
	}
	defer closeRedis()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	container := services.NewServiceContainer(cfg, engine, auditRepo)
	handlers.RegisterRoutes(r, cfg, container, limiters)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newLimiters builds the API and login limiters, sharing counters through
// Redis when REDIS_URL is set.
func newLimiters(cfg *config.Config) (handlers.Limiters, func(), error) {
	var client *redis.Client
	closeFn := func() {}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return handlers.Limiters{}, closeFn, err
		}
		client = redis.NewClient(opts)
		closeFn = func() { _ = client.Close() }
	}

	api, err := middleware.NewLimiter(cfg.RateLimit, client, "ledger_api")
	if err != nil {
		closeFn()
		return handlers.Limiters{}, func() {}, err
	}
	login, err := middleware.NewLimiter(cfg.LoginRateLimit, client, "ledger_login")
	if err != nil {
		closeFn()
		return handlers.Limiters{}, func() {}, err
	}
	return handlers.Limiters{API: api, Login: login}, closeFn, nil
}
