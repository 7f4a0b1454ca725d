// Command server runs the stamp ledger HTTP API.
//
// @title                       Stamp Ledger API
// @version                     1.0
// @description                 Multi-tenant loyalty stamp ledger.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	_ "github.com/stampwallet/stamp-ledger/docs"
	"github.com/stampwallet/stamp-ledger/internal/api"
	"github.com/stampwallet/stamp-ledger/internal/core/ports"
	"github.com/stampwallet/stamp-ledger/internal/core/service"
	"github.com/stampwallet/stamp-ledger/internal/infrastructure/db/mongo"
	"github.com/stampwallet/stamp-ledger/internal/infrastructure/db/redis"
	"github.com/stampwallet/stamp-ledger/internal/infrastructure/memory"
	"github.com/stampwallet/stamp-ledger/internal/infrastructure/security"
	"github.com/stampwallet/stamp-ledger/internal/infrastructure/seed"
	"github.com/stampwallet/stamp-ledger/internal/pkg/config"
	"github.com/stampwallet/stamp-ledger/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "stamp-ledger",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Registry ---
	sd, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		return err
	}
	verifier := security.NewBcryptVerifier(cfg.BcryptCost)
	stores, users, err := sd.Build(verifier)
	if err != nil {
		return err
	}
	log.Info().Int("stores", len(stores)).Int("users", len(users)).Msg("registry loaded")

	// --- Optional backends ---
	var rdb *goredis.Client
	if cfg.UsesRedis() {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	var (
		mdb     *mongodriver.Database
		archive ports.AuditArchive
	)
	if cfg.Mongo.URI != "" {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Warn().Err(err).Msg("audit archive disabled")
		} else {
			defer func() { _ = client.Disconnect(context.Background()) }()
			a := mongo.NewAuditArchive(db)
			if err := a.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to ensure audit archive indexes")
			}
			mdb, archive = db, a
			log.Info().Str("database", cfg.Mongo.Database).Msg("audit archive enabled")
		}
	}

	var sessions ports.SessionStore = memory.NewSessionStore()
	if cfg.SessionBackend == config.BackendRedis {
		sessions = redis.NewSessionStore(rdb, cfg.SessionTTL)
	}
	var limiter ports.RateLimiter = memory.NewRateLimiter(memory.DefaultRateWindow, memory.DefaultRateMax, nil)
	if cfg.RateLimitBackend == config.BackendRedis {
		limiter = redis.NewRateLimiter(rdb, memory.DefaultRateWindow, memory.DefaultRateMax, nil)
	}

	// --- Services ---
	directory := memory.NewStoreDirectory(stores)
	authService := service.NewAuthService(directory, memory.NewUserRepository(users), verifier, sessions, cfg.SessionTTL, log)
	loyaltyService := service.NewLoyaltyService(service.LoyaltyDeps{
		Stores:  directory,
		Auth:    authService,
		Ledger:  memory.NewLedgerStore(),
		Audit:   memory.NewAuditLog(cfg.AuditCapacity),
		Limiter: limiter,
		Archive: archive,
	}, log)

	e := api.NewRouter(api.RouterDeps{
		Auth:            authService,
		Loyalty:         loyaltyService,
		Mongo:           mdb,
		Redis:           rdb,
		Log:             log,
		LoginRatePerSec: cfg.LoginRate,
		LoginBurst:      cfg.LoginBurst,
	})

	// --- Lifecycle ---
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
