package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/config"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

// app holds everything the server needs and whatever must be closed on exit.
type app struct {
	router *gin.Engine
	db     *sqlx.DB
	redis  *redis.Client
}

func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

func openStores(ctx context.Context, cfg *config.Config) (domain.LedgerRepository, domain.UserRepository, *sqlx.DB, error) {
	switch {
	case cfg.LedgerDriver == config.DriverMemory:
		return repository.NewInMemoryLedgerRepository(), repository.NewInMemoryUserRepository(), nil, nil

	case cfg.LedgerDriver == config.DriverFile:
		ledgers, err := repository.NewFileLedgerRepository(cfg.LedgerFile)
		if err != nil {
			return nil, nil, nil, err
		}
		return ledgers, repository.NewInMemoryUserRepository(), nil, nil

	case cfg.UsesSQL():
		db, err := repository.OpenDB(ctx, cfg.LedgerDriver, cfg.DSN())
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewSQLLedgerRepository(db), repository.NewSQLUserRepository(db), db, nil
	}

	return nil, nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.LedgerDriver)
}

func newApp(ctx context.Context, cfg *config.Config, clock domain.Clock) (*app, error) {
	startTime := time.Now()

	log.Printf("Opening ledger store (driver=%s)...", cfg.LedgerDriver)
	ledgerRepo, userRepo, db, err := openStores(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %w", err)
	}

	a := &app{db: db}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("[CACHE] Redis unavailable, continuing without cache: %v", err)
		} else {
			a.redis = rdb
			ledgerRepo = repository.NewCachedLedgerRepository(ledgerRepo, rdb)
			log.Println("[CACHE] Redis connected.")
		}
	}

	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL, userRepo)

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(services.NewAuthService(userRepo), tokenService),
		HabitHandler:     adapterHTTP.NewHabitHandler(services.NewLedgerService(ledgerRepo), clock),
		DashboardHandler: adapterHTTP.NewDashboardHandler(services.NewDashboardService(ledgerRepo), clock),
		TokenService:     tokenService,
		DB:               db,
		Redis:            a.redis,
		RateLimit:        cfg.RateLimit.Limit,
		RateWindow:       cfg.RateLimit.Window,
		StartTime:        startTime,
	})

	return a, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	a, err := newApp(context.Background(), cfg, domain.SystemClock)
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso habit tracker running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
