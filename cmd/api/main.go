package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/wathera-admin/internal/api"
	"github.com/example/wathera-admin/internal/auth"
	"github.com/example/wathera-admin/internal/config"
	"github.com/example/wathera-admin/internal/logger"
	"github.com/example/wathera-admin/internal/orders"
	"github.com/example/wathera-admin/internal/products"
	"github.com/example/wathera-admin/internal/remote"
	"github.com/example/wathera-admin/internal/storage"
	syncsignal "github.com/example/wathera-admin/internal/signal"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.LoggerMode, cfg.LogFile); err != nil {
		panic(err)
	}
	defer zap.S().Sync() //nolint:errcheck

	store, err := openStore(cfg)
	if err != nil {
		zap.S().Fatalf("open store: %v", err)
	}
	defer store.Close()
	zap.S().Infof("store backend ready: %s", cfg.StoreBackend)

	hub := newHub(ctx, cfg)

	var client *remote.Client
	if cfg.RemoteBaseURL != "" {
		client = remote.NewClient(cfg.RemoteBaseURL, cfg.RemoteTimeout)
		zap.S().Infof("remote fetch fallback enabled: %s", cfg.RemoteBaseURL)
	}

	productSvc := products.New(store, hub, client)
	orderSvc := orders.New(store, hub, client, productSvc)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenExpiry)
	authSvc, err := auth.NewService(store, tokens, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		zap.S().Fatalf("init auth: %v", err)
	}

	handlers := api.NewHandlers(authSvc, productSvc, orderSvc, store)
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewRouter(handlers, tokens),
	}

	go func() {
		zap.S().Infof("admin API listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			zap.S().Fatalf("server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	zap.S().Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.S().Warnf("shutdown: %v", err)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "bolt":
		return storage.NewBoltStore(cfg.BoltPath)
	case "redis":
		return storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
	case "postgres":
		db, err := storage.ConnectPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return storage.NewPostgresStore(db)
	}
	return storage.NewMemoryStore(), nil
}

func newHub(ctx context.Context, cfg *config.Config) *syncsignal.Hub {
	hub := syncsignal.NewHub()
	if len(cfg.KafkaBrokers) > 0 {
		bridge := syncsignal.NewBridge(hub, cfg.KafkaBrokers, cfg.KafkaTopic)
		bridge.Start(ctx)
		zap.S().Infof("cross-process sync bridge enabled: %v", cfg.KafkaBrokers)
	}
	return hub
}
