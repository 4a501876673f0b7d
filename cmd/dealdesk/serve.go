package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KOMKZ/go-dealdesk/api"
	"github.com/KOMKZ/go-dealdesk/auth"
	"github.com/KOMKZ/go-dealdesk/cache"
	"github.com/KOMKZ/go-dealdesk/config"
	"github.com/KOMKZ/go-dealdesk/health"
	"github.com/KOMKZ/go-dealdesk/logger"
	"github.com/KOMKZ/go-dealdesk/store"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

// buildInjector registers all application components. Providers run lazily;
// the first invocation of the router pulls the whole graph up.
func buildInjector(configPath string) (do.Injector, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	injector := do.New()

	do.ProvideValue(injector, cfg)

	do.Provide(injector, func(i do.Injector) (*logger.Manager, error) {
		appCfg := do.MustInvoke[*config.AppConfig](i)
		m := logger.NewManager(appCfg.Logger)
		logger.Init(appCfg.Logger)
		return m, nil
	})

	do.Provide(injector, func(i do.Injector) (*gorm.DB, error) {
		appCfg := do.MustInvoke[*config.AppConfig](i)
		return store.Open(appCfg.Database)
	})

	do.Provide(injector, func(i do.Injector) (redis.UniversalClient, error) {
		appCfg := do.MustInvoke[*config.AppConfig](i)
		return redis.NewClient(&redis.Options{
			Addr:     appCfg.Redis.Addr,
			Password: appCfg.Redis.Password,
			DB:       appCfg.Redis.DB,
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (*cache.Policy, error) {
		appCfg := do.MustInvoke[*config.AppConfig](i)
		policy := appCfg.Cache
		policy.ApplyDefaults()
		return &policy, nil
	})

	do.Provide(injector, func(i do.Injector) (*cache.Client, error) {
		appCfg := do.MustInvoke[*config.AppConfig](i)
		manager := do.MustInvoke[*logger.Manager](i)
		rdb := do.MustInvoke[redis.UniversalClient](i)
		policy := do.MustInvoke[*cache.Policy](i)
		s := cache.NewRedisStore("redis", rdb, appCfg.Redis.KeyPrefix)
		return cache.NewClient(s, policy.OpTimeout, manager.Get("cache")), nil
	})

	do.Provide(injector, func(i do.Injector) (auth.TokenManager, error) {
		appCfg := do.MustInvoke[*config.AppConfig](i)
		return auth.NewTokenManager(appCfg.Auth), nil
	})

	do.Provide(injector, func(i do.Injector) (*health.Aggregator, error) {
		agg := health.NewAggregator(0)
		agg.Register(health.NewDatabaseChecker(do.MustInvoke[*gorm.DB](i)))
		agg.Register(health.NewRedisChecker(do.MustInvoke[redis.UniversalClient](i)))
		return agg, nil
	})

	do.Provide(injector, func(i do.Injector) (*gin.Engine, error) {
		return api.NewRouter(api.RouterConfig{
			DB:           do.MustInvoke[*gorm.DB](i),
			Cache:        do.MustInvoke[*cache.Client](i),
			Policy:       do.MustInvoke[*cache.Policy](i),
			TokenManager: do.MustInvoke[auth.TokenManager](i),
			Health:       do.MustInvoke[*health.Aggregator](i),
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (*http.Server, error) {
		appCfg := do.MustInvoke[*config.AppConfig](i)
		engine := do.MustInvoke[*gin.Engine](i)
		return &http.Server{
			Addr:         appCfg.Server.Addr(),
			Handler:      engine,
			ReadTimeout:  appCfg.Server.ReadTimeout,
			WriteTimeout: appCfg.Server.WriteTimeout,
		}, nil
	})

	return injector, nil
}

func runServe(configPath string) error {
	gin.SetMode(gin.ReleaseMode)

	injector, err := buildInjector(configPath)
	if err != nil {
		return err
	}

	cfg := do.MustInvoke[*config.AppConfig](injector)
	manager := do.MustInvoke[*logger.Manager](injector)
	log := manager.Get("app")
	defer manager.Close()

	srv := do.MustInvoke[*http.Server](injector)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	if rdb, err := do.Invoke[redis.UniversalClient](injector); err == nil {
		_ = rdb.Close()
	}
	if db, err := do.Invoke[*gorm.DB](injector); err == nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	log.Info("server stopped")
	return nil
}
