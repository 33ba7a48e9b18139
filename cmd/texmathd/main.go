package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/eolymp/go-texmath/internal/config"
	"github.com/eolymp/go-texmath/internal/handler"
	"github.com/eolymp/go-texmath/internal/logger"
	"github.com/eolymp/go-texmath/internal/render"
	"github.com/eolymp/go-texmath/internal/server"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.App.LogFilePath, cfg.IsProduction())
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.Cache.RedisURL != "" {
		rdb = render.NewRedisClient(ctx, cfg.Cache.RedisURL, log)
		defer rdb.Close()
	}

	service := render.New(render.Options(cfg.TexMath, log), cfg.Cache.TTL, rdb, log)
	srv := server.New(cfg, handler.NewConvertHandler(service, log), log)

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
