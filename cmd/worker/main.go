package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	r "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/you/orderq/internal/config"
	"github.com/you/orderq/internal/queue"
	"github.com/you/orderq/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := newLogger(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := r.NewClient(&r.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	q := queue.New(rdb, cfg.QueueName)

	// each worker owns its own database pool; throughput scales by count
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.WorkerCount; i++ {
		w := worker.New(q, cfg.PostgresDSN, logger)
		g.Go(func() error { return w.Run(gctx) })
	}

	logger.Info("workers running",
		zap.Int("count", cfg.WorkerCount), zap.String("queue", cfg.QueueName))
	if err := g.Wait(); err != nil {
		logger.Fatal("worker error", zap.Error(err))
	}
	logger.Info("workers stopped")
}

func newLogger(appEnv string) *zap.Logger {
	if appEnv == "development" {
		l, _ := zap.NewDevelopment()
		return l
	}
	l, _ := zap.NewProduction()
	return l
}
