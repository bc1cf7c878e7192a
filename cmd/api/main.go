package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	r "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/you/orderq/internal/api"
	"github.com/you/orderq/internal/auth"
	"github.com/you/orderq/internal/config"
	"github.com/you/orderq/internal/domain"
	"github.com/you/orderq/internal/queue"
	"github.com/you/orderq/internal/service"
	"github.com/you/orderq/internal/storage"
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

	if err := migrate(cfg); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	db, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("failed to open database pool", zap.Error(err))
	}
	defer db.Close()
	if err := bootstrapUsers(ctx, storage.New(db), cfg); err != nil {
		logger.Fatal("failed to create default users", zap.Error(err))
	}

	rdb := r.NewClient(&r.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	q := queue.New(rdb, cfg.QueueName)
	svc := service.New(q, cfg, logger)

	srv := &http.Server{Addr: cfg.APIAddr, Handler: api.NewRouter(svc, logger)}
	go func() {
		<-ctx.Done()
		shctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shctx)
	}()

	logger.Info("api listening", zap.String("addr", cfg.APIAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("api stopped")
}

func newLogger(appEnv string) *zap.Logger {
	if appEnv == "development" {
		l, _ := zap.NewDevelopment()
		return l
	}
	l, _ := zap.NewProduction()
	return l
}

func migrate(cfg config.Config) error {
	db, err := sql.Open("pgx", cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, cfg.MigrationsDir)
}

func bootstrapUsers(ctx context.Context, store *storage.Store, cfg config.Config) error {
	accounts := []struct {
		username, password string
		role               domain.UserRole
	}{
		{cfg.DefaultAdminUsername, cfg.DefaultAdminPassword, domain.RoleAdmin},
		{cfg.DefaultUserUsername, cfg.DefaultUserPassword, domain.RoleUser},
	}
	for _, a := range accounts {
		if a.password == "" {
			continue
		}
		hash, err := auth.HashPassword(a.password)
		if err != nil {
			return err
		}
		if err := store.CreateUser(ctx, &domain.User{Username: a.username, Password: hash, Role: a.role}); err != nil {
			return err
		}
	}
	return nil
}
