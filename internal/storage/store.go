package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/you/orderq/internal/domain"
)

const uniqueViolation = "23505"

var (
	// ErrPhoneRegistered: another order already holds this phone number.
	ErrPhoneRegistered = errors.New("phone number already registered")
	// ErrOrderExists: an order with this id is already persisted, which for
	// a retried job means a prior attempt committed.
	ErrOrderExists = errors.New("order already exists")
)

type Store struct{ db *pgxpool.Pool }

func New(db *pgxpool.Pool) *Store { return &Store{db} }

// CreateOrder inserts the order in a single transaction. Unique-constraint
// violations are mapped to sentinel errors by constraint so the caller can
// tell an id collision from a duplicate phone number.
func (s *Store) CreateOrder(ctx context.Context, o *domain.Order) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `insert into orders(id, user_name, phone_number, status)
values ($1, $2, $3, $4)`,
		o.ID, o.UserName, o.PhoneNumber, string(o.Status),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "orders_pkey" {
				return ErrOrderExists
			}
			return ErrPhoneRegistered
		}
		return err
	}
	return tx.Commit(ctx)
}

// NewWorkerPool opens a single-connection pool tagged with the worker's
// identity so its session shows up under application_name.
func NewWorkerPool(ctx context.Context, dsn, worker string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 1
	cfg.ConnConfig.RuntimeParams["application_name"] = "orderq_worker_" + worker
	return pgxpool.NewWithConfig(ctx, cfg)
}
