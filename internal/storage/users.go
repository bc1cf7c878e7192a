package storage

import (
	"context"

	"github.com/you/orderq/internal/domain"
)

// CreateUser inserts a user, silently keeping the existing row on conflict
// so default-account bootstrap stays idempotent. Password must already be
// hashed.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.Exec(ctx, `insert into users(username, password, role)
values ($1, $2, $3)
on conflict (username) do nothing`,
		u.Username, u.Password, string(u.Role),
	)
	return err
}

// DeleteAllOrders wipes the orders table. Maintenance only.
func (s *Store) DeleteAllOrders(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `delete from orders`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
