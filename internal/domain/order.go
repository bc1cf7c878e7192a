package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderRequest is the raw submission body before validation.
type OrderRequest struct {
	UserName    string `json:"user_name"`
	PhoneNumber string `json:"phone_number"`
}

// Order is the persisted entity. ID equals the originating job id, which is
// what makes retried jobs idempotent at the storage layer.
type Order struct {
	ID          uuid.UUID
	UserName    string
	PhoneNumber string
	Status      StoredStatus
	Notes       *string
	Created     time.Time
}

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

type User struct {
	Username string
	Password string
	Role     UserRole
	IsActive bool
	Created  time.Time
}
