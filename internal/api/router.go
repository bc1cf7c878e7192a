// Package api is the HTTP surface over the order service.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/you/orderq/internal/domain"
)

// OrderService is the façade slice the handlers need.
type OrderService interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (uuid.UUID, error)
	GetOrderStatus(ctx context.Context, id uuid.UUID) (domain.StatusInfo, error)
}

func NewRouter(svc OrderService, log *zap.Logger) http.Handler {
	h := &handler{svc: svc, log: log}
	rtr := chi.NewRouter()
	rtr.Post("/orders/", h.createOrder)
	rtr.Get("/orders/{id}/status", h.orderStatus)
	return rtr
}
