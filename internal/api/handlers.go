package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/you/orderq/internal/domain"
	"github.com/you/orderq/internal/service"
)

const unavailableDetail = "The service is temporarily unavailable due to an issue with a backend service. " +
	"Please try again later"

type handler struct {
	svc OrderService
	log *zap.Logger
}

type orderIDResponse struct {
	ID uuid.UUID `json:"id"`
}

type errorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid input data"})
		return
	}
	if fieldErrs := validateShape(req); len(fieldErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid input data", Errors: fieldErrs})
		return
	}

	id, err := h.svc.CreateOrder(r.Context(), req)
	if err != nil {
		h.log.Error("create order failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: unavailableDetail})
		return
	}
	writeJSON(w, http.StatusCreated, orderIDResponse{ID: id})
}

func (h *handler) orderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Detail: "Invalid input data",
			Errors: map[string]string{"order_id": "must be a valid UUID"},
		})
		return
	}

	info, err := h.svc.GetOrderStatus(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Order not found"})
	case err != nil:
		h.log.Error("order status failed", zap.String("order_id", id.String()), zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: unavailableDetail})
	default:
		writeJSON(w, http.StatusOK, info)
	}
}

// validateShape covers the boundary's input-shape rules: presence and length
// bounds. Character-level and numbering-plan validation is the pipeline's
// job and happens in the worker.
func validateShape(req domain.OrderRequest) map[string]string {
	errs := make(map[string]string)
	switch n := utf8.RuneCountInString(strings.TrimSpace(req.UserName)); {
	case n == 0:
		errs["user_name"] = "is required"
	case n < 2 || n > 128:
		errs["user_name"] = "must be between 2 and 128 characters"
	}
	switch n := utf8.RuneCountInString(strings.TrimSpace(req.PhoneNumber)); {
	case n == 0:
		errs["phone_number"] = "is required"
	case n < 7 || n > 28:
		errs["phone_number"] = "must be between 7 and 28 characters"
	}
	return errs
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
