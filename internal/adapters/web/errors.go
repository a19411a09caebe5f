package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"apparel-ledger/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Available *int   `json:"available,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeCoreError maps the core error taxonomy onto HTTP statuses. Every
// failure carries a short category code plus enough context to correct the
// input (insufficient-stock responses include the available quantity).
func writeCoreError(w http.ResponseWriter, r *http.Request, err error) {
	var insufficient *core.InsufficientStockError
	if errors.As(err, &insufficient) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		available := insufficient.Available
		_ = json.NewEncoder(w).Encode(errorResponse{
			Error:     insufficient.Error(),
			Code:      "INSUFFICIENT_STOCK",
			Available: &available,
			RequestID: requestIDFromContext(r.Context()),
		})
		return
	}

	var notFound *core.NotFoundError
	if errors.As(err, &notFound) {
		writeError(w, r, notFound.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}

	var storeErr *core.StoreError
	if errors.As(err, &storeErr) {
		writeError(w, r, "backend store unavailable", "STORE_ERROR", http.StatusBadGateway)
		return
	}

	switch {
	case errors.Is(err, core.ErrInvalidPrice):
		writeError(w, r, err.Error(), "INVALID_PRICE", http.StatusBadRequest)
	case errors.Is(err, core.ErrInvalidDiscount):
		writeError(w, r, err.Error(), "INVALID_DISCOUNT", http.StatusBadRequest)
	case errors.Is(err, core.ErrInvalidRoyalty):
		writeError(w, r, err.Error(), "INVALID_ROYALTY", http.StatusBadRequest)
	case errors.Is(err, core.ErrInvalidQuantity):
		writeError(w, r, err.Error(), "INVALID_QUANTITY", http.StatusBadRequest)
	case errors.Is(err, core.ErrInvalidSize):
		writeError(w, r, err.Error(), "INVALID_SIZE", http.StatusBadRequest)
	default:
		writeError(w, r, err.Error(), "INVALID_INPUT", http.StatusBadRequest)
	}
}
