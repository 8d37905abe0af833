package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/credmatch/backend/internal/apperror"
	"github.com/credmatch/backend/pkg/money"
)

// ErrorResponse represents a JSON error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response with the given status code and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to an HTTP response, using the
// AppError status code when one is wrapped in the chain.
func respondServiceError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		respondJSON(w, appErr.StatusCode, ErrorResponse{Error: appErr.Message, Field: appErr.Field})
		return
	}
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// parseMoney parses a decimal reais string ("5000.00") into Money.
func parseMoney(s string) (money.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return money.Zero, err
	}
	return money.NewFromDecimal(d)
}
