package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/credmatch/backend/internal/service"
)

type contextKey string

const customerIDContextKey contextKey = "customerID"

// AuthMiddleware validates the Bearer token and puts the authenticated
// customer ID (CPF digits) into the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respondError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		customerID, err := service.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), customerIDContextKey, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCustomerID returns the authenticated customer ID from the context,
// or an empty string when the request was not authenticated.
func GetCustomerID(ctx context.Context) string {
	customerID, _ := ctx.Value(customerIDContextKey).(string)
	return customerID
}
