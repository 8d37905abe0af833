package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Parallel()

	err := Validation("min_amount", "must be non-negative")
	assert.Equal(t, "min_amount: must be non-negative", err.Error())

	err = NotFound("institution")
	assert.Equal(t, "institution not found", err.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	t.Parallel()

	err := Validation("monthly_interest_rate", "must be numeric")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))

	err = NotFound("credit modality")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(err))

	wrapped := fmt.Errorf("normalizing offer: %w", err)
	assert.True(t, IsNotFound(wrapped))
}

func TestGetStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: Validation("f", "bad"), want: http.StatusBadRequest},
		{name: "not found", err: NotFound("offer"), want: http.StatusNotFound},
		{name: "conflict", err: Conflict("duplicate mapping"), want: http.StatusConflict},
		{name: "unauthorized", err: Unauthorized(""), want: http.StatusUnauthorized},
		{name: "internal", err: Internal(errors.New("db down")), want: http.StatusInternalServerError},
		{name: "wrapped sentinel", err: fmt.Errorf("ctx: %w", ErrNotFound), want: http.StatusNotFound},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetStatusCode(tt.err))
		})
	}
}

func TestGetMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "an internal error occurred", GetMessage(Internal(errors.New("secret detail"))))
	assert.Equal(t, "boom", GetMessage(errors.New("boom")))
}
