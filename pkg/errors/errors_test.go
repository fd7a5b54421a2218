package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Code: "CONFLICT", Message: "order already paid"}
	assert.Equal(t, "CONFLICT: order already paid", plain.Error())

	wrapped := NotFound("artwork", "art-1")
	assert.Equal(t, "NOT_FOUND: artwork with id art-1 not found: resource not found", wrapped.Error())
}

func TestAppError_UnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NotFound("artwork", "art-1"), ErrNotFound},
		{"already exists", AlreadyExists("user", "email", "ana@example.com"), ErrAlreadyExists},
		{"invalid input", InvalidInput("bad slot"), ErrInvalidInput},
		{"unauthorized", Unauthorized("token expired"), ErrUnauthorized},
		{"forbidden", Forbidden("admin only"), ErrForbidden},
		{"conflict", Conflict("cannot ship a cancelled order"), ErrConflict},
		{"service unavailable", ServiceUnavailable("database down"), ErrServiceUnavail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestHTTPStatus_AppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("artwork", "art-1"), http.StatusNotFound},
		{"already exists", AlreadyExists("user", "email", "ana@example.com"), http.StatusConflict},
		{"invalid input", InvalidInput("bad slot"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("token expired"), http.StatusUnauthorized},
		{"forbidden", Forbidden("admin only"), http.StatusForbidden},
		{"conflict", Conflict("bad transition"), http.StatusConflict},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
		{"service unavailable", ServiceUnavailable("database down"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_WrappedAppErrorKeepsStatus(t *testing.T) {
	err := fmt.Errorf("checkout failed: %w", NotFound("artwork", "art-1"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus_BareSentinels(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrConflict))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Wrap(ErrInvalidInput, "parse body")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrUnauthorized))
}

func TestHTTPStatus_UnknownErrorIs500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("something odd")))
}

func TestWrap_PreservesChain(t *testing.T) {
	err := Wrap(ErrNotFound, "load cart")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "load cart: resource not found", err.Error())
}
