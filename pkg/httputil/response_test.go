package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/artworks/art-1", nil)
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	WriteError(rec, req, apperrors.NotFound("artwork", "art-1"), fallback)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "artwork with id art-1 not found", resp.Error.Message)
}

func TestWriteError_BareSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	WriteError(rec, req, apperrors.ErrUnauthorized, fallback)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestWriteError_UnknownErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	WriteError(rec, req, io.ErrUnexpectedEOF, fallback)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	// The raw error text must never leak to the client.
	assert.Equal(t, "an internal error occurred", resp.Error.Message)
}

func TestWriteValidationError_FieldMessages(t *testing.T) {
	type loginRequest struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	err := validator.Validate(loginRequest{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteValidationError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "must be a valid email address", resp.Error.Fields["Email"])
	assert.Equal(t, "must be at least 8 characters", resp.Error.Fields["Password"])
}

func TestParseUUID(t *testing.T) {
	rec := httptest.NewRecorder()
	id, ok := ParseUUID(rec, "0c2c4f3e-9a7d-4a53-8a70-8f8f5d1c9c41")
	require.True(t, ok)
	assert.Equal(t, "0c2c4f3e-9a7d-4a53-8a70-8f8f5d1c9c41", id.String())

	rec = httptest.NewRecorder()
	_, ok = ParseUUID(rec, "not-a-uuid")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}
