package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okValidator(token string) (*Claims, error) {
	if token != "good-token" {
		return nil, errors.New("bad signature")
	}
	return &Claims{UserID: "user-1", Email: "ana@example.com", Role: "admin"}, nil
}

func claimsCapture(got *Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.UserID = UserIDFromContext(r.Context())
		got.Email = EmailFromContext(r.Context())
		got.Role = RoleFromContext(r.Context())
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := Auth(okValidator)(claimsCapture(&Claims{}))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	handler := Auth(okValidator)(claimsCapture(&Claims{}))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	handler := Auth(okValidator)(claimsCapture(&Claims{}))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	var got Claims
	handler := Auth(okValidator)(claimsCapture(&got))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "admin", got.Role)
}

func TestOptionalAuth_NoHeaderPassesThroughAnonymously(t *testing.T) {
	var got Claims
	handler := OptionalAuth(okValidator)(claimsCapture(&got))

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, got.UserID)
}

func TestOptionalAuth_InvalidTokenIsRejected(t *testing.T) {
	handler := OptionalAuth(okValidator)(claimsCapture(&Claims{}))

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	handler := Auth(okValidator)(RequireRole("admin")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {},
	)))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	denied := Auth(okValidator)(RequireRole("superadmin")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {},
	)))
	rec = httptest.NewRecorder()
	denied.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
