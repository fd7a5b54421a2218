package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	"github.com/Tazdar-Rahim/artmuse-server/internal/service"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/middleware"
)

// stubWishlistRepo keeps wishlist pairs in a map so handler tests can
// exercise the real duplicate detection without a database.
type stubWishlistRepo struct {
	entries map[string]struct{}
}

func newStubWishlistRepo() *stubWishlistRepo {
	return &stubWishlistRepo{entries: make(map[string]struct{})}
}

func (s *stubWishlistRepo) key(userID, artworkID string) string {
	return userID + "/" + artworkID
}

func (s *stubWishlistRepo) Add(ctx context.Context, userID, artworkID string) (bool, error) {
	k := s.key(userID, artworkID)
	if _, ok := s.entries[k]; ok {
		return false, nil
	}
	s.entries[k] = struct{}{}
	return true, nil
}

func (s *stubWishlistRepo) Remove(ctx context.Context, userID, artworkID string) error {
	k := s.key(userID, artworkID)
	if _, ok := s.entries[k]; !ok {
		return apperrors.NotFound("wishlist entry", artworkID)
	}
	delete(s.entries, k)
	return nil
}

func (s *stubWishlistRepo) List(ctx context.Context, userID string, page, perPage int) ([]domain.WishlistEntry, int, error) {
	return []domain.WishlistEntry{}, 0, nil
}

func (s *stubWishlistRepo) Exists(ctx context.Context, userID, artworkID string) (bool, error) {
	_, ok := s.entries[s.key(userID, artworkID)]
	return ok, nil
}

var _ repository.WishlistRepository = (*stubWishlistRepo)(nil)

func newWishlistTestRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	artworks := &stubArtworkRepo{artwork: &domain.Artwork{
		ID:          testArtworkID,
		Title:       "Blue Harbor",
		Price:       25000,
		IsAvailable: true,
	}}
	handler := NewWishlistHandler(service.NewWishlistService(newStubWishlistRepo(), artworks, logger), logger)

	validate := func(token string) (*middleware.Claims, error) {
		return &middleware.Claims{UserID: "user-1", Email: "ana@example.com", Role: domain.RoleCustomer}, nil
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(validate))
		r.Route("/wishlist", handler.Routes)
	})
	return r
}

func doWishlistAdd(t *testing.T, router chi.Router, artworkID string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(map[string]string{"artwork_id": artworkID})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/wishlist", bytes.NewReader(raw))
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWishlistHandler_Add_FreshEntryCreated(t *testing.T) {
	router := newWishlistTestRouter(t)

	rec := doWishlistAdd(t, router, testArtworkID)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data map[string]bool `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Data["already_present"])
}

func TestWishlistHandler_Add_DuplicateReportsAlreadyPresent(t *testing.T) {
	router := newWishlistTestRouter(t)

	rec := doWishlistAdd(t, router, testArtworkID)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doWishlistAdd(t, router, testArtworkID)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]bool `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Data["already_present"])
}
