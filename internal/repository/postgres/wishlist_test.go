package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
)

func newWishlistTestFixture(t *testing.T) (*WishlistRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewWishlistRepository(mock)
	return repo, mock
}

func TestWishlistRepository_Add_Success(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO wishlists").
		WithArgs("user-1", "art-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	added, err := repo.Add(context.Background(), "user-1", "art-1")
	assert.NoError(t, err)
	assert.True(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Add_DuplicateReportsAlreadyPresent(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	// ON CONFLICT DO NOTHING reports zero rows affected. That is not an
	// error, but the caller must learn that nothing was written.
	mock.ExpectExec("INSERT INTO wishlists").
		WithArgs("user-1", "art-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	added, err := repo.Add(context.Background(), "user-1", "art-1")
	assert.NoError(t, err)
	assert.False(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Remove_NotFound(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM wishlists WHERE user_id =").
		WithArgs("user-1", "art-missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Remove(context.Background(), "user-1", "art-missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Remove_Success(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM wishlists WHERE user_id =").
		WithArgs("user-1", "art-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Remove(context.Background(), "user-1", "art-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_List_JoinsArtworkDetails(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"user_id", "artwork_id", "created_at", "title", "price", "image_url", "category", "total_count",
	}).AddRow("user-1", "art-1", now, "Blue Harbor", int64(25000), "https://cdn/a.jpg", "original_painting", 1)

	mock.ExpectQuery("SELECT w.user_id, w.artwork_id").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	entries, total, err := repo.List(context.Background(), "user-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "Blue Harbor", entries[0].Title)
	require.NotNil(t, entries[0].Price)
	assert.Equal(t, int64(25000), *entries[0].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_List_Empty(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"user_id", "artwork_id", "created_at", "title", "price", "image_url", "category", "total_count",
	})

	mock.ExpectQuery("SELECT w.user_id, w.artwork_id").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	entries, total, err := repo.List(context.Background(), "user-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Exists(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("user-1", "art-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), "user-1", "art-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Exists_QueryError(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("user-1", "art-1").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Exists(context.Background(), "user-1", "art-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check wishlist entry")
	assert.NoError(t, mock.ExpectationsWereMet())
}
