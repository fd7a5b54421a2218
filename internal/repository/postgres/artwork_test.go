package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
)

func newArtworkTestFixture(t *testing.T) (*ArtworkRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewArtworkRepository(mock)
	return repo, mock
}

func testArtwork() *domain.Artwork {
	now := time.Now().UTC()
	return &domain.Artwork{
		ID:          "art-1",
		Title:       "Blue Harbor",
		Slug:        "blue-harbor",
		Description: "Oil on canvas, coastal scene.",
		Category:    domain.CategoryOriginalPainting,
		Medium:      domain.MediumOil,
		Style:       domain.StyleLandscape,
		Price:       25000,
		Currency:    "USD",
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func artworkRows(a *domain.Artwork) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "title", "slug", "description", "category", "medium", "style",
		"price", "currency", "image_url", "dimensions", "year_created",
		"is_available", "is_featured", "created_at", "updated_at",
	}).AddRow(
		a.ID, a.Title, a.Slug, a.Description, a.Category, a.Medium, a.Style,
		a.Price, a.Currency, a.ImageURL, a.Dimensions, a.YearCreated,
		a.IsAvailable, a.IsFeatured, a.CreatedAt, a.UpdatedAt,
	)
}

func TestArtworkRepository_Create_Success(t *testing.T) {
	repo, mock := newArtworkTestFixture(t)
	defer mock.Close()

	a := testArtwork()

	mock.ExpectExec("INSERT INTO artwork").
		WithArgs(
			a.ID, a.Title, a.Slug, a.Description, a.Category, a.Medium, a.Style,
			a.Price, a.Currency, a.ImageURL, a.Dimensions, a.YearCreated,
			a.IsAvailable, a.IsFeatured, a.CreatedAt, a.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_Create_DuplicateSlug(t *testing.T) {
	repo, mock := newArtworkTestFixture(t)
	defer mock.Close()

	a := testArtwork()

	mock.ExpectExec("INSERT INTO artwork").
		WithArgs(
			a.ID, a.Title, a.Slug, a.Description, a.Category, a.Medium, a.Style,
			a.Price, a.Currency, a.ImageURL, a.Dimensions, a.YearCreated,
			a.IsAvailable, a.IsFeatured, a.CreatedAt, a.UpdatedAt,
		).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "artwork_slug_key" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), a)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newArtworkTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_GetBySlug_Success(t *testing.T) {
	repo, mock := newArtworkTestFixture(t)
	defer mock.Close()

	a := testArtwork()

	mock.ExpectQuery("SELECT").
		WithArgs("blue-harbor").
		WillReturnRows(artworkRows(a))

	got, err := repo.GetBySlug(context.Background(), "blue-harbor")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.Title, got.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_List_AppliesFilters(t *testing.T) {
	repo, mock := newArtworkTestFixture(t)
	defer mock.Close()

	a := testArtwork()
	category := domain.CategoryOriginalPainting
	available := true

	rows := pgxmock.NewRows([]string{
		"id", "title", "slug", "description", "category", "medium", "style",
		"price", "currency", "image_url", "dimensions", "year_created",
		"is_available", "is_featured", "created_at", "updated_at", "total_count",
	}).AddRow(
		a.ID, a.Title, a.Slug, a.Description, a.Category, a.Medium, a.Style,
		a.Price, a.Currency, a.ImageURL, a.Dimensions, a.YearCreated,
		a.IsAvailable, a.IsFeatured, a.CreatedAt, a.UpdatedAt, 1,
	)

	mock.ExpectQuery("SELECT").
		WithArgs(category, available, 20, 0).
		WillReturnRows(rows)

	artworks, total, err := repo.List(context.Background(), repository.ArtworkFilter{
		Category:    &category,
		IsAvailable: &available,
		Page:        1,
		PerPage:     20,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, artworks, 1)
	assert.Equal(t, "blue-harbor", artworks[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_List_Empty(t *testing.T) {
	repo, mock := newArtworkTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"id", "title", "slug", "description", "category", "medium", "style",
		"price", "currency", "image_url", "dimensions", "year_created",
		"is_available", "is_featured", "created_at", "updated_at", "total_count",
	})

	mock.ExpectQuery("SELECT").
		WithArgs(20, 0).
		WillReturnRows(rows)

	artworks, total, err := repo.List(context.Background(), repository.ArtworkFilter{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, artworks)
	assert.Empty(t, artworks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_Update_NotFound(t *testing.T) {
	repo, mock := newArtworkTestFixture(t)
	defer mock.Close()

	a := testArtwork()
	a.ID = "missing"

	mock.ExpectExec("UPDATE artwork").
		WithArgs(
			a.Title, a.Slug, a.Description, a.Category, a.Medium, a.Style,
			a.Price, a.Currency, a.ImageURL, a.Dimensions, a.YearCreated,
			a.IsAvailable, a.IsFeatured, pgxmock.AnyArg(), a.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), a)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtworkRepository_Delete_Success(t *testing.T) {
	repo, mock := newArtworkTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM artwork").
		WithArgs("art-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "art-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
