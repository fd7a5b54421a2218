package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/database"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
)

// ConsultationRepository implements repository.ConsultationRepository using PostgreSQL.
type ConsultationRepository struct {
	db database.DBTX
}

// NewConsultationRepository creates a new PostgreSQL-backed consultation repository.
func NewConsultationRepository(db database.DBTX) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

const consultationColumns = `id, user_id, customer_name, customer_email, customer_phone,
	preferred_date, preferred_time, topic, notes, status, created_at, updated_at`

// Create inserts a new consultation booking.
func (r *ConsultationRepository) Create(ctx context.Context, b *domain.ConsultationBooking) error {
	query := `
		INSERT INTO consultation_bookings (id, user_id, customer_name, customer_email, customer_phone,
			preferred_date, preferred_time, topic, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.CustomerName,
		b.CustomerEmail,
		b.CustomerPhone,
		b.PreferredDate,
		b.PreferredTime,
		b.Topic,
		b.Notes,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consultation booking: %w", err)
	}

	return nil
}

// GetByID retrieves a consultation booking by its ID.
func (r *ConsultationRepository) GetByID(ctx context.Context, id string) (*domain.ConsultationBooking, error) {
	query := fmt.Sprintf(`SELECT %s FROM consultation_bookings WHERE id = $1`, consultationColumns)

	var b domain.ConsultationBooking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.UserID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.PreferredDate,
		&b.PreferredTime,
		&b.Topic,
		&b.Notes,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan consultation booking: %w", err)
	}

	return &b, nil
}

// List returns consultation bookings matching the given filter with the total count.
func (r *ConsultationRepository) List(ctx context.Context, filter repository.ConsultationFilter) ([]domain.ConsultationBooking, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.Email != nil {
		conditions = append(conditions, fmt.Sprintf("customer_email = $%d", argIndex))
		args = append(args, *filter.Email)
		argIndex++
	}

	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("preferred_date >= $%d", argIndex))
		args = append(args, *filter.DateFrom)
		argIndex++
	}

	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("preferred_date <= $%d", argIndex))
		args = append(args, *filter.DateTo)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM consultation_bookings
		%s
		ORDER BY preferred_date ASC, preferred_time ASC
		LIMIT $%d OFFSET $%d`,
		consultationColumns, whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list consultation bookings: %w", err)
	}
	defer rows.Close()

	var (
		bookings   []domain.ConsultationBooking
		totalCount int
	)

	for rows.Next() {
		var b domain.ConsultationBooking
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.CustomerName,
			&b.CustomerEmail,
			&b.CustomerPhone,
			&b.PreferredDate,
			&b.PreferredTime,
			&b.Topic,
			&b.Notes,
			&b.Status,
			&b.CreatedAt,
			&b.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan consultation booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate consultation booking rows: %w", err)
	}

	if bookings == nil {
		bookings = []domain.ConsultationBooking{}
	}

	return bookings, totalCount, nil
}

// Update modifies an existing consultation booking.
func (r *ConsultationRepository) Update(ctx context.Context, b *domain.ConsultationBooking) error {
	b.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE consultation_bookings
		SET preferred_date = $1, preferred_time = $2, topic = $3, notes = $4, status = $5, updated_at = $6
		WHERE id = $7`

	ct, err := r.db.Exec(ctx, query,
		b.PreferredDate,
		b.PreferredTime,
		b.Topic,
		b.Notes,
		b.Status,
		b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("update consultation booking: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("consultation booking", b.ID)
	}

	return nil
}
