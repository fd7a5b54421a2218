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

// CommissionPackageRepository implements repository.CommissionPackageRepository using PostgreSQL.
type CommissionPackageRepository struct {
	db database.DBTX
}

// NewCommissionPackageRepository creates a new PostgreSQL-backed package repository.
func NewCommissionPackageRepository(db database.DBTX) *CommissionPackageRepository {
	return &CommissionPackageRepository{db: db}
}

const packageColumns = `id, name, description, base_price, currency, turnaround_days,
	image_url, is_active, sort_order, created_at, updated_at`

// Create inserts a new commission package.
func (r *CommissionPackageRepository) Create(ctx context.Context, p *domain.CommissionPackage) error {
	query := `
		INSERT INTO commission_packages (id, name, description, base_price, currency, turnaround_days,
			image_url, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.BasePrice,
		p.Currency,
		p.TurnaroundDays,
		p.ImageURL,
		p.IsActive,
		p.SortOrder,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("commission package", "name", p.Name)
		}
		return fmt.Errorf("insert commission package: %w", err)
	}

	return nil
}

// GetByID retrieves a commission package by its ID.
func (r *CommissionPackageRepository) GetByID(ctx context.Context, id string) (*domain.CommissionPackage, error) {
	query := fmt.Sprintf(`SELECT %s FROM commission_packages WHERE id = $1`, packageColumns)

	var p domain.CommissionPackage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.BasePrice,
		&p.Currency,
		&p.TurnaroundDays,
		&p.ImageURL,
		&p.IsActive,
		&p.SortOrder,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan commission package: %w", err)
	}

	return &p, nil
}

// List returns commission packages ordered by sort order then name.
func (r *CommissionPackageRepository) List(ctx context.Context, activeOnly bool) ([]domain.CommissionPackage, error) {
	query := fmt.Sprintf(`SELECT %s FROM commission_packages`, packageColumns)
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list commission packages: %w", err)
	}
	defer rows.Close()

	var packages []domain.CommissionPackage
	for rows.Next() {
		var p domain.CommissionPackage
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.BasePrice,
			&p.Currency,
			&p.TurnaroundDays,
			&p.ImageURL,
			&p.IsActive,
			&p.SortOrder,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan commission package row: %w", err)
		}
		packages = append(packages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commission package rows: %w", err)
	}

	if packages == nil {
		packages = []domain.CommissionPackage{}
	}

	return packages, nil
}

// Update modifies an existing commission package.
func (r *CommissionPackageRepository) Update(ctx context.Context, p *domain.CommissionPackage) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE commission_packages
		SET name = $1, description = $2, base_price = $3, currency = $4, turnaround_days = $5,
		    image_url = $6, is_active = $7, sort_order = $8, updated_at = $9
		WHERE id = $10`

	ct, err := r.db.Exec(ctx, query,
		p.Name,
		p.Description,
		p.BasePrice,
		p.Currency,
		p.TurnaroundDays,
		p.ImageURL,
		p.IsActive,
		p.SortOrder,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update commission package: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("commission package", p.ID)
	}

	return nil
}

// Delete removes a commission package by its ID.
func (r *CommissionPackageRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM commission_packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete commission package: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("commission package", id)
	}

	return nil
}

// CommissionRequestRepository implements repository.CommissionRequestRepository using PostgreSQL.
type CommissionRequestRepository struct {
	db database.DBTX
}

// NewCommissionRequestRepository creates a new PostgreSQL-backed request repository.
func NewCommissionRequestRepository(db database.DBTX) *CommissionRequestRepository {
	return &CommissionRequestRepository{db: db}
}

const requestColumns = `id, package_id, user_id, customer_name, customer_email, customer_phone,
	description, reference_urls, status, quote_amount, admin_notes, created_at, updated_at`

// Create inserts a new commission request.
func (r *CommissionRequestRepository) Create(ctx context.Context, req *domain.CommissionRequest) error {
	query := `
		INSERT INTO commission_requests (id, package_id, user_id, customer_name, customer_email,
			customer_phone, description, reference_urls, status, quote_amount, admin_notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		req.ID,
		req.PackageID,
		req.UserID,
		req.CustomerName,
		req.CustomerEmail,
		req.CustomerPhone,
		req.Description,
		req.ReferenceURLs,
		req.Status,
		req.QuoteAmount,
		req.AdminNotes,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert commission request: %w", err)
	}

	return nil
}

// GetByID retrieves a commission request by its ID.
func (r *CommissionRequestRepository) GetByID(ctx context.Context, id string) (*domain.CommissionRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM commission_requests WHERE id = $1`, requestColumns)

	var req domain.CommissionRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.PackageID,
		&req.UserID,
		&req.CustomerName,
		&req.CustomerEmail,
		&req.CustomerPhone,
		&req.Description,
		&req.ReferenceURLs,
		&req.Status,
		&req.QuoteAmount,
		&req.AdminNotes,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan commission request: %w", err)
	}

	return &req, nil
}

// List returns commission requests matching the given filter with the total count.
func (r *CommissionRequestRepository) List(ctx context.Context, filter repository.CommissionRequestFilter) ([]domain.CommissionRequest, int, error) {
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

	if filter.PackageID != nil {
		conditions = append(conditions, fmt.Sprintf("package_id = $%d", argIndex))
		args = append(args, *filter.PackageID)
		argIndex++
	}

	if filter.Email != nil {
		conditions = append(conditions, fmt.Sprintf("customer_email = $%d", argIndex))
		args = append(args, *filter.Email)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM commission_requests
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		requestColumns, whereClause, argIndex, argIndex+1,
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
		return nil, 0, fmt.Errorf("list commission requests: %w", err)
	}
	defer rows.Close()

	var (
		requests   []domain.CommissionRequest
		totalCount int
	)

	for rows.Next() {
		var req domain.CommissionRequest
		if err := rows.Scan(
			&req.ID,
			&req.PackageID,
			&req.UserID,
			&req.CustomerName,
			&req.CustomerEmail,
			&req.CustomerPhone,
			&req.Description,
			&req.ReferenceURLs,
			&req.Status,
			&req.QuoteAmount,
			&req.AdminNotes,
			&req.CreatedAt,
			&req.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan commission request row: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate commission request rows: %w", err)
	}

	if requests == nil {
		requests = []domain.CommissionRequest{}
	}

	return requests, totalCount, nil
}

// Update modifies an existing commission request.
func (r *CommissionRequestRepository) Update(ctx context.Context, req *domain.CommissionRequest) error {
	req.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE commission_requests
		SET status = $1, quote_amount = $2, admin_notes = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.db.Exec(ctx, query,
		req.Status,
		req.QuoteAmount,
		req.AdminNotes,
		req.UpdatedAt,
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("update commission request: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("commission request", req.ID)
	}

	return nil
}
