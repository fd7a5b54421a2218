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

// EmailTemplateRepository implements repository.EmailTemplateRepository using PostgreSQL.
type EmailTemplateRepository struct {
	db database.DBTX
}

// NewEmailTemplateRepository creates a new PostgreSQL-backed template repository.
func NewEmailTemplateRepository(db database.DBTX) *EmailTemplateRepository {
	return &EmailTemplateRepository{db: db}
}

// GetByType retrieves the active template override for an email type.
func (r *EmailTemplateRepository) GetByType(ctx context.Context, emailType string) (*domain.EmailTemplate, error) {
	query := `
		SELECT id, email_type, subject, body, is_active, created_at, updated_at
		FROM email_templates
		WHERE email_type = $1 AND is_active = true`

	var t domain.EmailTemplate
	err := r.db.QueryRow(ctx, query, emailType).Scan(
		&t.ID,
		&t.EmailType,
		&t.Subject,
		&t.Body,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan email template: %w", err)
	}

	return &t, nil
}

// List returns all stored templates ordered by email type.
func (r *EmailTemplateRepository) List(ctx context.Context) ([]domain.EmailTemplate, error) {
	query := `
		SELECT id, email_type, subject, body, is_active, created_at, updated_at
		FROM email_templates
		ORDER BY email_type ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list email templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.EmailTemplate
	for rows.Next() {
		var t domain.EmailTemplate
		if err := rows.Scan(
			&t.ID,
			&t.EmailType,
			&t.Subject,
			&t.Body,
			&t.IsActive,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan email template row: %w", err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email template rows: %w", err)
	}

	if templates == nil {
		templates = []domain.EmailTemplate{}
	}

	return templates, nil
}

// Upsert creates or replaces the template for an email type.
func (r *EmailTemplateRepository) Upsert(ctx context.Context, t *domain.EmailTemplate) error {
	t.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO email_templates (id, email_type, subject, body, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email_type) DO UPDATE
		SET subject = EXCLUDED.subject, body = EXCLUDED.body,
		    is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		t.ID,
		t.EmailType,
		t.Subject,
		t.Body,
		t.IsActive,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert email template: %w", err)
	}

	return nil
}

// Delete removes the template override for an email type.
func (r *EmailTemplateRepository) Delete(ctx context.Context, emailType string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM email_templates WHERE email_type = $1`, emailType)
	if err != nil {
		return fmt.Errorf("delete email template: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("email template", emailType)
	}

	return nil
}

// EmailLogRepository implements repository.EmailLogRepository using PostgreSQL.
type EmailLogRepository struct {
	db database.DBTX
}

// NewEmailLogRepository creates a new PostgreSQL-backed email log repository.
func NewEmailLogRepository(db database.DBTX) *EmailLogRepository {
	return &EmailLogRepository{db: db}
}

// Create records one dispatch attempt.
func (r *EmailLogRepository) Create(ctx context.Context, l *domain.EmailLog) error {
	query := `
		INSERT INTO email_logs (id, email_type, recipient, subject, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		l.ID,
		l.EmailType,
		l.Recipient,
		l.Subject,
		l.Status,
		l.Error,
		l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}

	return nil
}

// List returns email logs matching the given filter with the total count.
func (r *EmailLogRepository) List(ctx context.Context, filter repository.EmailLogFilter) ([]domain.EmailLog, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.EmailType != nil {
		conditions = append(conditions, fmt.Sprintf("email_type = $%d", argIndex))
		args = append(args, *filter.EmailType)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.Recipient != nil {
		conditions = append(conditions, fmt.Sprintf("recipient = $%d", argIndex))
		args = append(args, *filter.Recipient)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, email_type, recipient, subject, status, error, created_at,
			   count(*) OVER() AS total_count
		FROM email_logs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
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
		return nil, 0, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()

	var (
		logs       []domain.EmailLog
		totalCount int
	)

	for rows.Next() {
		var l domain.EmailLog
		if err := rows.Scan(
			&l.ID,
			&l.EmailType,
			&l.Recipient,
			&l.Subject,
			&l.Status,
			&l.Error,
			&l.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan email log row: %w", err)
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate email log rows: %w", err)
	}

	if logs == nil {
		logs = []domain.EmailLog{}
	}

	return logs, totalCount, nil
}
