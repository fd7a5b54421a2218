package postgres

import (
	"context"
	"encoding/json"
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

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	db database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db database.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order and its items atomically within a transaction.
// A failure inserting any item rolls back the order row too.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	shippingJSON, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("marshal shipping address: %w", err)
	}

	orderQuery := `
		INSERT INTO orders (id, user_id, customer_name, customer_email, customer_phone,
			shipping_address, status, payment_status, payment_proof_url, total_amount, currency,
			notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = tx.Exec(ctx, orderQuery,
		o.ID,
		o.UserID,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		shippingJSON,
		o.Status,
		o.PaymentStatus,
		o.PaymentProofURL,
		o.TotalAmount,
		o.Currency,
		o.Notes,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, artwork_id, title, price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, item := range o.Items {
		_, err = tx.Exec(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ArtworkID,
			item.Title,
			item.Price,
			item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID, eagerly loading its items in a
// single query with LEFT JOIN + JSONB_AGG.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	orderQuery := `
		SELECT
			o.id, o.user_id, o.customer_name, o.customer_email, o.customer_phone,
			o.shipping_address, o.status, o.payment_status, o.payment_proof_url,
			o.total_amount, o.currency, o.notes, o.created_at, o.updated_at,
			COALESCE(
				JSONB_AGG(
					JSONB_BUILD_OBJECT(
						'id', oi.id,
						'order_id', oi.order_id,
						'artwork_id', oi.artwork_id,
						'title', oi.title,
						'price', oi.price,
						'quantity', oi.quantity
					) ORDER BY oi.id
				) FILTER (WHERE oi.id IS NOT NULL),
				'[]'::jsonb
			) AS items
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		WHERE o.id = $1
		GROUP BY o.id, o.user_id, o.customer_name, o.customer_email, o.customer_phone,
			o.shipping_address, o.status, o.payment_status, o.payment_proof_url,
			o.total_amount, o.currency, o.notes, o.created_at, o.updated_at`

	var (
		o            domain.Order
		shippingJSON []byte
		itemsJSON    []byte
	)

	err := r.db.QueryRow(ctx, orderQuery, id).Scan(
		&o.ID,
		&o.UserID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&shippingJSON,
		&o.Status,
		&o.PaymentStatus,
		&o.PaymentProofURL,
		&o.TotalAmount,
		&o.Currency,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
		&itemsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if len(shippingJSON) > 0 && string(shippingJSON) != "null" {
		if err := json.Unmarshal(shippingJSON, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("unmarshal shipping address: %w", err)
		}
	}

	if len(itemsJSON) > 0 && string(itemsJSON) != "null" && string(itemsJSON) != "[]" {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
	} else {
		o.Items = []domain.OrderItem{}
	}

	return &o, nil
}

// List returns orders matching the given filter with the total count.
// Items are batch-loaded in a second query to avoid N+1.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIndex))
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.PaymentStatus != nil {
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", argIndex))
		args = append(args, *filter.PaymentStatus)
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
		SELECT id, user_id, customer_name, customer_email, customer_phone, shipping_address,
			   status, payment_status, payment_proof_url, total_amount, currency, notes,
			   created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM orders
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
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var totalCount int
	orders := make([]domain.Order, 0)

	for rows.Next() {
		var (
			o            domain.Order
			shippingJSON []byte
		)

		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.CustomerName,
			&o.CustomerEmail,
			&o.CustomerPhone,
			&shippingJSON,
			&o.Status,
			&o.PaymentStatus,
			&o.PaymentProofURL,
			&o.TotalAmount,
			&o.Currency,
			&o.Notes,
			&o.CreatedAt,
			&o.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}

		if len(shippingJSON) > 0 && string(shippingJSON) != "null" {
			if err := json.Unmarshal(shippingJSON, &o.ShippingAddress); err != nil {
				return nil, 0, fmt.Errorf("unmarshal shipping address: %w", err)
			}
		}

		o.Items = []domain.OrderItem{}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	if len(orders) > 0 {
		orderIDs := make([]string, len(orders))
		for i := range orders {
			orderIDs[i] = orders[i].ID
		}

		itemsQuery := `
			SELECT id, order_id, artwork_id, title, price, quantity
			FROM order_items
			WHERE order_id = ANY($1)
			ORDER BY id`

		itemRows, err := r.db.Query(ctx, itemsQuery, orderIDs)
		if err != nil {
			return nil, 0, fmt.Errorf("batch load order items: %w", err)
		}
		defer itemRows.Close()

		itemsByOrderID := make(map[string][]domain.OrderItem, len(orders))
		for itemRows.Next() {
			var item domain.OrderItem
			if err := itemRows.Scan(
				&item.ID,
				&item.OrderID,
				&item.ArtworkID,
				&item.Title,
				&item.Price,
				&item.Quantity,
			); err != nil {
				return nil, 0, fmt.Errorf("scan order item row: %w", err)
			}
			itemsByOrderID[item.OrderID] = append(itemsByOrderID[item.OrderID], item)
		}

		if err := itemRows.Err(); err != nil {
			return nil, 0, fmt.Errorf("iterate order item rows: %w", err)
		}

		for i := range orders {
			if items, ok := itemsByOrderID[orders[i].ID]; ok {
				orders[i].Items = items
			}
		}
	}

	return orders, totalCount, nil
}

// UpdateStatus changes the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`

	ct, err := r.db.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}

// ConfirmPayment marks the order paid, stores the proof URL and advances the
// order to processing in one UPDATE.
func (r *OrderRepository) ConfirmPayment(ctx context.Context, id string, proofURL string) error {
	query := `
		UPDATE orders
		SET payment_status = $1, payment_proof_url = $2, status = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.db.Exec(ctx, query, domain.PaymentStatusPaid, proofURL, domain.OrderStatusProcessing, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("confirm order payment: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}
