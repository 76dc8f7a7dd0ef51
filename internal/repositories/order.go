package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"stagefront/internal/models"
)

// OrderRepository handles order data operations
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrderWithDetails represents an order joined with event details
type OrderWithDetails struct {
	*models.Order
	EventTitle  string    `json:"event_title" db:"event_title"`
	EventDate   time.Time `json:"event_date" db:"event_date"`
	TicketCount int       `json:"ticket_count" db:"ticket_count"`
}

// TicketIssue describes one ticket to create during order completion.
type TicketIssue struct {
	TierID int
	QRCode string
}

// OrderItem is a priced line stored with an order. A line is either a
// ticket tier (TierID set) or merchandise (ProductID set), never both.
// Price and fees are per-unit snapshots taken at checkout time.
type OrderItem struct {
	ID         int `json:"id" db:"id"`
	OrderID    int `json:"order_id" db:"order_id"`
	TierID     int `json:"tier_id" db:"tier_id"`
	ProductID  int `json:"product_id" db:"product_id"`
	Quantity   int `json:"quantity" db:"quantity"`
	PriceCents int `json:"price_cents" db:"price_cents"`
	FeesCents  int `json:"fees_cents" db:"fees_cents"`
}

const orderColumns = `id, user_id, event_id, order_number, subtotal_cents, fees_cents, total_cents, status, payment_id, billing_email, billing_name, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.EventID,
		&order.OrderNumber,
		&order.SubtotalCents,
		&order.FeesCents,
		&order.TotalCents,
		&order.Status,
		&order.PaymentID,
		&order.BillingEmail,
		&order.BillingName,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	return order, err
}

// Create creates a new order with its priced tier lines in one transaction
func (r *OrderRepository) Create(req *models.OrderCreateRequest, items []OrderItem) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	query := `
		INSERT INTO orders (user_id, event_id, order_number, subtotal_cents, fees_cents, total_cents, status, payment_id, billing_email, billing_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, '', $8, $9, $10, $10)
		RETURNING ` + orderColumns

	order, err := scanOrder(tx.QueryRow(
		query,
		req.UserID,
		req.EventID,
		models.GenerateOrderNumber(),
		req.SubtotalCents,
		req.FeesCents,
		req.TotalCents,
		req.Status,
		req.BillingEmail,
		req.BillingName,
		now,
	))

	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range items {
		_, err = tx.Exec(`
			INSERT INTO order_items (order_id, tier_id, product_id, quantity, price_cents, fees_cents)
			VALUES ($1, NULLIF($2, 0), NULLIF($3, 0), $4, $5, $6)`,
			order.ID, item.TierID, item.ProductID, item.Quantity, item.PriceCents, item.FeesCents)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

// GetItems returns the priced lines stored with an order
func (r *OrderRepository) GetItems(orderID int) ([]OrderItem, error) {
	rows, err := r.db.Query(`
		SELECT id, order_id, tier_id, product_id, quantity, price_cents, fees_cents
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		var tierID, productID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.OrderID, &tierID, &productID, &item.Quantity, &item.PriceCents, &item.FeesCents); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.TierID = int(tierID.Int64)
		item.ProductID = int(productID.Int64)
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// GetByOrderNumber retrieves an order by its order number
func (r *OrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by number: %w", err)
	}
	return order, nil
}

// GetByPaymentID retrieves an order by its payment reference
func (r *OrderRepository) GetByPaymentID(paymentID string) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE payment_id = $1`, paymentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by payment: %w", err)
	}
	return order, nil
}

// UpdateStatus updates an order's status
func (r *OrderRepository) UpdateStatus(id int, status models.OrderStatus) error {
	result, err := r.db.Exec(`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrOrderNotFound
	}

	return nil
}

// UpdatePaymentID records the payment gateway reference for an order
func (r *OrderRepository) UpdatePaymentID(id int, paymentID string) error {
	result, err := r.db.Exec(`UPDATE orders SET payment_id = $2, updated_at = $3 WHERE id = $1`,
		id, paymentID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update order payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrOrderNotFound
	}

	return nil
}

// GetByUser retrieves a page of a user's orders with event details
func (r *OrderRepository) GetByUser(userID int, limit, offset int) ([]*OrderWithDetails, int, error) {
	if limit <= 0 {
		limit = 20
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count user orders: %w", err)
	}

	query := `
		SELECT o.id, o.user_id, o.event_id, o.order_number, o.subtotal_cents, o.fees_cents, o.total_cents, o.status, o.payment_id, o.billing_email, o.billing_name, o.created_at, o.updated_at,
		       e.title, e.start_date,
		       (SELECT COUNT(*) FROM tickets t WHERE t.order_id = o.id)
		FROM orders o
		JOIN events e ON e.id = o.event_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get user orders: %w", err)
	}
	defer rows.Close()

	var orders []*OrderWithDetails
	for rows.Next() {
		detail := &OrderWithDetails{Order: &models.Order{}}
		err := rows.Scan(
			&detail.Order.ID,
			&detail.Order.UserID,
			&detail.Order.EventID,
			&detail.Order.OrderNumber,
			&detail.Order.SubtotalCents,
			&detail.Order.FeesCents,
			&detail.Order.TotalCents,
			&detail.Order.Status,
			&detail.Order.PaymentID,
			&detail.Order.BillingEmail,
			&detail.Order.BillingName,
			&detail.Order.CreatedAt,
			&detail.Order.UpdatedAt,
			&detail.EventTitle,
			&detail.EventDate,
			&detail.TicketCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, detail)
	}

	return orders, total, rows.Err()
}

// GetExpiredPending returns pending orders older than the hold window,
// used to sweep abandoned checkouts.
func (r *OrderRepository) GetExpiredPending(holdDuration time.Duration) ([]*models.Order, error) {
	cutoff := time.Now().Add(-holdDuration)

	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE status = $1 AND created_at < $2`,
		models.OrderPending, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to get expired orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// CompleteOrder marks a pending order completed and issues its tickets in
// one transaction.
func (r *OrderRepository) CompleteOrder(orderID int, paymentID string, issues []TicketIssue) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE orders
		SET status = $2, payment_id = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		orderID, models.OrderCompleted, paymentID, time.Now(), models.OrderPending)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("order %d is not pending", orderID)
	}

	for _, issue := range issues {
		_, err = tx.Exec(`
			INSERT INTO tickets (order_id, tier_id, qr_code, status, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			orderID, issue.TierID, issue.QRCode, models.TicketActive, time.Now())
		if err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order completion: %w", err)
	}

	return nil
}
