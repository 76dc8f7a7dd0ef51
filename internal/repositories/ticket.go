package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stagefront/internal/models"
)

// TicketRepository handles ticket tier and ticket data operations
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// TicketHold represents a temporary claim on tier inventory during
// checkout. The hold itself is enforced by the sold counter; this record
// carries what the caller needs to release or confirm it.
type TicketHold struct {
	ID        string    `json:"id"`
	TierID    int       `json:"tier_id"`
	Quantity  int       `json:"quantity"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Tier operations

// CreateTier creates a new ticket tier
func (r *TicketRepository) CreateTier(req *models.TierCreateRequest) (*models.TicketTier, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO ticket_tiers (event_id, name, description, price_cents, flat_fee_cents, percentage_fee_bps, quantity, sold, sale_start, sale_end, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10)
		RETURNING id, event_id, name, description, price_cents, flat_fee_cents, percentage_fee_bps, quantity, sold, sale_start, sale_end, created_at`

	tier := &models.TicketTier{}
	err := r.db.QueryRow(
		query,
		req.EventID,
		req.Name,
		req.Description,
		req.PriceCents,
		req.FlatFeeCents,
		req.PercentageFeeBps,
		req.Quantity,
		req.SaleStart,
		req.SaleEnd,
		time.Now(),
	).Scan(
		&tier.ID,
		&tier.EventID,
		&tier.Name,
		&tier.Description,
		&tier.PriceCents,
		&tier.FlatFeeCents,
		&tier.PercentageFeeBps,
		&tier.Quantity,
		&tier.Sold,
		&tier.SaleStart,
		&tier.SaleEnd,
		&tier.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create ticket tier: %w", err)
	}

	return tier, nil
}

// GetTierByID retrieves a ticket tier by ID
func (r *TicketRepository) GetTierByID(id int) (*models.TicketTier, error) {
	query := `
		SELECT id, event_id, name, description, price_cents, flat_fee_cents, percentage_fee_bps, quantity, sold, sale_start, sale_end, created_at
		FROM ticket_tiers
		WHERE id = $1`

	tier := &models.TicketTier{}
	err := r.db.QueryRow(query, id).Scan(
		&tier.ID,
		&tier.EventID,
		&tier.Name,
		&tier.Description,
		&tier.PriceCents,
		&tier.FlatFeeCents,
		&tier.PercentageFeeBps,
		&tier.Quantity,
		&tier.Sold,
		&tier.SaleStart,
		&tier.SaleEnd,
		&tier.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to get ticket tier: %w", err)
	}

	return tier, nil
}

// GetTiersByEvent retrieves all ticket tiers for an event
func (r *TicketRepository) GetTiersByEvent(eventID int) ([]*models.TicketTier, error) {
	query := `
		SELECT id, event_id, name, description, price_cents, flat_fee_cents, percentage_fee_bps, quantity, sold, sale_start, sale_end, created_at
		FROM ticket_tiers
		WHERE event_id = $1
		ORDER BY price_cents ASC, created_at ASC`

	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket tiers by event: %w", err)
	}
	defer rows.Close()

	var tiers []*models.TicketTier
	for rows.Next() {
		tier := &models.TicketTier{}
		err := rows.Scan(
			&tier.ID,
			&tier.EventID,
			&tier.Name,
			&tier.Description,
			&tier.PriceCents,
			&tier.FlatFeeCents,
			&tier.PercentageFeeBps,
			&tier.Quantity,
			&tier.Sold,
			&tier.SaleStart,
			&tier.SaleEnd,
			&tier.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket tier: %w", err)
		}
		tiers = append(tiers, tier)
	}

	return tiers, rows.Err()
}

// UpdateTier updates a ticket tier
func (r *TicketRepository) UpdateTier(id int, req *models.TierUpdateRequest) (*models.TicketTier, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE ticket_tiers
		SET name = $2, description = $3, price_cents = $4, flat_fee_cents = $5, percentage_fee_bps = $6, quantity = $7, sale_start = $8, sale_end = $9
		WHERE id = $1
		RETURNING id, event_id, name, description, price_cents, flat_fee_cents, percentage_fee_bps, quantity, sold, sale_start, sale_end, created_at`

	tier := &models.TicketTier{}
	err := r.db.QueryRow(
		query,
		id,
		req.Name,
		req.Description,
		req.PriceCents,
		req.FlatFeeCents,
		req.PercentageFeeBps,
		req.Quantity,
		req.SaleStart,
		req.SaleEnd,
	).Scan(
		&tier.ID,
		&tier.EventID,
		&tier.Name,
		&tier.Description,
		&tier.PriceCents,
		&tier.FlatFeeCents,
		&tier.PercentageFeeBps,
		&tier.Quantity,
		&tier.Sold,
		&tier.SaleStart,
		&tier.SaleEnd,
		&tier.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to update ticket tier: %w", err)
	}

	return tier, nil
}

// DeleteTier deletes a ticket tier with no sold tickets
func (r *TicketRepository) DeleteTier(id int) error {
	result, err := r.db.Exec(`DELETE FROM ticket_tiers WHERE id = $1 AND sold = 0`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket tier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("ticket tier %d not found or has sold tickets", id)
	}

	return nil
}

// Hold operations

// HoldTickets places a temporary claim on tier inventory with row locking.
// The sold counter is bumped inside the transaction; ReleaseHold undoes it
// if the checkout expires or is abandoned.
func (r *TicketRepository) HoldTickets(tierID, quantity, userID int, holdDuration time.Duration) (*TicketHold, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var available int
	var saleStart, saleEnd time.Time
	err = tx.QueryRow(`
		SELECT (quantity - sold), sale_start, sale_end
		FROM ticket_tiers
		WHERE id = $1
		FOR UPDATE`, tierID).Scan(&available, &saleStart, &saleEnd)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to check ticket availability: %w", err)
	}

	if available < quantity {
		return nil, fmt.Errorf("insufficient tickets available (requested: %d, available: %d)", quantity, available)
	}

	now := time.Now()
	if now.Before(saleStart) {
		return nil, fmt.Errorf("ticket sales have not started yet")
	}
	if now.After(saleEnd) {
		return nil, fmt.Errorf("ticket sales have ended")
	}

	_, err = tx.Exec(`
		UPDATE ticket_tiers
		SET sold = sold + $2
		WHERE id = $1`, tierID, quantity)

	if err != nil {
		return nil, fmt.Errorf("failed to hold tickets: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit hold: %w", err)
	}

	return &TicketHold{
		ID:        uuid.NewString(),
		TierID:    tierID,
		Quantity:  quantity,
		UserID:    userID,
		ExpiresAt: now.Add(holdDuration),
		CreatedAt: now,
	}, nil
}

// ReleaseHold returns held inventory to the tier
func (r *TicketRepository) ReleaseHold(tierID, quantity int) error {
	query := `
		UPDATE ticket_tiers
		SET sold = sold - $2
		WHERE id = $1 AND sold >= $2`

	result, err := r.db.Exec(query, tierID, quantity)
	if err != nil {
		return fmt.Errorf("failed to release hold: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no hold to release for tier %d", tierID)
	}

	return nil
}

// Ticket operations

// GetTicketByID retrieves a ticket by ID
func (r *TicketRepository) GetTicketByID(id int) (*models.Ticket, error) {
	query := `
		SELECT id, order_id, tier_id, qr_code, status, created_at
		FROM tickets
		WHERE id = $1`

	ticket := &models.Ticket{}
	err := r.db.QueryRow(query, id).Scan(
		&ticket.ID,
		&ticket.OrderID,
		&ticket.TierID,
		&ticket.QRCode,
		&ticket.Status,
		&ticket.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return ticket, nil
}

// GetTicketByQRCode retrieves a ticket by its QR code
func (r *TicketRepository) GetTicketByQRCode(qrCode string) (*models.Ticket, error) {
	query := `
		SELECT id, order_id, tier_id, qr_code, status, created_at
		FROM tickets
		WHERE qr_code = $1`

	ticket := &models.Ticket{}
	err := r.db.QueryRow(query, qrCode).Scan(
		&ticket.ID,
		&ticket.OrderID,
		&ticket.TierID,
		&ticket.QRCode,
		&ticket.Status,
		&ticket.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket by QR code: %w", err)
	}

	return ticket, nil
}

// GetTicketsByOrder retrieves all tickets for an order
func (r *TicketRepository) GetTicketsByOrder(orderID int) ([]*models.Ticket, error) {
	query := `
		SELECT id, order_id, tier_id, qr_code, status, created_at
		FROM tickets
		WHERE order_id = $1
		ORDER BY id ASC`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets by order: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket := &models.Ticket{}
		err := rows.Scan(
			&ticket.ID,
			&ticket.OrderID,
			&ticket.TierID,
			&ticket.QRCode,
			&ticket.Status,
			&ticket.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

// UpdateTicketStatus updates a ticket's status
func (r *TicketRepository) UpdateTicketStatus(id int, status models.TicketStatus) error {
	result, err := r.db.Exec(`UPDATE tickets SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrTicketNotFound
	}

	return nil
}
