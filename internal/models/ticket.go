package models

import (
	"errors"
	"strings"
	"time"

	"stagefront/internal/checkout"
)

// TicketStatus represents the status of an issued ticket
type TicketStatus string

const (
	TicketActive   TicketStatus = "active"
	TicketUsed     TicketStatus = "used"
	TicketRefunded TicketStatus = "refunded"
)

// TicketTier represents a priced ticket category for an event, with
// available quantity and fee configuration
type TicketTier struct {
	ID               int       `json:"id" db:"id"`
	EventID          int       `json:"event_id" db:"event_id"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description" db:"description"`
	PriceCents       int       `json:"price_cents" db:"price_cents"`
	FlatFeeCents     int       `json:"flat_fee_cents" db:"flat_fee_cents"`
	PercentageFeeBps int       `json:"percentage_fee_bps" db:"percentage_fee_bps"`
	Quantity         int       `json:"quantity" db:"quantity"`
	Sold             int       `json:"sold" db:"sold"`
	SaleStart        time.Time `json:"sale_start" db:"sale_start"`
	SaleEnd          time.Time `json:"sale_end" db:"sale_end"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Ticket represents an individual ticket issued against an order
type Ticket struct {
	ID        int          `json:"id" db:"id"`
	OrderID   int          `json:"order_id" db:"order_id"`
	TierID    int          `json:"tier_id" db:"tier_id"`
	QRCode    string       `json:"qr_code" db:"qr_code"`
	Status    TicketStatus `json:"status" db:"status"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// Validate validates the ticket tier data
func (tt *TicketTier) Validate() error {
	if err := validateTierName(tt.Name); err != nil {
		return err
	}

	if err := validateTierPrice(tt.PriceCents); err != nil {
		return err
	}

	if err := validateTierFees(tt.FlatFeeCents, tt.PercentageFeeBps); err != nil {
		return err
	}

	if err := validateTierQuantity(tt.Quantity); err != nil {
		return err
	}

	if err := validateTierSalePeriod(tt.SaleStart, tt.SaleEnd); err != nil {
		return err
	}

	return validateTierDescription(tt.Description)
}

// Validate validates the ticket data
func (t *Ticket) Validate() error {
	if t.QRCode == "" {
		return errors.New("QR code is required")
	}

	if len(t.QRCode) > 255 {
		return errors.New("QR code must be less than 255 characters")
	}

	switch t.Status {
	case TicketActive, TicketUsed, TicketRefunded:
		return nil
	default:
		return errors.New("invalid ticket status")
	}
}

// validateTierName validates a ticket tier name
func validateTierName(name string) error {
	if name == "" {
		return errors.New("tier name is required")
	}

	if len(name) > 100 {
		return errors.New("tier name must be less than 100 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("tier name cannot be only whitespace")
	}

	return nil
}

// validateTierPrice validates a ticket tier price
func validateTierPrice(priceCents int) error {
	if priceCents < 0 {
		return errors.New("ticket price cannot be negative")
	}

	// Maximum price of $10,000 (1,000,000 cents)
	if priceCents > 1000000 {
		return errors.New("ticket price cannot exceed $10,000")
	}

	return nil
}

// validateTierFees validates a tier's fee configuration
func validateTierFees(flatFeeCents, percentageFeeBps int) error {
	if flatFeeCents < 0 {
		return errors.New("flat fee cannot be negative")
	}

	if percentageFeeBps < 0 {
		return errors.New("percentage fee cannot be negative")
	}

	// 10,000 bps = 100% of the ticket price
	if percentageFeeBps > 10000 {
		return errors.New("percentage fee cannot exceed 100%")
	}

	return nil
}

// validateTierQuantity validates a ticket tier quantity
func validateTierQuantity(quantity int) error {
	if quantity <= 0 {
		return errors.New("ticket quantity must be greater than 0")
	}

	if quantity > 100000 {
		return errors.New("ticket quantity cannot exceed 100,000")
	}

	return nil
}

// validateTierSalePeriod validates a ticket tier sale period
func validateTierSalePeriod(saleStart, saleEnd time.Time) error {
	if saleStart.IsZero() {
		return errors.New("sale start date is required")
	}

	if saleEnd.IsZero() {
		return errors.New("sale end date is required")
	}

	if saleStart.After(saleEnd) {
		return errors.New("sale start date must be before sale end date")
	}

	if saleEnd.Sub(saleStart) < time.Hour {
		return errors.New("sale period must be at least 1 hour")
	}

	return nil
}

// validateTierDescription validates a ticket tier description
func validateTierDescription(description string) error {
	if len(description) > 1000 {
		return errors.New("tier description must be less than 1000 characters")
	}

	return nil
}

// Fees returns the tier's fee configuration for the order calculator.
func (tt *TicketTier) Fees() checkout.TicketFees {
	return checkout.TicketFees{
		FlatFeeCents:     tt.FlatFeeCents,
		PercentageFeeBps: tt.PercentageFeeBps,
	}
}

// FeesPerTicket returns the per-ticket fee in cents for this tier.
func (tt *TicketTier) FeesPerTicket() int {
	return checkout.CalculateFees(tt.PriceCents, tt.Fees())
}

// IsAvailable returns true if tickets are available for purchase
func (tt *TicketTier) IsAvailable() bool {
	now := time.Now()
	return tt.Sold < tt.Quantity &&
		now.After(tt.SaleStart) &&
		now.Before(tt.SaleEnd)
}

// IsSoldOut returns true if all tickets are sold
func (tt *TicketTier) IsSoldOut() bool {
	return tt.Sold >= tt.Quantity
}

// Available returns the number of available tickets
func (tt *TicketTier) Available() int {
	available := tt.Quantity - tt.Sold
	if available < 0 {
		return 0
	}
	return available
}

// SaleNotStarted returns true if the sale hasn't started yet
func (tt *TicketTier) SaleNotStarted() bool {
	return time.Now().Before(tt.SaleStart)
}

// SaleEnded returns true if the sale has ended
func (tt *TicketTier) SaleEnded() bool {
	return time.Now().After(tt.SaleEnd)
}

// IsActive returns true if the ticket is active
func (t *Ticket) IsActive() bool {
	return t.Status == TicketActive
}

// IsUsed returns true if the ticket has been used
func (t *Ticket) IsUsed() bool {
	return t.Status == TicketUsed
}

// CanBeUsed returns true if the ticket can be used (scanned)
func (t *Ticket) CanBeUsed() bool {
	return t.Status == TicketActive
}

// CanBeRefunded returns true if the ticket can be refunded
func (t *Ticket) CanBeRefunded() bool {
	return t.Status == TicketActive
}
