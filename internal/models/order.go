package models

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

// Order represents a completed or in-flight checkout. Amounts are in cents
// and satisfy TotalCents = SubtotalCents + FeesCents.
type Order struct {
	ID            int         `json:"id" db:"id"`
	UserID        int         `json:"user_id" db:"user_id"`
	EventID       int         `json:"event_id" db:"event_id"`
	OrderNumber   string      `json:"order_number" db:"order_number"`
	SubtotalCents int         `json:"subtotal_cents" db:"subtotal_cents"`
	FeesCents     int         `json:"fees_cents" db:"fees_cents"`
	TotalCents    int         `json:"total_cents" db:"total_cents"`
	Status        OrderStatus `json:"status" db:"status"`
	PaymentID     string      `json:"payment_id" db:"payment_id"`
	BillingEmail  string      `json:"billing_email" db:"billing_email"`
	BillingName   string      `json:"billing_name" db:"billing_name"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderCreateRequest represents the data needed to create a new order
type OrderCreateRequest struct {
	UserID        int         `json:"user_id"`
	EventID       int         `json:"event_id"`
	SubtotalCents int         `json:"subtotal_cents"`
	FeesCents     int         `json:"fees_cents"`
	TotalCents    int         `json:"total_cents"`
	BillingEmail  string      `json:"billing_email"`
	BillingName   string      `json:"billing_name"`
	Status        OrderStatus `json:"status"`
}

var (
	// Order number format: ORD-YYYYMMDD-XXXXXX (e.g., ORD-20260101-123456)
	orderNumberRegex = regexp.MustCompile(`^ORD-\d{8}-\d{6}$`)
	// Email validation regex for orders
	orderEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Validate validates the order data
func (o *Order) Validate() error {
	if o.OrderNumber == "" {
		return errors.New("order number is required")
	}

	if !orderNumberRegex.MatchString(o.OrderNumber) {
		return errors.New("order number format is invalid")
	}

	if err := validateOrderAmounts(o.SubtotalCents, o.FeesCents, o.TotalCents); err != nil {
		return err
	}

	if err := validateOrderStatus(o.Status); err != nil {
		return err
	}

	return validateOrderBillingInfo(o.BillingEmail, o.BillingName)
}

// Validate validates order creation data
func (req *OrderCreateRequest) Validate() error {
	if err := validateOrderAmounts(req.SubtotalCents, req.FeesCents, req.TotalCents); err != nil {
		return err
	}

	if err := validateOrderStatus(req.Status); err != nil {
		return err
	}

	return validateOrderBillingInfo(req.BillingEmail, req.BillingName)
}

// validateOrderAmounts validates order monetary amounts
func validateOrderAmounts(subtotalCents, feesCents, totalCents int) error {
	if subtotalCents < 0 {
		return errors.New("subtotal cannot be negative")
	}

	if feesCents < 0 {
		return errors.New("fees cannot be negative")
	}

	if totalCents != subtotalCents+feesCents {
		return errors.New("order total must equal subtotal plus fees")
	}

	// Maximum order amount of $100,000 (10,000,000 cents)
	if totalCents > 10000000 {
		return errors.New("total amount cannot exceed $100,000")
	}

	return nil
}

// validateOrderStatus validates an order status
func validateOrderStatus(status OrderStatus) error {
	switch status {
	case OrderPending, OrderCompleted, OrderCancelled, OrderRefunded:
		return nil
	default:
		return errors.New("invalid order status")
	}
}

// validateOrderBillingInfo validates order billing information
func validateOrderBillingInfo(billingEmail, billingName string) error {
	if billingEmail == "" {
		return errors.New("billing email is required")
	}

	if billingName == "" {
		return errors.New("billing name is required")
	}

	if len(billingEmail) > 255 {
		return errors.New("billing email must be less than 255 characters")
	}

	if len(billingName) > 255 {
		return errors.New("billing name must be less than 255 characters")
	}

	if !orderEmailRegex.MatchString(billingEmail) {
		return errors.New("billing email format is invalid")
	}

	if strings.TrimSpace(billingName) == "" {
		return errors.New("billing name cannot be only whitespace")
	}

	return nil
}

// GenerateOrderNumber generates a unique order number
func GenerateOrderNumber() string {
	now := time.Now()
	dateStr := now.Format("20060102")

	max := big.NewInt(1000000)
	randomNum, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fallback to timestamp-based generation if crypto/rand fails
		return fmt.Sprintf("ORD-%s-%06d", dateStr, now.UnixNano()%1000000)
	}

	return fmt.Sprintf("ORD-%s-%06d", dateStr, randomNum.Int64())
}

// IsPending returns true if the order is pending
func (o *Order) IsPending() bool {
	return o.Status == OrderPending
}

// IsCompleted returns true if the order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderCompleted
}

// CanBeCancelled returns true if the order can be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderPending
}

// CanBeCompleted returns true if the order can be marked as completed
func (o *Order) CanBeCompleted() bool {
	return o.Status == OrderPending
}

// CanBeRefunded returns true if the order can be refunded
func (o *Order) CanBeRefunded() bool {
	return o.Status == OrderCompleted
}

// IsExpired returns true if a pending order has outlived its hold window
func (o *Order) IsExpired(expirationDuration time.Duration) bool {
	if o.Status != OrderPending {
		return false
	}

	return time.Since(o.CreatedAt) > expirationDuration
}

// TotalInCurrency returns the total amount in the main currency unit
func (o *Order) TotalInCurrency() float64 {
	return float64(o.TotalCents) / 100.0
}

// StatusDisplayName returns a human-readable status name
func (o *Order) StatusDisplayName() string {
	switch o.Status {
	case OrderPending:
		return "Pending Payment"
	case OrderCompleted:
		return "Completed"
	case OrderCancelled:
		return "Cancelled"
	case OrderRefunded:
		return "Refunded"
	default:
		return string(o.Status)
	}
}
