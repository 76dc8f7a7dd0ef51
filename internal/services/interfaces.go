package services

import (
	"context"
	"io"
	"time"

	"stagefront/internal/models"
	"stagefront/internal/repositories"
)

// AuthServiceInterface defines the interface for authentication services
type AuthServiceInterface interface {
	Register(req *models.UserCreateRequest) (*models.User, error)
	Login(email, password string) (*models.User, error)
	GetUser(id int) (*models.User, error)
	UpdateProfile(userID int, req *models.ProfileUpdateRequest) (*models.User, error)
	ChangePassword(userID int, currentPassword, newPassword string) error
}

// EventServiceInterface defines the interface for event services
type EventServiceInterface interface {
	GetUpcomingEvents(limit int) ([]*models.Event, error)
	SearchEvents(filters repositories.EventSearchFilters) ([]*models.Event, int, error)
	GetCategories() ([]*models.Category, error)
	GetEventByID(id int) (*models.Event, error)
	CreateEvent(organizerID int, req *models.EventCreateRequest) (*models.Event, error)
	UpdateEvent(eventID, organizerID int, req *models.EventUpdateRequest) (*models.Event, error)
	DeleteEvent(eventID, organizerID int) error
	GetEventsByOrganizer(organizerID int) ([]*models.Event, error)
}

// TicketServiceInterface defines the interface for ticket tier and
// reservation services
type TicketServiceInterface interface {
	GetTiersByEvent(eventID int) ([]*models.TicketTier, error)
	GetTierByID(id int) (*models.TicketTier, error)
	CreateTier(eventID, organizerID int, req *models.TierCreateRequest) (*models.TicketTier, error)
	UpdateTier(tierID, organizerID int, req *models.TierUpdateRequest) (*models.TicketTier, error)
	DeleteTier(tierID, organizerID int) error
	ReserveTickets(tierID, quantity, userID int) (*Reservation, error)
	ReleaseReservation(reservationID string) error
	ConfirmReservation(reservationID string) (*repositories.TicketHold, error)
	GetTicketsByOrder(orderID int) ([]*models.Ticket, error)
}

// ProductServiceInterface defines the interface for merchandise services
type ProductServiceInterface interface {
	GetByEvent(eventID int) ([]*models.Product, error)
	GetByID(id int) (*models.Product, error)
	CreateProduct(eventID, organizerID int, req *models.ProductCreateRequest) (*models.Product, error)
	UpdateProduct(productID, organizerID int, req *models.ProductCreateRequest) (*models.Product, error)
	DeleteProduct(productID, organizerID int) error
}

// OrderServiceInterface defines the interface for order services
type OrderServiceInterface interface {
	QuoteOrder(selections []CheckoutSelection) (*OrderQuote, error)
	CreateOrder(req *CheckoutRequest) (*models.Order, error)
	AttachPayment(orderID int, paymentID string) error
	GetOrderByID(orderID, requestingUserID int) (*models.Order, error)
	GetUserOrders(userID, limit, offset int) ([]*repositories.OrderWithDetails, int, error)
	CompleteOrder(orderID int, paymentID string) error
	CancelOrder(orderID, requestingUserID int) error
	SweepExpiredOrders() (int, error)
}

// EmailServiceInterface defines the interface for email services
type EmailServiceInterface interface {
	SendWelcomeEmail(email, userName string) error
	SendOrderConfirmation(email, userName, orderNumber, eventTitle string, totalCents int) error
	SendOrderCancelled(email, userName, orderNumber string) error
}

// PaymentService defines the interface for payment providers
type PaymentService interface {
	ProcessPayment(amountCents int, billingInfo PaymentBillingInfo) (*PaymentResult, error)
	VerifyPayment(paymentID string) (*PaymentStatus, error)
	RefundPayment(paymentID string, amountCents int) (*RefundResult, error)
}

// StorageServiceInterface defines the interface for file storage operations
type StorageServiceInterface interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
	GeneratePresignedURL(ctx context.Context, key string, contentType string, expiration time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// FunctionsServiceInterface defines the interface for invoking backend
// functions over HTTP
type FunctionsServiceInterface interface {
	Invoke(ctx context.Context, name string, payload interface{}, out interface{}) error
	SetAuthToken(token string) error
	ClearAuthToken() error
}

// CheckoutSelection is one ticket tier and quantity chosen at checkout
type CheckoutSelection struct {
	TierID   int `json:"tier_id"`
	Quantity int `json:"quantity"`
}

// MerchSelection is one merchandise product and quantity chosen at checkout
type MerchSelection struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CheckoutRequest represents a request to create a pending order
type CheckoutRequest struct {
	UserID       int                 `json:"user_id"`
	EventID      int                 `json:"event_id"`
	Selections   []CheckoutSelection `json:"selections"`
	Merch        []MerchSelection    `json:"merch"`
	BillingEmail string              `json:"billing_email"`
	BillingName  string              `json:"billing_name"`
}

// OrderQuote is the priced breakdown of a prospective order
type OrderQuote struct {
	Items         []QuoteItem `json:"items"`
	SubtotalCents int         `json:"subtotal_cents"`
	FeesCents     int         `json:"fees_cents"`
	TotalCents    int         `json:"total_cents"`
	TicketCount   int         `json:"ticket_count"`
}

// QuoteItem is one tier line in a quote
type QuoteItem struct {
	TierID        int    `json:"tier_id"`
	TierName      string `json:"tier_name"`
	Quantity      int    `json:"quantity"`
	PriceCents    int    `json:"price_cents"`
	FeesCents     int    `json:"fees_cents"`
	SubtotalCents int    `json:"subtotal_cents"`
	TotalCents    int    `json:"total_cents"`
}

// Reservation is a timed ticket hold awaiting payment
type Reservation struct {
	ID        string    `json:"id"`
	TierID    int       `json:"tier_id"`
	Quantity  int       `json:"quantity"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PaymentBillingInfo carries the customer details sent to the payment provider
type PaymentBillingInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PaymentResult represents the outcome of initiating a payment
type PaymentResult struct {
	PaymentID        string    `json:"payment_id"`
	Status           string    `json:"status"`
	AmountCents      int       `json:"amount_cents"`
	AuthorizationURL string    `json:"authorization_url,omitempty"`
	ProcessedAt      time.Time `json:"processed_at"`
}

// PaymentStatus represents the current state of a payment
type PaymentStatus struct {
	PaymentID   string    `json:"payment_id"`
	Status      string    `json:"status"`
	AmountCents int       `json:"amount_cents"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RefundResult represents the outcome of a refund request
type RefundResult struct {
	RefundID    string    `json:"refund_id"`
	Status      string    `json:"status"`
	AmountCents int       `json:"amount_cents"`
	ProcessedAt time.Time `json:"processed_at"`
}
