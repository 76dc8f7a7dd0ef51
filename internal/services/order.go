package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"stagefront/internal/checkout"
	"stagefront/internal/models"
	"stagefront/internal/repositories"
)

// OrderRepository defines the order repository interface for this service
type OrderRepository interface {
	Create(req *models.OrderCreateRequest, items []repositories.OrderItem) (*models.Order, error)
	GetByID(id int) (*models.Order, error)
	GetItems(orderID int) ([]repositories.OrderItem, error)
	GetByUser(userID int, limit, offset int) ([]*repositories.OrderWithDetails, int, error)
	UpdateStatus(id int, status models.OrderStatus) error
	UpdatePaymentID(id int, paymentID string) error
	CompleteOrder(orderID int, paymentID string, issues []repositories.TicketIssue) error
	GetExpiredPending(holdDuration time.Duration) ([]*models.Order, error)
}

// OrderTierRepository is the slice of the ticket repository the order
// service needs for pricing and releasing holds
type OrderTierRepository interface {
	GetTierByID(id int) (*models.TicketTier, error)
	ReleaseHold(tierID, quantity int) error
}

// OrderEventRepository is the slice of the event repository the order
// service needs for confirmation emails
type OrderEventRepository interface {
	GetByID(id int) (*models.Event, error)
}

// OrderProductRepository is the slice of the product repository the
// order service needs for pricing merch lines and moving their stock
type OrderProductRepository interface {
	GetByID(id int) (*models.Product, error)
	DecrementStock(id, quantity int) error
	IncrementStock(id, quantity int) error
}

// OrderService handles order creation, completion, and cancellation
type OrderService struct {
	orderRepo    OrderRepository
	tierRepo     OrderTierRepository
	eventRepo    OrderEventRepository
	productRepo  OrderProductRepository
	emailService EmailServiceInterface
	holdDuration time.Duration
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository, tierRepo OrderTierRepository, eventRepo OrderEventRepository, productRepo OrderProductRepository, emailService EmailServiceInterface, holdDuration time.Duration) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		tierRepo:     tierRepo,
		eventRepo:    eventRepo,
		productRepo:  productRepo,
		emailService: emailService,
		holdDuration: holdDuration,
	}
}

// QuoteOrder prices a set of tier selections without creating anything.
// Zero-quantity selections are skipped so a form row left empty does not
// produce an order line.
func (s *OrderService) QuoteOrder(selections []CheckoutSelection) (*OrderQuote, error) {
	if len(selections) == 0 {
		return nil, fmt.Errorf("no tickets selected")
	}

	ticketSelections := make([]checkout.TicketSelection, 0, len(selections))
	for _, sel := range selections {
		if sel.Quantity < 0 {
			return nil, fmt.Errorf("quantity cannot be negative")
		}

		tier, err := s.tierRepo.GetTierByID(sel.TierID)
		if err != nil {
			return nil, err
		}

		ticketSelections = append(ticketSelections, checkout.TicketSelection{
			TierID:         tier.ID,
			TierName:       tier.Name,
			Quantity:       sel.Quantity,
			PricePerTicket: tier.PriceCents,
			FeesPerTicket:  tier.FeesPerTicket(),
		})
	}

	summary := checkout.CalculateOrderSummary(ticketSelections)

	quote := &OrderQuote{
		SubtotalCents: summary.SubtotalCents,
		FeesCents:     summary.FeesCents,
		TotalCents:    summary.TotalCents,
		TicketCount:   summary.TicketCount,
	}

	for _, item := range summary.Items {
		quote.Items = append(quote.Items, QuoteItem{
			TierID:        item.TierID,
			TierName:      item.TierName,
			Quantity:      item.Quantity,
			PriceCents:    item.PricePerTicket,
			FeesCents:     item.FeesPerTicket,
			SubtotalCents: item.SubtotalCents,
			TotalCents:    item.TotalCents,
		})
	}

	return quote, nil
}

// CreateOrder creates a pending order from a checkout request. The
// caller is expected to have reserved the tickets already; amounts are
// priced fresh from the current tier and product data. Merch lines
// carry no fees and take their stock immediately; cancellation returns
// it.
func (s *OrderService) CreateOrder(req *CheckoutRequest) (*models.Order, error) {
	for _, m := range req.Merch {
		if m.Quantity < 0 {
			return nil, fmt.Errorf("quantity cannot be negative")
		}
	}

	quote := &OrderQuote{}
	if len(req.Selections) > 0 {
		var err error
		quote, err = s.QuoteOrder(req.Selections)
		if err != nil {
			return nil, err
		}
	}

	items := make([]repositories.OrderItem, 0, len(quote.Items)+len(req.Merch))
	for _, line := range quote.Items {
		if line.Quantity == 0 {
			continue
		}
		items = append(items, repositories.OrderItem{
			TierID:     line.TierID,
			Quantity:   line.Quantity,
			PriceCents: line.PriceCents,
			FeesCents:  line.FeesCents,
		})
	}

	merchSubtotal := 0
	var taken []MerchSelection
	for _, m := range req.Merch {
		if m.Quantity == 0 {
			continue
		}

		product, err := s.productRepo.GetByID(m.ProductID)
		if err != nil {
			s.restoreStock(taken)
			return nil, err
		}

		if err := s.productRepo.DecrementStock(m.ProductID, m.Quantity); err != nil {
			s.restoreStock(taken)
			return nil, err
		}
		taken = append(taken, m)

		merchSubtotal += product.PriceCents * m.Quantity
		items = append(items, repositories.OrderItem{
			ProductID:  m.ProductID,
			Quantity:   m.Quantity,
			PriceCents: product.PriceCents,
		})
	}

	if quote.TicketCount == 0 && len(taken) == 0 {
		return nil, fmt.Errorf("no items selected")
	}

	createReq := &models.OrderCreateRequest{
		UserID:        req.UserID,
		EventID:       req.EventID,
		SubtotalCents: quote.SubtotalCents + merchSubtotal,
		FeesCents:     quote.FeesCents,
		TotalCents:    quote.TotalCents + merchSubtotal,
		BillingEmail:  req.BillingEmail,
		BillingName:   req.BillingName,
		Status:        models.OrderPending,
	}

	order, err := s.orderRepo.Create(createReq, items)
	if err != nil {
		s.restoreStock(taken)
		return nil, err
	}

	return order, nil
}

func (s *OrderService) restoreStock(taken []MerchSelection) {
	for _, m := range taken {
		if err := s.productRepo.IncrementStock(m.ProductID, m.Quantity); err != nil {
			log.Printf("Failed to restore stock for product %d: %v", m.ProductID, err)
		}
	}
}

// AttachPayment records the gateway reference on a pending order so the
// callback and webhook can find it later.
func (s *OrderService) AttachPayment(orderID int, paymentID string) error {
	return s.orderRepo.UpdatePaymentID(orderID, paymentID)
}

// GetOrderByID returns an order, restricted to its owner
func (s *OrderService) GetOrderByID(orderID, requestingUserID int) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != requestingUserID {
		return nil, models.ErrUnauthorized
	}

	return order, nil
}

// GetUserOrders returns a page of a user's orders
func (s *OrderService) GetUserOrders(userID, limit, offset int) ([]*repositories.OrderWithDetails, int, error) {
	return s.orderRepo.GetByUser(userID, limit, offset)
}

// CompleteOrder marks a paid order completed and issues one ticket per
// seat, each with a fresh QR code.
func (s *OrderService) CompleteOrder(orderID int, paymentID string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}

	if !order.CanBeCompleted() {
		return fmt.Errorf("order %s cannot be completed from status %s", order.OrderNumber, order.Status)
	}

	items, err := s.orderRepo.GetItems(orderID)
	if err != nil {
		return err
	}

	var issues []repositories.TicketIssue
	for _, item := range items {
		if item.TierID == 0 {
			// Merch lines don't issue tickets.
			continue
		}
		for i := 0; i < item.Quantity; i++ {
			issues = append(issues, repositories.TicketIssue{
				TierID: item.TierID,
				QRCode: uuid.NewString(),
			})
		}
	}

	if err := s.orderRepo.CompleteOrder(orderID, paymentID, issues); err != nil {
		return err
	}

	if s.emailService != nil {
		eventTitle := ""
		if event, err := s.eventRepo.GetByID(order.EventID); err == nil {
			eventTitle = event.Title
		}
		if err := s.emailService.SendOrderConfirmation(order.BillingEmail, order.BillingName, order.OrderNumber, eventTitle, order.TotalCents); err != nil {
			log.Printf("Failed to send order confirmation for %s: %v", order.OrderNumber, err)
		}
	}

	return nil
}

// CancelOrder cancels a pending order and returns its tickets to the pool
func (s *OrderService) CancelOrder(orderID, requestingUserID int) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}

	if order.UserID != requestingUserID {
		return models.ErrUnauthorized
	}

	if !order.CanBeCancelled() {
		return fmt.Errorf("order %s cannot be cancelled from status %s", order.OrderNumber, order.Status)
	}

	if err := s.cancelAndRelease(order); err != nil {
		return err
	}

	if s.emailService != nil {
		if err := s.emailService.SendOrderCancelled(order.BillingEmail, order.BillingName, order.OrderNumber); err != nil {
			log.Printf("Failed to send cancellation email for %s: %v", order.OrderNumber, err)
		}
	}

	return nil
}

// SweepExpiredOrders cancels pending orders that outlived the hold
// window and releases their inventory. Returns the number of orders
// swept.
func (s *OrderService) SweepExpiredOrders() (int, error) {
	expired, err := s.orderRepo.GetExpiredPending(s.holdDuration)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, order := range expired {
		if err := s.cancelAndRelease(order); err != nil {
			log.Printf("Failed to sweep expired order %s: %v", order.OrderNumber, err)
			continue
		}
		swept++
	}

	return swept, nil
}

func (s *OrderService) cancelAndRelease(order *models.Order) error {
	if err := s.orderRepo.UpdateStatus(order.ID, models.OrderCancelled); err != nil {
		return err
	}

	items, err := s.orderRepo.GetItems(order.ID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.TierID != 0 {
			if err := s.tierRepo.ReleaseHold(item.TierID, item.Quantity); err != nil {
				return fmt.Errorf("failed to release tier %d: %w", item.TierID, err)
			}
			continue
		}
		if err := s.productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to restore product %d: %w", item.ProductID, err)
		}
	}

	return nil
}
