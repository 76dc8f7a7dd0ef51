package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stagefront/internal/models"
	"stagefront/internal/repositories"
	"stagefront/internal/services"
)

type stubEventService struct {
	events map[int]*models.Event
}

func newStubEventService() *stubEventService {
	return &stubEventService{events: make(map[int]*models.Event)}
}

func (s *stubEventService) GetUpcomingEvents(limit int) ([]*models.Event, error) {
	var result []*models.Event
	for _, event := range s.events {
		result = append(result, event)
	}
	return result, nil
}

func (s *stubEventService) SearchEvents(filters repositories.EventSearchFilters) ([]*models.Event, int, error) {
	events, _ := s.GetUpcomingEvents(0)
	return events, len(events), nil
}

func (s *stubEventService) GetCategories() ([]*models.Category, error) {
	return nil, nil
}

func (s *stubEventService) GetEventByID(id int) (*models.Event, error) {
	event, exists := s.events[id]
	if !exists {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

func (s *stubEventService) CreateEvent(organizerID int, req *models.EventCreateRequest) (*models.Event, error) {
	return nil, errors.New("not implemented")
}

func (s *stubEventService) UpdateEvent(eventID, organizerID int, req *models.EventUpdateRequest) (*models.Event, error) {
	return nil, errors.New("not implemented")
}

func (s *stubEventService) DeleteEvent(eventID, organizerID int) error {
	return errors.New("not implemented")
}

func (s *stubEventService) GetEventsByOrganizer(organizerID int) ([]*models.Event, error) {
	return nil, nil
}

type stubTicketService struct {
	tiers        map[int]*models.TicketTier
	reservations map[string]*services.Reservation
	released     []string
	nextRes      int

	failReserveTier int
	confirmFails    bool
}

func newStubTicketService() *stubTicketService {
	return &stubTicketService{
		tiers:        make(map[int]*models.TicketTier),
		reservations: make(map[string]*services.Reservation),
	}
}

func (s *stubTicketService) GetTiersByEvent(eventID int) ([]*models.TicketTier, error) {
	var result []*models.TicketTier
	for _, tier := range s.tiers {
		if tier.EventID == eventID {
			result = append(result, tier)
		}
	}
	return result, nil
}

func (s *stubTicketService) GetTierByID(id int) (*models.TicketTier, error) {
	tier, exists := s.tiers[id]
	if !exists {
		return nil, models.ErrTierNotFound
	}
	return tier, nil
}

func (s *stubTicketService) CreateTier(eventID, organizerID int, req *models.TierCreateRequest) (*models.TicketTier, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTicketService) UpdateTier(tierID, organizerID int, req *models.TierUpdateRequest) (*models.TicketTier, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTicketService) DeleteTier(tierID, organizerID int) error {
	return errors.New("not implemented")
}

func (s *stubTicketService) ReserveTickets(tierID, quantity, userID int) (*services.Reservation, error) {
	if tierID == s.failReserveTier {
		return nil, models.ErrInsufficientStock
	}

	s.nextRes++
	reservation := &services.Reservation{
		ID:        fmt.Sprintf("res-%d", s.nextRes),
		TierID:    tierID,
		Quantity:  quantity,
		UserID:    userID,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	s.reservations[reservation.ID] = reservation
	return reservation, nil
}

func (s *stubTicketService) ReleaseReservation(reservationID string) error {
	if _, exists := s.reservations[reservationID]; !exists {
		return models.ErrHoldExpired
	}
	delete(s.reservations, reservationID)
	s.released = append(s.released, reservationID)
	return nil
}

func (s *stubTicketService) ConfirmReservation(reservationID string) (*repositories.TicketHold, error) {
	if s.confirmFails {
		return nil, models.ErrHoldExpired
	}

	reservation, exists := s.reservations[reservationID]
	if !exists {
		return nil, models.ErrHoldExpired
	}
	delete(s.reservations, reservationID)

	return &repositories.TicketHold{
		ID:       reservation.ID,
		TierID:   reservation.TierID,
		Quantity: reservation.Quantity,
		UserID:   reservation.UserID,
	}, nil
}

func (s *stubTicketService) GetTicketsByOrder(orderID int) ([]*models.Ticket, error) {
	return nil, nil
}

type stubProductService struct {
	products map[int]*models.Product
}

func newStubProductService() *stubProductService {
	return &stubProductService{products: make(map[int]*models.Product)}
}

func (s *stubProductService) GetByEvent(eventID int) ([]*models.Product, error) {
	var result []*models.Product
	for _, product := range s.products {
		if product.EventID == eventID {
			result = append(result, product)
		}
	}
	return result, nil
}

func (s *stubProductService) GetByID(id int) (*models.Product, error) {
	product, exists := s.products[id]
	if !exists {
		return nil, models.ErrProductNotFound
	}
	return product, nil
}

func (s *stubProductService) CreateProduct(eventID, organizerID int, req *models.ProductCreateRequest) (*models.Product, error) {
	return nil, errors.New("not implemented")
}

func (s *stubProductService) UpdateProduct(productID, organizerID int, req *models.ProductCreateRequest) (*models.Product, error) {
	return nil, errors.New("not implemented")
}

func (s *stubProductService) DeleteProduct(productID, organizerID int) error {
	return errors.New("not implemented")
}

type stubOrderService struct {
	orders    map[int]*models.Order
	nextID    int
	attached  map[int]string
	completed []int
	cancelled []int
	merch     []services.MerchSelection
}

func newStubOrderService() *stubOrderService {
	return &stubOrderService{
		orders:   make(map[int]*models.Order),
		nextID:   1,
		attached: make(map[int]string),
	}
}

func (s *stubOrderService) QuoteOrder(selections []services.CheckoutSelection) (*services.OrderQuote, error) {
	quote := &services.OrderQuote{}
	for _, sel := range selections {
		if sel.Quantity < 0 {
			return nil, errors.New("quantity cannot be negative")
		}
		quote.SubtotalCents += 1000 * sel.Quantity
		quote.TicketCount += sel.Quantity
	}
	quote.TotalCents = quote.SubtotalCents
	return quote, nil
}

func (s *stubOrderService) CreateOrder(req *services.CheckoutRequest) (*models.Order, error) {
	s.merch = append(s.merch, req.Merch...)
	order := &models.Order{
		ID:          s.nextID,
		UserID:      req.UserID,
		EventID:     req.EventID,
		OrderNumber: fmt.Sprintf("ORD-%06d", s.nextID),
		Status:      models.OrderPending,
		TotalCents:  2300,
		CreatedAt:   time.Now(),
	}
	s.orders[s.nextID] = order
	s.nextID++
	return order, nil
}

func (s *stubOrderService) AttachPayment(orderID int, paymentID string) error {
	s.attached[orderID] = paymentID
	return nil
}

func (s *stubOrderService) GetOrderByID(orderID, requestingUserID int) (*models.Order, error) {
	order, exists := s.orders[orderID]
	if !exists {
		return nil, models.ErrOrderNotFound
	}
	return order, nil
}

func (s *stubOrderService) GetUserOrders(userID, limit, offset int) ([]*repositories.OrderWithDetails, int, error) {
	return nil, 0, nil
}

func (s *stubOrderService) CompleteOrder(orderID int, paymentID string) error {
	order, exists := s.orders[orderID]
	if !exists {
		return models.ErrOrderNotFound
	}
	order.Status = models.OrderCompleted
	s.completed = append(s.completed, orderID)
	return nil
}

func (s *stubOrderService) CancelOrder(orderID, requestingUserID int) error {
	order, exists := s.orders[orderID]
	if !exists {
		return models.ErrOrderNotFound
	}
	order.Status = models.OrderCancelled
	s.cancelled = append(s.cancelled, orderID)
	return nil
}

func (s *stubOrderService) SweepExpiredOrders() (int, error) {
	return 0, nil
}

type stubPaymentService struct {
	status     string
	processErr error
}

func (s *stubPaymentService) ProcessPayment(amountCents int, billingInfo services.PaymentBillingInfo) (*services.PaymentResult, error) {
	if s.processErr != nil {
		return nil, s.processErr
	}
	return &services.PaymentResult{
		PaymentID:   "pay_test",
		Status:      s.status,
		AmountCents: amountCents,
		ProcessedAt: time.Now(),
	}, nil
}

func (s *stubPaymentService) VerifyPayment(paymentID string) (*services.PaymentStatus, error) {
	return &services.PaymentStatus{PaymentID: paymentID, Status: s.status}, nil
}

func (s *stubPaymentService) RefundPayment(paymentID string, amountCents int) (*services.RefundResult, error) {
	return &services.RefundResult{RefundID: "ref_test", Status: "success", AmountCents: amountCents}, nil
}

type stubFunctionsService struct {
	invoked  []string
	payload  interface{}
	response map[string]string
	err      error
}

func (s *stubFunctionsService) Invoke(ctx context.Context, name string, payload interface{}, out interface{}) error {
	s.invoked = append(s.invoked, name)
	s.payload = payload
	if s.err != nil {
		return s.err
	}
	if s.response != nil && out != nil {
		data, _ := json.Marshal(s.response)
		return json.Unmarshal(data, out)
	}
	return nil
}

func (s *stubFunctionsService) SetAuthToken(token string) error { return nil }

func (s *stubFunctionsService) ClearAuthToken() error { return nil }
