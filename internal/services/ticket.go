package services

import (
	"fmt"
	"sync"
	"time"

	"stagefront/internal/checkout"
	"stagefront/internal/models"
	"stagefront/internal/repositories"
)

// TicketRepository defines the ticket repository interface for this service
type TicketRepository interface {
	CreateTier(req *models.TierCreateRequest) (*models.TicketTier, error)
	GetTierByID(id int) (*models.TicketTier, error)
	GetTiersByEvent(eventID int) ([]*models.TicketTier, error)
	UpdateTier(id int, req *models.TierUpdateRequest) (*models.TicketTier, error)
	DeleteTier(id int) error
	HoldTickets(tierID, quantity, userID int, holdDuration time.Duration) (*repositories.TicketHold, error)
	ReleaseHold(tierID, quantity int) error
	GetTicketsByOrder(orderID int) ([]*models.Ticket, error)
}

// TicketEventRepository is the slice of the event repository the ticket
// service needs for ownership checks
type TicketEventRepository interface {
	GetByID(id int) (*models.Event, error)
}

// TicketService handles ticket tier management and timed reservations.
// Each reservation holds inventory in the database and carries a timer
// that releases the hold if checkout does not finish in time.
type TicketService struct {
	ticketRepo   TicketRepository
	eventRepo    TicketEventRepository
	holdDuration time.Duration

	mu           sync.Mutex
	reservations map[string]*activeReservation
}

type activeReservation struct {
	hold  *repositories.TicketHold
	timer *checkout.HoldTimer
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo TicketRepository, eventRepo TicketEventRepository, holdDuration time.Duration) *TicketService {
	return &TicketService{
		ticketRepo:   ticketRepo,
		eventRepo:    eventRepo,
		holdDuration: holdDuration,
		reservations: make(map[string]*activeReservation),
	}
}

// GetTiersByEvent returns all ticket tiers for an event
func (s *TicketService) GetTiersByEvent(eventID int) ([]*models.TicketTier, error) {
	return s.ticketRepo.GetTiersByEvent(eventID)
}

// GetTierByID returns a single ticket tier
func (s *TicketService) GetTierByID(id int) (*models.TicketTier, error) {
	return s.ticketRepo.GetTierByID(id)
}

// CreateTier creates a ticket tier on an event owned by the organizer
func (s *TicketService) CreateTier(eventID, organizerID int, req *models.TierCreateRequest) (*models.TicketTier, error) {
	if err := s.requireEventOwner(eventID, organizerID); err != nil {
		return nil, err
	}

	req.EventID = eventID
	return s.ticketRepo.CreateTier(req)
}

// UpdateTier updates a ticket tier after checking event ownership
func (s *TicketService) UpdateTier(tierID, organizerID int, req *models.TierUpdateRequest) (*models.TicketTier, error) {
	tier, err := s.ticketRepo.GetTierByID(tierID)
	if err != nil {
		return nil, err
	}

	if err := s.requireEventOwner(tier.EventID, organizerID); err != nil {
		return nil, err
	}

	return s.ticketRepo.UpdateTier(tierID, req)
}

// DeleteTier deletes a ticket tier after checking event ownership
func (s *TicketService) DeleteTier(tierID, organizerID int) error {
	tier, err := s.ticketRepo.GetTierByID(tierID)
	if err != nil {
		return err
	}

	if err := s.requireEventOwner(tier.EventID, organizerID); err != nil {
		return err
	}

	return s.ticketRepo.DeleteTier(tierID)
}

// ReserveTickets places a timed hold on tickets. The hold decrements
// available inventory immediately; when the hold window passes without
// confirmation the inventory is released exactly once.
func (s *TicketService) ReserveTickets(tierID, quantity, userID int) (*Reservation, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	hold, err := s.ticketRepo.HoldTickets(tierID, quantity, userID, s.holdDuration)
	if err != nil {
		return nil, err
	}

	timer := checkout.NewHoldTimer(func() {
		s.expireReservation(hold.ID)
	})

	s.mu.Lock()
	s.reservations[hold.ID] = &activeReservation{hold: hold, timer: timer}
	s.mu.Unlock()

	if err := timer.Start(s.holdDuration); err != nil {
		// Timer could not start; undo the hold rather than strand it.
		s.mu.Lock()
		delete(s.reservations, hold.ID)
		s.mu.Unlock()
		if releaseErr := s.ticketRepo.ReleaseHold(tierID, quantity); releaseErr != nil {
			return nil, fmt.Errorf("failed to release hold after timer error: %v (original: %w)", releaseErr, err)
		}
		return nil, err
	}

	return &Reservation{
		ID:        hold.ID,
		TierID:    hold.TierID,
		Quantity:  hold.Quantity,
		UserID:    hold.UserID,
		ExpiresAt: hold.ExpiresAt,
	}, nil
}

// ReleaseReservation cancels a reservation and returns its tickets to
// the pool. Releasing an already-expired reservation is a no-op.
func (s *TicketService) ReleaseReservation(reservationID string) error {
	entry := s.takeReservation(reservationID)
	if entry == nil {
		return models.ErrHoldExpired
	}

	// Once we own the entry the expiry callback cannot release it, so
	// release here whether or not the timer already fired.
	_ = entry.timer.Cancel()

	return s.ticketRepo.ReleaseHold(entry.hold.TierID, entry.hold.Quantity)
}

// ConfirmReservation finalizes a reservation so its tickets stay sold.
// The hold's timer is cancelled; the inventory decrement done at
// reservation time becomes permanent.
func (s *TicketService) ConfirmReservation(reservationID string) (*repositories.TicketHold, error) {
	entry := s.takeReservation(reservationID)
	if entry == nil {
		return nil, models.ErrHoldExpired
	}

	if err := entry.timer.Cancel(); err != nil {
		// The timer fired before we took the entry, but the expiry
		// callback could not find it, so the hold is still ours to
		// release.
		if releaseErr := s.ticketRepo.ReleaseHold(entry.hold.TierID, entry.hold.Quantity); releaseErr != nil {
			return nil, fmt.Errorf("failed to release expired hold: %w", releaseErr)
		}
		return nil, models.ErrHoldExpired
	}

	return entry.hold, nil
}

// GetTicketsByOrder returns the issued tickets for an order
func (s *TicketService) GetTicketsByOrder(orderID int) ([]*models.Ticket, error) {
	return s.ticketRepo.GetTicketsByOrder(orderID)
}

// expireReservation runs on the hold timer goroutine when a reservation
// times out.
func (s *TicketService) expireReservation(reservationID string) {
	entry := s.takeReservation(reservationID)
	if entry == nil {
		return
	}

	// Best effort; the expired-order sweep catches anything missed here.
	_ = s.ticketRepo.ReleaseHold(entry.hold.TierID, entry.hold.Quantity)
}

func (s *TicketService) takeReservation(reservationID string) *activeReservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.reservations[reservationID]
	if !ok {
		return nil
	}
	delete(s.reservations, reservationID)
	return entry
}

func (s *TicketService) requireEventOwner(eventID, organizerID int) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}

	if event.OrganizerID != organizerID {
		return models.ErrUnauthorized
	}

	return nil
}
