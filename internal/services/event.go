package services

import (
	"stagefront/internal/models"
	"stagefront/internal/repositories"
)

// EventRepository defines the event repository interface for this service
type EventRepository interface {
	Create(organizerID int, req *models.EventCreateRequest) (*models.Event, error)
	GetByID(id int) (*models.Event, error)
	Update(id int, req *models.EventUpdateRequest) (*models.Event, error)
	Delete(id int) error
	GetUpcoming(limit int) ([]*models.Event, error)
	GetByOrganizer(organizerID int) ([]*models.Event, error)
	Search(filters repositories.EventSearchFilters) ([]*models.Event, int, error)
	GetCategories() ([]*models.Category, error)
}

// EventService handles event browsing and organizer event management
type EventService struct {
	eventRepo EventRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// GetUpcomingEvents returns published events starting in the future
func (s *EventService) GetUpcomingEvents(limit int) ([]*models.Event, error) {
	return s.eventRepo.GetUpcoming(limit)
}

// SearchEvents returns published events matching the filters
func (s *EventService) SearchEvents(filters repositories.EventSearchFilters) ([]*models.Event, int, error) {
	return s.eventRepo.Search(filters)
}

// GetCategories returns all event categories
func (s *EventService) GetCategories() ([]*models.Category, error) {
	return s.eventRepo.GetCategories()
}

// GetEventByID returns a single event
func (s *EventService) GetEventByID(id int) (*models.Event, error) {
	return s.eventRepo.GetByID(id)
}

// CreateEvent creates a new event for an organizer
func (s *EventService) CreateEvent(organizerID int, req *models.EventCreateRequest) (*models.Event, error) {
	return s.eventRepo.Create(organizerID, req)
}

// UpdateEvent updates an event after checking ownership
func (s *EventService) UpdateEvent(eventID, organizerID int, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := s.requireOwner(eventID, organizerID); err != nil {
		return nil, err
	}

	return s.eventRepo.Update(eventID, req)
}

// DeleteEvent deletes an event after checking ownership
func (s *EventService) DeleteEvent(eventID, organizerID int) error {
	if err := s.requireOwner(eventID, organizerID); err != nil {
		return err
	}

	return s.eventRepo.Delete(eventID)
}

// GetEventsByOrganizer returns all events owned by an organizer
func (s *EventService) GetEventsByOrganizer(organizerID int) ([]*models.Event, error) {
	return s.eventRepo.GetByOrganizer(organizerID)
}

func (s *EventService) requireOwner(eventID, organizerID int) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}

	if event.OrganizerID != organizerID {
		return models.ErrUnauthorized
	}

	return nil
}
