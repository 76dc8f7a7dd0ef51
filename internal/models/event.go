package models

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// EventStatus represents the status of an event
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusCancelled EventStatus = "cancelled"
)

// Event represents a live event in the system
type Event struct {
	ID          int         `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	StartDate   time.Time   `json:"start_date" db:"start_date"`
	EndDate     time.Time   `json:"end_date" db:"end_date"`
	Venue       string      `json:"venue" db:"venue"`
	Artist      string      `json:"artist" db:"artist"`
	CategoryID  int         `json:"category_id" db:"category_id"`
	OrganizerID int         `json:"organizer_id" db:"organizer_id"`
	ImageURL    string      `json:"image_url" db:"image_url"`
	ImageKey    string      `json:"image_key" db:"image_key"`
	Status      EventStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`

	// Related data
	Organizer *User     `json:"organizer,omitempty"`
	Category  *Category `json:"category,omitempty"`
}

// EventCreateRequest represents the data needed to create a new event
type EventCreateRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Venue       string      `json:"venue"`
	Artist      string      `json:"artist"`
	CategoryID  int         `json:"category_id"`
	ImageURL    string      `json:"image_url"`
	ImageKey    string      `json:"image_key"`
	Status      EventStatus `json:"status"`
}

// EventUpdateRequest represents the data that can be updated for an event
type EventUpdateRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Venue       string      `json:"venue"`
	Artist      string      `json:"artist"`
	CategoryID  int         `json:"category_id"`
	ImageURL    string      `json:"image_url"`
	ImageKey    string      `json:"image_key"`
	Status      EventStatus `json:"status"`
}

// Validate validates the event data
func (e *Event) Validate() error {
	return validateEventFields(e.Title, e.Description, e.Venue, e.StartDate, e.EndDate, e.Status, e.ImageURL)
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	return validateEventFields(req.Title, req.Description, req.Venue, req.StartDate, req.EndDate, req.Status, req.ImageURL)
}

// Validate validates event update data
func (req *EventUpdateRequest) Validate() error {
	return validateEventFields(req.Title, req.Description, req.Venue, req.StartDate, req.EndDate, req.Status, req.ImageURL)
}

func validateEventFields(title, description, venue string, startDate, endDate time.Time, status EventStatus, imageURL string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("event title is required")
	}

	if len(title) > 200 {
		return errors.New("event title must be less than 200 characters")
	}

	if len(description) > 5000 {
		return errors.New("event description must be less than 5000 characters")
	}

	if strings.TrimSpace(venue) == "" {
		return errors.New("event venue is required")
	}

	if len(venue) > 255 {
		return errors.New("event venue must be less than 255 characters")
	}

	if startDate.IsZero() {
		return errors.New("event start date is required")
	}

	if endDate.IsZero() {
		return errors.New("event end date is required")
	}

	if startDate.After(endDate) {
		return errors.New("event start date must be before end date")
	}

	switch status {
	case StatusDraft, StatusPublished, StatusCancelled:
	default:
		return errors.New("invalid event status")
	}

	if imageURL != "" {
		u, err := url.Parse(imageURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return errors.New("event image URL is invalid")
		}
	}

	return nil
}

// IsPublished returns true if the event is visible in the storefront
func (e *Event) IsPublished() bool {
	return e.Status == StatusPublished
}

// IsUpcoming returns true if the event starts in the future
func (e *Event) IsUpcoming() bool {
	return e.StartDate.After(time.Now())
}

// HasEnded returns true if the event has already finished
func (e *Event) HasEnded() bool {
	return e.EndDate.Before(time.Now())
}
