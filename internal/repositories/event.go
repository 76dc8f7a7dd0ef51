package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"stagefront/internal/models"
)

// EventRepository handles event data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// EventSearchFilters represents filters for event search
type EventSearchFilters struct {
	Query      string
	CategoryID int
	Venue      string
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

const eventColumns = `id, title, description, start_date, end_date, venue, artist, category_id, organizer_id, image_url, image_key, status, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (*models.Event, error) {
	event := &models.Event{}
	var categoryID sql.NullInt64
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.Venue,
		&event.Artist,
		&categoryID,
		&event.OrganizerID,
		&event.ImageURL,
		&event.ImageKey,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if categoryID.Valid {
		event.CategoryID = int(categoryID.Int64)
	}
	return event, err
}

// Create creates a new event
func (r *EventRepository) Create(organizerID int, req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO events (title, description, start_date, end_date, venue, artist, category_id, organizer_id, image_url, image_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, 0), $8, $9, $10, $11, $12, $12)
		RETURNING ` + eventColumns

	event, err := scanEvent(r.db.QueryRow(
		query,
		req.Title,
		req.Description,
		req.StartDate,
		req.EndDate,
		req.Venue,
		req.Artist,
		req.CategoryID,
		organizerID,
		req.ImageURL,
		req.ImageKey,
		req.Status,
		now,
	))

	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(id int) (*models.Event, error) {
	event, err := scanEvent(r.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// Update updates an event
func (r *EventRepository) Update(id int, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE events
		SET title = $2, description = $3, start_date = $4, end_date = $5, venue = $6, artist = $7, category_id = NULLIF($8, 0), image_url = $9, image_key = $10, status = $11, updated_at = $12
		WHERE id = $1
		RETURNING ` + eventColumns

	event, err := scanEvent(r.db.QueryRow(
		query,
		id,
		req.Title,
		req.Description,
		req.StartDate,
		req.EndDate,
		req.Venue,
		req.Artist,
		req.CategoryID,
		req.ImageURL,
		req.ImageKey,
		req.Status,
		time.Now(),
	))

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return event, nil
}

// Delete deletes an event
func (r *EventRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	return nil
}

// GetUpcoming returns published events starting in the future
func (r *EventRepository) GetUpcoming(limit int) ([]*models.Event, error) {
	if limit <= 0 {
		limit = 12
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE status = $1 AND start_date > $2
		ORDER BY start_date ASC
		LIMIT $3`

	return r.queryEvents(query, models.StatusPublished, time.Now(), limit)
}

// GetByOrganizer returns all events owned by an organizer
func (r *EventRepository) GetByOrganizer(organizerID int) ([]*models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE organizer_id = $1
		ORDER BY created_at DESC`

	return r.queryEvents(query, organizerID)
}

// Search returns published events matching the filters, with a total count
func (r *EventRepository) Search(filters EventSearchFilters) ([]*models.Event, int, error) {
	conditions := []string{"status = 'published'"}
	args := []interface{}{}
	argIndex := 1

	if filters.Query != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR artist ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+filters.Query+"%")
		argIndex++
	}

	if filters.CategoryID > 0 {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIndex))
		args = append(args, filters.CategoryID)
		argIndex++
	}

	if filters.Venue != "" {
		conditions = append(conditions, fmt.Sprintf("venue ILIKE $%d", argIndex))
		args = append(args, "%"+filters.Venue+"%")
		argIndex++
	}

	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("start_date >= $%d", argIndex))
		args = append(args, *filters.DateFrom)
		argIndex++
	}

	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d", argIndex))
		args = append(args, *filters.DateTo)
		argIndex++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM events WHERE " + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(
		"SELECT %s FROM events WHERE %s ORDER BY start_date ASC LIMIT $%d OFFSET $%d",
		eventColumns, where, argIndex, argIndex+1)
	args = append(args, limit, filters.Offset)

	events, err := r.queryEvents(query, args...)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// GetCategories returns all categories ordered by name
func (r *EventRepository) GetCategories() ([]*models.Category, error) {
	rows, err := r.db.Query(`SELECT id, name, slug, description, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.Description, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *EventRepository) queryEvents(query string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
