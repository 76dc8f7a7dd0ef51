package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"stagefront/internal/models"
)

// DraftRepository persists in-progress form drafts keyed by user and
// draft key. Saves are last-write-wins.
type DraftRepository struct {
	db *sql.DB
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *sql.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// Save upserts a draft for the given user and key
func (r *DraftRepository) Save(userID int, draftKey, content string) error {
	query := `
		INSERT INTO event_drafts (user_id, draft_key, content, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, draft_key)
		DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(query, userID, draftKey, content, time.Now()); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// Get retrieves a draft's content and last save time
func (r *DraftRepository) Get(userID int, draftKey string) (string, time.Time, error) {
	var content string
	var updatedAt time.Time

	err := r.db.QueryRow(`SELECT content, updated_at FROM event_drafts WHERE user_id = $1 AND draft_key = $2`,
		userID, draftKey).Scan(&content, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", time.Time{}, models.ErrDraftNotFound
		}
		return "", time.Time{}, fmt.Errorf("failed to get draft: %w", err)
	}

	return content, updatedAt, nil
}

// Delete removes a draft, typically after the form it backs is submitted
func (r *DraftRepository) Delete(userID int, draftKey string) error {
	if _, err := r.db.Exec(`DELETE FROM event_drafts WHERE user_id = $1 AND draft_key = $2`, userID, draftKey); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
