package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Category represents an event category for storefront browsing
type Category struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Slug validation regex: lowercase letters, numbers, and hyphens only
var slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// Validate validates the category data
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category name is required")
	}

	if len(c.Name) > 100 {
		return errors.New("category name must be less than 100 characters")
	}

	if c.Slug == "" {
		return errors.New("category slug is required")
	}

	if !slugRegex.MatchString(c.Slug) {
		return errors.New("category slug can only contain lowercase letters, numbers, and hyphens")
	}

	if len(c.Description) > 500 {
		return errors.New("category description must be less than 500 characters")
	}

	return nil
}

// GenerateSlug generates a URL-friendly slug from the category name
func GenerateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
