package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrTierNotFound      = errors.New("ticket tier not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrUnauthorized      = errors.New("unauthorized access")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrInsufficientStock = errors.New("insufficient ticket stock")
	ErrHoldExpired       = errors.New("ticket hold has expired")
	ErrDraftNotFound     = errors.New("draft not found")
)
