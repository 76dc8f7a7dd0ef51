package models

import (
	"errors"
	"strings"
	"time"

	"stagefront/internal/validation"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	RoleAttendee  UserRole = "user"
	RoleOrganizer UserRole = "organizer"
	RoleAdmin     UserRole = "admin"
)

// User represents a user in the system
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Phone        string    `json:"phone" db:"phone"`
	Bio          string    `json:"bio" db:"bio"`
	Role         UserRole  `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserCreateRequest represents the data needed to create a new user
type UserCreateRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Role      UserRole `json:"role"`
}

// ProfileUpdateRequest represents the editable profile fields
type ProfileUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
}

// Validate validates the user data
func (u *User) Validate() error {
	if err := validation.Email("email", u.Email); err != nil {
		return err
	}

	if err := validateUserName(u.FirstName, u.LastName); err != nil {
		return err
	}

	return validateUserRole(u.Role)
}

// Validate validates user creation data
func (req *UserCreateRequest) Validate() error {
	if err := validation.Email("email", req.Email); err != nil {
		return err
	}

	if err := validation.Password(req.Password); err != nil {
		return err
	}

	if err := validateUserName(req.FirstName, req.LastName); err != nil {
		return err
	}

	return validateUserRole(req.Role)
}

// Validate validates profile update data
func (req *ProfileUpdateRequest) Validate() error {
	if err := validateUserName(req.FirstName, req.LastName); err != nil {
		return err
	}

	if err := validation.Phone("phone", req.Phone); err != nil {
		return err
	}

	return validation.OptionalString("bio", req.Bio, 1000)
}

func validateUserName(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return errors.New("first name is required")
	}

	if strings.TrimSpace(lastName) == "" {
		return errors.New("last name is required")
	}

	if len(firstName) > 100 || len(lastName) > 100 {
		return errors.New("name must be less than 100 characters")
	}

	return nil
}

func validateUserRole(role UserRole) error {
	switch role {
	case RoleAttendee, RoleOrganizer, RoleAdmin:
		return nil
	default:
		return errors.New("invalid user role")
	}
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsOrganizer returns true if the user can manage events
func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer || u.Role == RoleAdmin
}

// IsAdmin returns true if the user has administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
