package services

import (
	"errors"
	"fmt"
	"log"

	"stagefront/internal/models"
	"stagefront/internal/utils"
	"stagefront/internal/validation"
)

// UserRepository defines the user repository interface for this service
type UserRepository interface {
	Create(email, passwordHash, firstName, lastName string, role models.UserRole) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateProfile(id int, req *models.ProfileUpdateRequest) (*models.User, error)
	UpdatePassword(id int, passwordHash string) error
}

// ErrInvalidCredentials is returned for a failed login without revealing
// whether the account exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles registration, login, and account management
type AuthService struct {
	userRepo     UserRepository
	emailService EmailServiceInterface
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, emailService EmailServiceInterface) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Register creates a new user account
func (s *AuthService) Register(req *models.UserCreateRequest) (*models.User, error) {
	if req.Role == "" {
		req.Role = models.RoleAttendee
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(req.Email, passwordHash, req.FirstName, req.LastName, req.Role)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return nil, errors.New("an account with this email already exists")
		}
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName()); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// Login authenticates a user by email and password
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser returns a user by ID
func (s *AuthService) GetUser(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile updates a user's profile fields
func (s *AuthService) UpdateProfile(userID int, req *models.ProfileUpdateRequest) (*models.User, error) {
	return s.userRepo.UpdateProfile(userID, req)
}

// ChangePassword verifies the current password before setting a new one
func (s *AuthService) ChangePassword(userID int, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	ok, err := utils.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return errors.New("current password is incorrect")
	}

	if err := validation.Password(newPassword); err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(userID, passwordHash)
}
