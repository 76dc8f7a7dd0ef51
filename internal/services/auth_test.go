package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"stagefront/internal/models"
	"stagefront/internal/utils"
)

type mockUserRepository struct {
	users  map[int]*models.User
	nextID int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int]*models.User), nextID: 1}
}

func (m *mockUserRepository) Create(email, passwordHash, firstName, lastName string, role models.UserRole) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == strings.ToLower(email) {
			return nil, models.ErrDuplicateEntry
		}
	}

	user := &models.User{
		ID:           m.nextID,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	m.users[m.nextID] = user
	m.nextID++
	return user, nil
}

func (m *mockUserRepository) GetByID(id int) (*models.User, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == strings.ToLower(email) {
			return user, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserRepository) UpdateProfile(id int, req *models.ProfileUpdateRequest) (*models.User, error) {
	user, err := m.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone
	user.Bio = req.Bio
	return user, nil
}

func (m *mockUserRepository) UpdatePassword(id int, passwordHash string) error {
	user, err := m.GetByID(id)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	service := NewAuthService(newMockUserRepository(), nil)

	user, err := service.Register(&models.UserCreateRequest{
		Email:     "Fan@Example.com",
		Password:  "Password123",
		FirstName: "Jamie",
		LastName:  "Fan",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.Email != "fan@example.com" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}
	if user.Role != models.RoleAttendee {
		t.Errorf("Role = %q, want default attendee role", user.Role)
	}
	if user.PasswordHash == "Password123" {
		t.Error("password stored in plaintext")
	}

	logged, err := service.Login("fan@example.com", "Password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("Login() user ID = %d, want %d", logged.ID, user.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepository()
	service := NewAuthService(repo, nil)

	if _, err := service.Register(&models.UserCreateRequest{
		Email:     "fan@example.com",
		Password:  "Password123",
		FirstName: "Jamie",
		LastName:  "Fan",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := service.Login("fan@example.com", "WrongPassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}

	// Unknown accounts get the same error as wrong passwords.
	if _, err := service.Login("nobody@example.com", "Password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := NewAuthService(newMockUserRepository(), nil)

	req := &models.UserCreateRequest{
		Email:     "fan@example.com",
		Password:  "Password123",
		FirstName: "Jamie",
		LastName:  "Fan",
	}

	if _, err := service.Register(req); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := service.Register(req); err == nil {
		t.Error("second Register() with same email expected error, got nil")
	}
}

func TestChangePassword(t *testing.T) {
	repo := newMockUserRepository()
	service := NewAuthService(repo, nil)

	user, err := service.Register(&models.UserCreateRequest{
		Email:     "fan@example.com",
		Password:  "Password123",
		FirstName: "Jamie",
		LastName:  "Fan",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := service.ChangePassword(user.ID, "WrongPassword1", "NewPassword456"); err == nil {
		t.Error("ChangePassword() with wrong current password expected error, got nil")
	}

	if err := service.ChangePassword(user.ID, "Password123", "weak"); err == nil {
		t.Error("ChangePassword() with weak new password expected error, got nil")
	}

	if err := service.ChangePassword(user.ID, "Password123", "NewPassword456"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	ok, err := utils.VerifyPassword("NewPassword456", repo.users[user.ID].PasswordHash)
	if err != nil || !ok {
		t.Errorf("new password not verifiable: ok=%v err=%v", ok, err)
	}
}
