package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sodo-hospital/admin-api/internal/models"
	"github.com/sodo-hospital/admin-api/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("a user with this email or token already exists")
)

// UserService handles user lookups and registration
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents input for registering a user
type CreateUserInput struct {
	Name            string
	Email           string
	AvatarURL       string
	TokenIdentifier string
}

// CreateUser registers a staff member. Uniqueness of email and token
// identifier is enforced by lookup-before-insert, the same way the dashboard
// always has; there is no store-level constraint behind it.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.FindByToken(input.TokenIdentifier); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check token identifier: %w", err)
	}

	user := &models.User{
		Name:            input.Name,
		Email:           input.Email,
		AvatarURL:       input.AvatarURL,
		TokenIdentifier: input.TokenIdentifier,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Identify resolves a token identifier to the user it belongs to
func (s *UserService) Identify(tokenIdentifier string) (*models.User, error) {
	user, err := s.userRepo.FindByToken(tokenIdentifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns every staff member, for assignee pickers
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
