package service

import (
	"errors"
	"strings"
	"time"

	"github.com/neighborly/forum/internal/apperr"
	"github.com/neighborly/forum/internal/models"
	"github.com/neighborly/forum/internal/notifier"
	"github.com/neighborly/forum/internal/repository"
	"github.com/neighborly/forum/internal/utils"
	"github.com/neighborly/forum/pkg/logger"
	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	users     *repository.UserRepository
	broker    notifier.Broker
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(users *repository.UserRepository, broker notifier.Broker, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		broker:    broker,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

type RegisterInput struct {
	Username        string
	Password        string
	FullName        string
	BuildingNumber  string
	ApartmentNumber string
}

// Register creates a pending account. New users start unapproved and
// must wait for an admin before they can log in.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	start := time.Now()

	if err := validateRegisterInput(input); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("username", input.Username),
			zap.Error(err),
		)
		return nil, err
	}

	existing, err := s.users.GetByUsername(input.Username)
	if err != nil {
		logger.Log.Error("Failed to check username existence",
			zap.String("username", input.Username),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("username already exists")
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Username:        input.Username,
		PasswordHash:    passwordHash,
		FullName:        input.FullName,
		BuildingNumber:  input.BuildingNumber,
		ApartmentNumber: input.ApartmentNumber,
		IsAdmin:         false,
		IsApproved:      false,
		IsBanned:        false,
	}

	if err := s.users.Create(user); err != nil {
		logger.Log.Error("Failed to create user in database",
			zap.String("username", input.Username),
			zap.Error(err),
		)
		return nil, err
	}

	s.publish(notifier.Event{
		Type: notifier.EventUserRegistered,
		Data: map[string]interface{}{
			"id":               user.ID,
			"username":         user.Username,
			"full_name":        user.FullName,
			"building_number":  user.BuildingNumber,
			"apartment_number": user.ApartmentNumber,
			"created_at":       user.CreatedAt.Format(time.RFC3339),
		},
	})

	logger.Log.Info("User registered, pending approval",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, nil
}

// Login verifies credentials and account state, then issues a token
// carrying {user_id, is_admin}. A banned account fails here regardless
// of any other flag; an unapproved non-admin fails until approved.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to get user by username",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("username", username),
		)
		return nil, "", ErrInvalidCredentials
	}

	if user.IsBanned {
		return nil, "", apperr.Forbidden("your account has been banned")
	}
	if !user.IsApproved && !user.IsAdmin {
		return nil, "", apperr.Forbidden("your account is pending approval by an admin")
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Bool("is_admin", user.IsAdmin),
	)

	return user, token, nil
}

// Profile re-reads the account from the store.
func (s *AuthService) Profile(userID uint) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (s *AuthService) publish(event notifier.Event) {
	if err := s.broker.Publish(event); err != nil {
		logger.Log.Warn("Failed to publish event",
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
	}
}

func validateRegisterInput(input RegisterInput) error {
	fields := []struct {
		name  string
		value string
	}{
		{"username", input.Username},
		{"password", input.Password},
		{"full_name", input.FullName},
		{"building_number", input.BuildingNumber},
		{"apartment_number", input.ApartmentNumber},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return apperr.Invalid("missing required field: " + f.name)
		}
	}

	if len(input.Username) > 50 {
		return apperr.Invalid("username must be at most 50 characters")
	}
	if len(input.Password) < 8 {
		return apperr.Invalid("password must be at least 8 characters")
	}
	return nil
}
