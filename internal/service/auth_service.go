package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"shopapi/internal/auth"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// RegisterInput is the payload of a sign-up request.
type RegisterInput struct {
	Email                string `json:"email" validate:"required"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, in LoginInput) (string, error)
}

type authService struct {
	users    repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   auth.TokenService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthService creates a new authentication service. A nil logger
// disables logging.
func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, tokens auth.TokenService, logger *zap.Logger) AuthService {
	return &authService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		validate: validator.New(),
		logger:   orNop(logger),
	}
}

// Register creates a new account with role "user" and a hashed password.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.Validation(msgAllFieldsRequired)
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperrors.Validation(msgEmailExists)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, s.persistenceFailed(msgRegisterFailed, fmt.Errorf("check email: %w", err))
	}

	if in.Password != in.PasswordConfirmation {
		return nil, apperrors.Validation(msgPasswordConfirmation)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, s.persistenceFailed(msgRegisterFailed, err)
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, s.persistenceFailed(msgRegisterFailed, fmt.Errorf("create user: %w", err))
	}
	s.logger.Info("user registered", zap.Int("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and returns a signed access token.
func (s *authService) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := s.validate.Struct(in); err != nil {
		return "", apperrors.Validation(msgAllFieldsRequired)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.Unauthenticated(msgInvalidCredentials)
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		return "", apperrors.Unauthenticated(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	s.logger.Info("user logged in", zap.Int("user_id", user.ID))
	return token, nil
}

func (s *authService) persistenceFailed(message string, err error) error {
	s.logger.Error("user store failure", zap.String("operation", "register"), zap.Error(err))
	return apperrors.Persistence(message, err)
}
