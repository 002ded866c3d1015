package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"shopapi/internal/auth"
	"shopapi/internal/cache"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// UpdateUserInput is the payload of a user update.
type UpdateUserInput struct {
	Email                string `json:"email" validate:"required"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// UserService exposes account operations for authenticated callers.
type UserService interface {
	// AuthorizeUpdate runs the self-or-admin check of UpdateUser on its own,
	// so transports can reject a caller before reading the body.
	AuthorizeUpdate(caller auth.Identity, id int) error
	ListUsers(ctx context.Context, caller auth.Identity) ([]model.User, error)
	GetUser(ctx context.Context, caller auth.Identity, id int) (*model.User, error)
	UpdateUser(ctx context.Context, caller auth.Identity, id int, in UpdateUserInput) error
	DeleteUser(ctx context.Context, caller auth.Identity, id int) error
}

type userService struct {
	repo     repository.UserRepository
	hasher   auth.PasswordHasher
	policy   auth.Policy
	cache    *cache.Client
	validate *validator.Validate
	logger   *zap.Logger
}

// NewUserService builds a UserService with repository and cache. A nil
// logger disables logging.
func NewUserService(repo repository.UserRepository, hasher auth.PasswordHasher, policy auth.Policy, cache *cache.Client, logger *zap.Logger) UserService {
	return &userService{
		repo:     repo,
		hasher:   hasher,
		policy:   policy,
		cache:    cache,
		validate: validator.New(),
		logger:   orNop(logger),
	}
}

func userCacheKey(id int) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) ListUsers(ctx context.Context, caller auth.Identity) ([]model.User, error) {
	if !s.policy.IsAdmin(caller) {
		return nil, apperrors.Forbidden(msgUnauthorized)
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, caller auth.Identity, id int) (*model.User, error) {
	if !s.policy.CanAccessUser(caller, id) {
		return nil, apperrors.Forbidden(msgUnauthorized)
	}

	var cached model.User
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(msgUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, userCacheKey(id), user)
	return user, nil
}

func (s *userService) AuthorizeUpdate(caller auth.Identity, id int) error {
	if !s.policy.CanAccessUser(caller, id) {
		return apperrors.Forbidden(msgUpdateUnauthorized)
	}
	return nil
}

// UpdateUser replaces email and password. The email check is strict: it
// fails even when the email already belongs to the target account.
func (s *userService) UpdateUser(ctx context.Context, caller auth.Identity, id int, in UpdateUserInput) error {
	if err := s.AuthorizeUpdate(caller, id); err != nil {
		return err
	}
	if err := s.validate.Struct(in); err != nil {
		return apperrors.Validation(msgUpdateFieldsRequired)
	}

	_, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return apperrors.Validation(msgUpdateEmailExists)
	case !errors.Is(err, repository.ErrNotFound):
		return s.persistenceFailed("update", msgUpdateUserFailed, fmt.Errorf("check email: %w", err))
	}

	if in.Password != in.PasswordConfirmation {
		return apperrors.Validation(msgUpdatePasswordMismatch)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(msgUpdateUserNotFound)
		}
		return s.persistenceFailed("update", msgUpdateUserFailed, fmt.Errorf("find user: %w", err))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return s.persistenceFailed("update", msgUpdateUserFailed, err)
	}
	user.Email = in.Email
	user.PasswordHash = hash

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(msgUpdateUserNotFound)
		}
		return s.persistenceFailed("update", msgUpdateUserFailed, fmt.Errorf("update user: %w", err))
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	s.logger.Info("user updated", zap.Int("user_id", id), zap.Int("caller_id", caller.UserID))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, caller auth.Identity, id int) error {
	if !s.policy.CanAccessUser(caller, id) {
		return apperrors.Forbidden(msgUnauthorized)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(msgDeleteUserNotFound)
		}
		return s.persistenceFailed("delete", msgDeleteUserFailed, fmt.Errorf("delete user: %w", err))
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	s.logger.Info("user deleted", zap.Int("user_id", id), zap.Int("caller_id", caller.UserID))
	return nil
}

func (s *userService) persistenceFailed(operation, message string, err error) error {
	s.logger.Error("user store failure", zap.String("operation", operation), zap.Error(err))
	return apperrors.Persistence(message, err)
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
