package service

import (
	"context"
	"errors"
	"fmt"

	"shopapi/internal/auth"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// EnsureAdmin creates an account with the admin role, or promotes and
// re-keys the existing account with that email. It reports whether a new
// account was created.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, hasher auth.PasswordHasher, email, password, role string) (*model.User, bool, error) {
	if email == "" || password == "" || role == "" {
		return nil, false, errors.New("email, password and role are required")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, false, err
	}

	user, err := users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = &model.User{Email: email, PasswordHash: hash, Role: role}
		if err := users.Create(ctx, user); err != nil {
			return nil, false, fmt.Errorf("create admin: %w", err)
		}
		return user, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("find user: %w", err)
	}

	user.PasswordHash = hash
	user.Role = role
	if err := users.Update(ctx, user); err != nil {
		return nil, false, fmt.Errorf("promote user: %w", err)
	}
	return user, false, nil
}
