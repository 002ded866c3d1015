package repository

import (
	"context"
	"errors"

	"shopapi/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create assigns the next id to user and stores it.
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// Update replaces the stored record with the same id.
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int) error
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	// Create assigns the next id to product and stores it.
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	// Update replaces the stored record with the same id.
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int) error
}
