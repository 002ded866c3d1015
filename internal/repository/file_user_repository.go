package repository

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"shopapi/internal/model"
)

type fileUserRepository struct {
	users *fileCollection[model.User]
}

var _ UserRepository = (*fileUserRepository)(nil)

// NewFileUserRepository opens the users JSON file. A missing file starts an
// empty collection and is created on the first write.
func NewFileUserRepository(fsys afero.Fs, path string) (UserRepository, error) {
	users, err := openCollection(fsys, path,
		func(u *model.User) int { return u.ID },
		func(u *model.User, id int) { u.ID = id },
	)
	if err != nil {
		return nil, fmt.Errorf("open users store: %w", err)
	}
	return &fileUserRepository{users: users}, nil
}

func (r *fileUserRepository) Create(_ context.Context, user *model.User) error {
	return r.users.insert(user)
}

func (r *fileUserRepository) FindByID(_ context.Context, id int) (*model.User, error) {
	user, ok := r.users.findByID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *fileUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := r.users.find(func(u *model.User) bool { return u.Email == email })
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *fileUserRepository) List(_ context.Context) ([]model.User, error) {
	return r.users.all(), nil
}

func (r *fileUserRepository) Update(_ context.Context, user *model.User) error {
	return r.users.replace(*user)
}

func (r *fileUserRepository) Delete(_ context.Context, id int) error {
	return r.users.remove(id)
}
