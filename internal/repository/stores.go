package repository

import (
	"fmt"

	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// Stores bundles the repositories of one storage backend.
type Stores struct {
	Users    UserRepository
	Products ProductRepository
	close    func() error
}

// Close releases backend resources.
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenFileStores opens both flat-file collections on fsys.
func OpenFileStores(fsys afero.Fs, usersPath, productsPath string) (*Stores, error) {
	users, err := NewFileUserRepository(fsys, usersPath)
	if err != nil {
		return nil, err
	}
	products, err := NewFileProductRepository(fsys, productsPath)
	if err != nil {
		return nil, err
	}
	return &Stores{Users: users, Products: products}, nil
}

// OpenGormStores wraps an open GORM connection.
func OpenGormStores(db *gorm.DB) (*Stores, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	return &Stores{
		Users:    NewGormUserRepository(db),
		Products: NewGormProductRepository(db),
		close:    sqlDB.Close,
	}, nil
}
