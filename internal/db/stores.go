package db

import (
	"fmt"

	"github.com/spf13/afero"

	"shopapi/internal/config"
	"shopapi/internal/repository"
)

// OpenStores opens the repositories selected by cfg.StorageDriver. The
// flat-file backend reads and writes through fsys.
func OpenStores(cfg *config.Config, fsys afero.Fs) (*repository.Stores, error) {
	switch cfg.StorageDriver {
	case config.StorageFile:
		return repository.OpenFileStores(fsys, cfg.UsersFile, cfg.ProductsFile)
	case config.StorageMySQL:
		gormDB, err := NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return repository.OpenGormStores(gormDB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
