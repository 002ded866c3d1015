package repository

import (
	"context"

	"gorm.io/gorm"

	"shopapi/internal/model"
)

type gormProductRepository struct {
	db *gorm.DB
}

var _ ProductRepository = (*gormProductRepository)(nil)

// NewGormProductRepository creates a new product repository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

// Create creates a new product.
func (r *gormProductRepository) Create(ctx context.Context, product *model.Product) error {
	product.ID = 0
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID finds a product by ID.
func (r *gormProductRepository) FindByID(ctx context.Context, id int) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

// List lists all products in id order.
func (r *gormProductRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update overwrites the mutable fields of an existing product. OwnerID is
// left untouched.
func (r *gormProductRepository) Update(ctx context.Context, product *model.Product) error {
	var existing model.Product
	if err := r.db.WithContext(ctx).Select("id").Where("id = ?", product.ID).First(&existing).Error; err != nil {
		return notFound(err)
	}
	return r.db.WithContext(ctx).Model(&existing).
		Select("Name", "Description", "Price", "Tags").
		Updates(product).Error
}

// Delete removes a product.
func (r *gormProductRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
