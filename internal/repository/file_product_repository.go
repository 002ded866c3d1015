package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/afero"

	"shopapi/internal/model"
)

type fileProductRepository struct {
	products *fileCollection[model.Product]
}

var _ ProductRepository = (*fileProductRepository)(nil)

// NewFileProductRepository opens the products JSON file. A missing file
// starts an empty collection and is created on the first write.
func NewFileProductRepository(fsys afero.Fs, path string) (ProductRepository, error) {
	products, err := openCollection(fsys, path,
		func(p *model.Product) int { return p.ID },
		func(p *model.Product, id int) { p.ID = id },
	)
	if err != nil {
		return nil, fmt.Errorf("open products store: %w", err)
	}
	return &fileProductRepository{products: products}, nil
}

func (r *fileProductRepository) Create(_ context.Context, product *model.Product) error {
	product.Tags = slices.Clone(product.Tags)
	return r.products.insert(product)
}

func (r *fileProductRepository) FindByID(_ context.Context, id int) (*model.Product, error) {
	product, ok := r.products.findByID(id)
	if !ok {
		return nil, ErrNotFound
	}
	product.Tags = slices.Clone(product.Tags)
	return &product, nil
}

func (r *fileProductRepository) List(_ context.Context) ([]model.Product, error) {
	products := r.products.all()
	for i := range products {
		products[i].Tags = slices.Clone(products[i].Tags)
	}
	return products, nil
}

func (r *fileProductRepository) Update(_ context.Context, product *model.Product) error {
	updated := *product
	updated.Tags = slices.Clone(product.Tags)
	return r.products.replace(updated)
}

func (r *fileProductRepository) Delete(_ context.Context, id int) error {
	return r.products.remove(id)
}
