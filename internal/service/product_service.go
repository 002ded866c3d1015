package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shopapi/internal/auth"
	"shopapi/internal/cache"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// ProductService exposes catalog operations. Reads are public; writes are
// restricted to the product owner.
type ProductService interface {
	CreateProduct(ctx context.Context, caller auth.Identity, fields ProductFields) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int) (*model.Product, error)
	UpdateProduct(ctx context.Context, caller auth.Identity, id int, fields ProductFields) error
	DeleteProduct(ctx context.Context, caller auth.Identity, id int) error
}

type productService struct {
	repo   repository.ProductRepository
	policy auth.Policy
	cache  *cache.Client
	logger *zap.Logger
}

// NewProductService builds a ProductService with repository and cache. A
// nil logger disables logging.
func NewProductService(repo repository.ProductRepository, policy auth.Policy, cache *cache.Client, logger *zap.Logger) ProductService {
	return &productService{repo: repo, policy: policy, cache: cache, logger: orNop(logger)}
}

func productCacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *productService) CreateProduct(ctx context.Context, caller auth.Identity, fields ProductFields) (*model.Product, error) {
	in, err := fields.Parse()
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Tags:        in.Tags,
		OwnerID:     caller.UserID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, s.persistenceFailed("create", msgCreateProductFailed, fmt.Errorf("create product: %w", err))
	}
	s.logger.Info("product created", zap.Int("product_id", product.ID), zap.Int("owner_id", product.OwnerID))
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	var cached model.Product
	if s.cache.GetJSON(ctx, productCacheKey(id), &cached) {
		return &cached, nil
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(msgProductNotFound)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	s.cache.SetJSON(ctx, productCacheKey(id), product)
	return product, nil
}

// UpdateProduct validates the payload before looking at the target, so a
// bad body is rejected even for a missing or foreign product.
func (s *productService) UpdateProduct(ctx context.Context, caller auth.Identity, id int, fields ProductFields) error {
	in, err := fields.Parse()
	if err != nil {
		return err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(msgUpdateProductNotFound)
		}
		return s.persistenceFailed("update", msgUpdateProductFailed, fmt.Errorf("find product: %w", err))
	}
	if !s.policy.OwnsProduct(caller, product.OwnerID) {
		return apperrors.Forbidden(msgUpdateNotOwner)
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Tags = in.Tags

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(msgUpdateProductNotFound)
		}
		return s.persistenceFailed("update", msgUpdateProductFailed, fmt.Errorf("update product: %w", err))
	}
	_ = s.cache.Delete(ctx, productCacheKey(id))
	s.logger.Info("product updated", zap.Int("product_id", id), zap.Int("owner_id", caller.UserID))
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, caller auth.Identity, id int) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(msgDeleteProductNotFound)
		}
		return s.persistenceFailed("delete", msgDeleteProductFailed, fmt.Errorf("find product: %w", err))
	}
	if !s.policy.OwnsProduct(caller, product.OwnerID) {
		return apperrors.Forbidden(msgDeleteNotOwner)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(msgDeleteProductNotFound)
		}
		return s.persistenceFailed("delete", msgDeleteProductFailed, fmt.Errorf("delete product: %w", err))
	}
	_ = s.cache.Delete(ctx, productCacheKey(id))
	s.logger.Info("product deleted", zap.Int("product_id", id), zap.Int("owner_id", caller.UserID))
	return nil
}

func (s *productService) persistenceFailed(operation, message string, err error) error {
	s.logger.Error("product store failure", zap.String("operation", operation), zap.Error(err))
	return apperrors.Persistence(message, err)
}
