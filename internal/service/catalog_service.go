package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"store-catalog/internal/catalog"
	"store-catalog/internal/domain"
	"store-catalog/internal/repository"

	"github.com/shopspring/decimal"
)

// CreateProductInput carries a validated candidate product.
type CreateProductInput struct {
	Name       string
	CategoryID int64
	Price      decimal.Decimal
	Quantity   int
	Discount   int64
	Available  bool
	CostPrice  decimal.Decimal
}

// UpdateProductInput carries the fields of a full or partial update. Nil
// fields keep their stored values; the pricing floor is re-checked against
// the merged result.
type UpdateProductInput struct {
	Name       *string
	CategoryID *int64
	Price      *decimal.Decimal
	Quantity   *int
	Discount   *int64
	Available  *bool
	CostPrice  *decimal.Decimal
}

// CatalogService implements the product/category CRUD and search semantics.
// Callers are assumed to be authorized already; access control lives in the
// transport middleware.
type CatalogService interface {
	SearchProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	pricing      catalog.Policy
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	pricing catalog.Policy,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		pricing:      pricing,
	}
}

// SearchProducts returns the products matching the filter criteria
func (s *catalogService) SearchProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	products, err := s.productRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product by ID
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// CreateProduct validates the candidate against the referenced category, the
// name-uniqueness invariant and the pricing floor, then persists it.
func (s *catalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	category, err := s.categoryRepo.FindByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, repository.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to check category: %w", err)
	}

	if _, err := s.productRepo.FindByName(ctx, in.Name); err == nil {
		return nil, repository.ErrProductAlreadyExists
	} else if !errors.Is(err, repository.ErrProductNotFound) {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	}

	if err := s.pricing.Validate(in.CostPrice, in.Price, in.Discount); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		Name:         in.Name,
		CategoryID:   category.ID,
		Price:        in.Price,
		Quantity:     in.Quantity,
		Discount:     in.Discount,
		Available:    in.Available,
		CostPrice:    in.CostPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
		CategoryName: category.Name,
	}

	// The store enforces name uniqueness atomically; the pre-check above only
	// produces a friendlier error for the common case.
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct merges the supplied fields into the stored product,
// re-validates the pricing floor against the resulting triple and persists
// the mutation.
func (s *catalogService) UpdateProduct(ctx context.Context, id int64, in UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != product.Name {
		existing, err := s.productRepo.FindByName(ctx, *in.Name)
		if err == nil && existing.ID != id {
			return nil, repository.ErrProductAlreadyExists
		} else if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
			return nil, fmt.Errorf("failed to check product name: %w", err)
		}
		product.Name = *in.Name
	}

	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		category, err := s.categoryRepo.FindByID(ctx, *in.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, repository.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		product.CategoryID = category.ID
		product.CategoryName = category.Name
	}

	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.Discount != nil {
		product.Discount = *in.Discount
	}
	if in.Available != nil {
		product.Available = *in.Available
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}

	// Fields omitted from a partial update contribute their stored values to
	// the pricing-floor check.
	if err := s.pricing.Validate(product.CostPrice, product.Price, product.Discount); err != nil {
		return nil, err
	}

	product.UpdatedAt = time.Now()
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog
func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

// ListCategories returns all categories
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategory retrieves a single category by ID
func (s *catalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

// CreateCategory persists a new category, rejecting duplicate names
func (s *catalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if _, err := s.categoryRepo.FindByName(ctx, name); err == nil {
		return nil, repository.ErrCategoryAlreadyExists
	} else if !errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	category := &domain.Category{
		Name:      name,
		CreatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category by ID
func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}
