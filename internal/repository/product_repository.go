package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"store-catalog/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product with this name already exists")
)

// ProductFilter holds the search criteria for the catalog listing. All
// supplied criteria are combined with AND; zero values impose no constraint.
type ProductFilter struct {
	CategoryNames []string         // OR-matched category names
	MinPrice      *decimal.Decimal // inclusive lower bound
	MaxPrice      *decimal.Decimal // inclusive upper bound
	Name          string           // case-insensitive substring
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	Search(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product and fills in its assigned ID
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, category_id, price, quantity, discount, available, cost_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.CategoryID,
		product.Price,
		product.Quantity,
		product.Discount,
		product.Available,
		product.CostPrice,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		if pgErrCode(err, pgUniqueViolation) {
			return ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update persists all mutable fields of an existing product
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, category_id = $3, price = $4, quantity = $5,
		    discount = $6, available = $7, cost_price = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.CategoryID,
		product.Price,
		product.Quantity,
		product.Discount,
		product.Available,
		product.CostPrice,
		product.UpdatedAt,
	)

	if err != nil {
		if pgErrCode(err, pgUniqueViolation) {
			return ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the catalog
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

const productColumns = `
	p.id, p.name, p.category_id, p.price, p.quantity, p.discount,
	p.available, p.cost_price, p.created_at, p.updated_at, c.name AS category_name
`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.CategoryID,
		&product.Price,
		&product.Quantity,
		&product.Discount,
		&product.Available,
		&product.CostPrice,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID retrieves a product by ID with its category name
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// FindByName retrieves a product by its unique name
func (r *productRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.name = $1
	`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}

	return product, nil
}

// Search translates the filter criteria into a single parameterized query.
// Results follow the store's natural order; no explicit sort is applied.
func (r *productRepository) Search(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if len(filter.CategoryNames) > 0 {
		placeholders := make([]string, len(filter.CategoryNames))
		for i, name := range filter.CategoryNames {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, name)
			argIndex++
		}
		conditions = append(conditions, fmt.Sprintf("c.name IN (%s)", strings.Join(placeholders, ", ")))
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	if strings.TrimSpace(filter.Name) != "" {
		conditions = append(conditions, fmt.Sprintf("p.name ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Name+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		%s
	`, productColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
