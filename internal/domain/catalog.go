package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products. Products reference a category but the category
// does not own them.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Product is a catalog entry. Price and CostPrice are stored as DECIMAL(10,2)
// and carried as exact decimals; the discounted price is derived at read time
// and never persisted.
type Product struct {
	ID         int64           `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	CategoryID int64           `json:"category_id" db:"category_id"`
	Price      decimal.Decimal `json:"price" db:"price"`
	Quantity   int             `json:"quantity" db:"quantity"`
	Discount   int64           `json:"discount" db:"discount"`
	Available  bool            `json:"available" db:"available"`
	CostPrice  decimal.Decimal `json:"cost_price" db:"cost_price"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`

	// CategoryName is populated by joined reads; it is not a column of the
	// products table.
	CategoryName string `json:"-" db:"-"`
}
