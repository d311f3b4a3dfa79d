package transport

import (
	"fmt"
	"time"

	"store-catalog/internal/catalog"
	"store-catalog/internal/domain"
)

// TimestampLayout is the output format for entity timestamps. Timestamps are
// never accepted on input.
const TimestampLayout = "2006-01-02 15:04"

// Operation names the API action a response shape is selected for.
type Operation int

const (
	OpList Operation = iota
	OpRetrieve
	OpGet
	OpPut
	OpPatch
)

func (op Operation) String() string {
	switch op {
	case OpList:
		return "list"
	case OpRetrieve:
		return "retrieve"
	case OpGet:
		return "get"
	case OpPut:
		return "put"
	case OpPatch:
		return "patch"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// ProductSummary is the customer-facing listing shape. The raw discount and
// cost price are suppressed; only the final discounted price is exposed.
type ProductSummary struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discounted_price"`
}

// ProductDetail is the customer-facing retrieval shape. Like the summary it
// shows the discounted price without the discount mechanics.
type ProductDetail struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discounted_price"`
	Quantity        int     `json:"quantity"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ProductAdmin is the administrative shape with every field, including the
// discount mechanics. ID and timestamps are system-assigned and read-only.
type ProductAdmin struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	CategoryID int64   `json:"category_id"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Discount   int64   `json:"discount"`
	Available  bool    `json:"available"`
	CostPrice  float64 `json:"cost_price"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// CategoryShape is the single category representation used by every
// operation.
type CategoryShape struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func formatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ShapeProduct selects the response representation for an operation. An
// operation without a registered shape is a programming fault and panics.
func ShapeProduct(op Operation, p *domain.Product) interface{} {
	switch op {
	case OpList:
		return ProductSummary{
			Name:            p.Name,
			Price:           p.Price.InexactFloat64(),
			DiscountedPrice: catalog.DiscountedPrice(p.Price, p.Discount).InexactFloat64(),
		}
	case OpRetrieve:
		return ProductDetail{
			Name:            p.Name,
			Category:        p.CategoryName,
			Price:           p.Price.InexactFloat64(),
			DiscountedPrice: catalog.DiscountedPrice(p.Price, p.Discount).InexactFloat64(),
			Quantity:        p.Quantity,
			CreatedAt:       formatTimestamp(p.CreatedAt),
			UpdatedAt:       formatTimestamp(p.UpdatedAt),
		}
	case OpGet, OpPut, OpPatch:
		return ProductAdmin{
			ID:         p.ID,
			Name:       p.Name,
			CategoryID: p.CategoryID,
			Category:   p.CategoryName,
			Price:      p.Price.InexactFloat64(),
			Quantity:   p.Quantity,
			Discount:   p.Discount,
			Available:  p.Available,
			CostPrice:  p.CostPrice.InexactFloat64(),
			CreatedAt:  formatTimestamp(p.CreatedAt),
			UpdatedAt:  formatTimestamp(p.UpdatedAt),
		}
	default:
		panic(fmt.Sprintf("no product shape registered for operation %s", op))
	}
}

// ShapeProducts applies the operation's shape to every product in a listing.
func ShapeProducts(op Operation, products []*domain.Product) []interface{} {
	shaped := make([]interface{}, len(products))
	for i, p := range products {
		shaped[i] = ShapeProduct(op, p)
	}
	return shaped
}

// ShapeCategory returns the category representation.
func ShapeCategory(c *domain.Category) CategoryShape {
	return CategoryShape{ID: c.ID, Name: c.Name}
}
