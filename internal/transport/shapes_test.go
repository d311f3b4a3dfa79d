package transport

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"store-catalog/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:           7,
		Name:         "Mug",
		CategoryID:   3,
		Price:        decimal.NewFromInt(10),
		Quantity:     4,
		Discount:     50,
		Available:    true,
		CostPrice:    decimal.NewFromInt(2),
		CreatedAt:    time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		UpdatedAt:    time.Date(2025, 3, 15, 11, 2, 7, 0, time.UTC),
		CategoryName: "Kitchen",
	}
}

func shapeToMap(t *testing.T, op Operation, p *domain.Product) map[string]interface{} {
	t.Helper()
	body, err := json.Marshal(ShapeProduct(op, p))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func TestListingShapeShowsFinalPriceOnly(t *testing.T) {
	m := shapeToMap(t, OpList, sampleProduct())

	assert.Equal(t, "Mug", m["name"])
	assert.Equal(t, 10.0, m["price"])
	assert.Equal(t, 5.0, m["discounted_price"])

	assert.NotContains(t, m, "discount")
	assert.NotContains(t, m, "cost_price")
	assert.NotContains(t, m, "id")
	assert.NotContains(t, m, "quantity")
}

func TestRetrievalShapeHidesDiscountMechanics(t *testing.T) {
	m := shapeToMap(t, OpRetrieve, sampleProduct())

	assert.Equal(t, "Mug", m["name"])
	assert.Equal(t, "Kitchen", m["category"])
	assert.Equal(t, 10.0, m["price"])
	assert.Equal(t, 5.0, m["discounted_price"])
	assert.Equal(t, 4.0, m["quantity"])
	assert.Equal(t, "2025-03-14 09:26", m["created_at"])
	assert.Equal(t, "2025-03-15 11:02", m["updated_at"])

	assert.NotContains(t, m, "discount")
	assert.NotContains(t, m, "cost_price")
	assert.NotContains(t, m, "id")
}

func TestAdminShapeExposesEveryField(t *testing.T) {
	for _, op := range []Operation{OpGet, OpPut, OpPatch} {
		m := shapeToMap(t, op, sampleProduct())

		assert.Equal(t, 7.0, m["id"])
		assert.Equal(t, "Mug", m["name"])
		assert.Equal(t, 3.0, m["category_id"])
		assert.Equal(t, "Kitchen", m["category"])
		assert.Equal(t, 50.0, m["discount"])
		assert.Equal(t, 2.0, m["cost_price"])
		assert.Equal(t, true, m["available"])

		// The admin view shows the raw discount, not the derived price.
		assert.NotContains(t, m, "discounted_price")
	}
}

func TestShapeProductPanicsOnUnknownOperation(t *testing.T) {
	require.Panics(t, func() {
		ShapeProduct(Operation(99), sampleProduct())
	})
}

func TestShapeCategory(t *testing.T) {
	shaped := ShapeCategory(&domain.Category{ID: 12, Name: "Garden", CreatedAt: time.Now()})
	assert.Equal(t, CategoryShape{ID: 12, Name: "Garden"}, shaped)
}

func TestProperty_CustomerShapesNeverLeakDiscountMechanics(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("list and retrieve shapes omit discount and cost price for any product", prop.ForAll(
		func(priceCents int64, costCents int64, discount int64, quantity int) bool {
			product := &domain.Product{
				ID:           1,
				Name:         "Widget",
				CategoryID:   1,
				Price:        decimal.New(priceCents, -2),
				Quantity:     quantity,
				Discount:     discount,
				Available:    true,
				CostPrice:    decimal.New(costCents, -2),
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
				CategoryName: "Widgets",
			}

			for _, op := range []Operation{OpList, OpRetrieve} {
				body, err := json.Marshal(ShapeProduct(op, product))
				if err != nil {
					return false
				}

				var m map[string]interface{}
				if err := json.Unmarshal(body, &m); err != nil {
					return false
				}

				if _, leaked := m["discount"]; leaked {
					t.Logf("FAIL: %s shape leaked discount", op)
					return false
				}
				if _, leaked := m["cost_price"]; leaked {
					t.Logf("FAIL: %s shape leaked cost_price", op)
					return false
				}
			}
			return true
		},
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 100),
		gen.IntRange(0, 10_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ShapingIsRepeatable(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("shaping the same product twice yields identical representations", prop.ForAll(
		func(priceCents int64, discount int64) bool {
			product := sampleProduct()
			product.Price = decimal.New(priceCents, -2)
			product.Discount = discount

			for _, op := range []Operation{OpList, OpRetrieve, OpGet, OpPut, OpPatch} {
				first := ShapeProduct(op, product)
				second := ShapeProduct(op, product)
				if !reflect.DeepEqual(first, second) {
					t.Logf("FAIL: shape for %s is not stable", op)
					return false
				}
			}
			return true
		},
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestShapeProductsPreservesOrder(t *testing.T) {
	first := sampleProduct()
	second := sampleProduct()
	second.ID = 8
	second.Name = "Plate"
	second.Discount = 0

	shaped := ShapeProducts(OpList, []*domain.Product{first, second})
	require.Len(t, shaped, 2)

	assert.Equal(t, "Mug", shaped[0].(ProductSummary).Name)
	assert.Equal(t, "Plate", shaped[1].(ProductSummary).Name)
	assert.Equal(t, 10.0, shaped[1].(ProductSummary).DiscountedPrice)
}
