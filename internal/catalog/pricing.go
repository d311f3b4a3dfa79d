package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrPriceBelowFloor is returned when a product's discounted price would fall
// below the minimum acceptable margin over its cost price.
var ErrPriceBelowFloor = errors.New("product price after applying discount cannot be lower than the cost price")

var oneHundred = decimal.NewFromInt(100)

// Policy holds the pricing-floor configuration. LossFactor is the minimum
// acceptable margin fraction: a product's discounted price must not fall
// below cost_price * LossFactor. 0 < LossFactor <= 1.
type Policy struct {
	LossFactor decimal.Decimal
}

// NewPolicy creates a pricing policy from a configured loss factor.
func NewPolicy(lossFactor decimal.Decimal) Policy {
	return Policy{LossFactor: lossFactor}
}

// DiscountedPrice computes price * (1 - discount/100) exactly.
func DiscountedPrice(price decimal.Decimal, discount int64) decimal.Decimal {
	rebate := price.Mul(decimal.NewFromInt(discount)).Div(oneHundred)
	return price.Sub(rebate)
}

// Validate checks the pricing floor for a candidate cost/price/discount
// triple. Equality with the floor passes. The comparison is exact; no
// floating point is involved.
func (p Policy) Validate(costPrice, price decimal.Decimal, discount int64) error {
	minAcceptable := costPrice.Mul(p.LossFactor)
	if DiscountedPrice(price, discount).LessThan(minAcceptable) {
		return ErrPriceBelowFloor
	}
	return nil
}
