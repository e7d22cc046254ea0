// src/models/cost.go
package models

import "github.com/shopspring/decimal"

// CostRecord is one parsed line of a portfolio file. It only lives long enough
// to contribute its cost to a running total.
type CostRecord struct {
	Name   string
	Shares int
	Price  float64
}

// Cost returns shares * price as an exact decimal.
func (c CostRecord) Cost() decimal.Decimal {
	return decimal.NewFromInt(int64(c.Shares)).Mul(decimal.NewFromFloat(c.Price))
}
