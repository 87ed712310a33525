// Package integrate joins the deduplicated fact records against the product
// and customer dimensions into the denormalized fact table. Joins are
// left-outer: a sale referencing a missing SKU or customer keeps flowing
// with nil enrichment fields, which is exactly what the validator's orphan
// checks look for later. Integration never drops rows.
package integrate

import (
	"github.com/shopspring/decimal"

	"salesmart/internal/schema"
)

// Enrich left-joins sales against products (on SKU) and customers (on
// customer ID). Margin is derived only when the product side matched:
// SalesAmount − Quantity × UnitCost.
func Enrich(sales []schema.Sale, products []schema.Product, customers []schema.Customer) []schema.EnrichedSale {
	prodBySKU := make(map[string]schema.Product, len(products))
	for _, p := range products {
		prodBySKU[p.SKU] = p
	}
	custByID := make(map[string]schema.Customer, len(customers))
	for _, c := range customers {
		custByID[c.CustomerID] = c
	}

	out := make([]schema.EnrichedSale, 0, len(sales))
	for _, s := range sales {
		e := schema.EnrichedSale{Sale: s}
		if p, ok := prodBySKU[s.ProductSKU]; ok && s.ProductSKU != "" {
			e.ProductName = &p.Name
			e.Category = &p.Category
			cost := p.UnitCost
			e.UnitCost = &cost
			margin := s.SalesAmount.Sub(cost.Mul(decimal.NewFromInt(int64(s.Quantity))))
			e.Margin = &margin
		}
		if c, ok := custByID[s.CustomerID]; ok && s.CustomerID != "" {
			e.CustomerName = &c.Name
			e.CustomerCountry = &c.Country
			e.Segment = &c.Segment
		}
		out = append(out, e)
	}
	return out
}
