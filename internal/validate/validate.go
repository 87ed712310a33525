// Package validate runs named integrity checks over the integrated output
// and produces an ordered report. It is the single surface where data
// quality problems become visible: it never mutates the tables, never fixes
// what it flags, and never fails the run itself — callers decide what a
// FAIL means.
package validate

import (
	"time"

	"salesmart/internal/schema"
)

// Status of one check.
type Status string

const (
	Pass Status = "PASS"
	Fail Status = "FAIL"
)

// Check is one report line: the check name, its status, and how many rows
// violated it.
type Check struct {
	Name       string
	Status     Status
	Violations int
}

// Report is the ordered list of checks for a run.
type Report []Check

// Failed reports whether any check failed.
func (r Report) Failed() bool {
	for _, c := range r {
		if c.Status == Fail {
			return true
		}
	}
	return false
}

// Options bound the expected order-date range.
type Options struct {
	MinDate time.Time
	MaxDate time.Time
}

// Run executes all checks, in a fixed order, over the run output.
func Run(t schema.Tables, opts Options) Report {
	orderIDs := make(map[string]struct{}, len(t.Sales))
	for _, s := range t.Sales {
		if s.OrderID != "" {
			orderIDs[s.OrderID] = struct{}{}
		}
	}

	checks := []struct {
		name  string
		count func() int
	}{
		{"sales: missing order id", func() int {
			return countSales(t.Sales, func(s schema.Sale) bool { return s.OrderID == "" })
		}},
		{"sales: duplicate order id", func() int { return duplicateSaleIDs(t.Sales) }},
		{"products: duplicate sku", func() int { return duplicateProductSKUs(t.Products) }},
		{"customers: duplicate customer id", func() int { return duplicateCustomerIDs(t.Customers) }},
		{"sales: missing customer fk", func() int {
			return countSales(t.Sales, func(s schema.Sale) bool { return s.CustomerID == "" })
		}},
		{"sales: missing product fk", func() int {
			return countSales(t.Sales, func(s schema.Sale) bool { return s.ProductSKU == "" })
		}},
		{"sales: orphaned product fk", func() int {
			n := 0
			for _, e := range t.Enriched {
				if e.ProductSKU != "" && e.ProductName == nil {
					n++
				}
			}
			return n
		}},
		{"sales: orphaned customer fk", func() int {
			n := 0
			for _, e := range t.Enriched {
				if e.CustomerID != "" && e.CustomerName == nil {
					n++
				}
			}
			return n
		}},
		{"sales: non-positive quantity", func() int {
			return countSales(t.Sales, func(s schema.Sale) bool { return s.Quantity <= 0 })
		}},
		{"sales: non-positive unit price", func() int {
			return countSales(t.Sales, func(s schema.Sale) bool { return !s.UnitPrice.IsPositive() })
		}},
		{"sales: order date out of range", func() int {
			return countSales(t.Sales, func(s schema.Sale) bool {
				return s.OrderDate == nil || s.OrderDate.Before(opts.MinDate) || s.OrderDate.After(opts.MaxDate)
			})
		}},
		{"returns: unknown order id", func() int {
			n := 0
			for _, r := range t.Returns {
				if _, ok := orderIDs[r.OrderID]; !ok {
					n++
				}
			}
			return n
		}},
		{"returns: return before order date", func() int { return returnsBeforeOrder(t) }},
		{"shipping: unknown order id", func() int {
			n := 0
			for _, sh := range t.Shipping {
				if _, ok := orderIDs[sh.OrderID]; !ok {
					n++
				}
			}
			return n
		}},
		{"shipping: shipped before order date", func() int { return shippedBeforeOrder(t) }},
		{"products: non-positive unit cost", func() int {
			n := 0
			for _, p := range t.Products {
				if !p.UnitCost.IsPositive() {
					n++
				}
			}
			return n
		}},
	}

	report := make(Report, 0, len(checks))
	for _, c := range checks {
		n := c.count()
		status := Pass
		if n > 0 {
			status = Fail
		}
		report = append(report, Check{Name: c.name, Status: status, Violations: n})
	}
	return report
}

func countSales(sales []schema.Sale, bad func(schema.Sale) bool) int {
	n := 0
	for _, s := range sales {
		if bad(s) {
			n++
		}
	}
	return n
}

// duplicateSaleIDs counts rows beyond the first per order id. Dedup should
// have removed these; this is the defensive double-check.
func duplicateSaleIDs(sales []schema.Sale) int {
	seen := make(map[string]struct{}, len(sales))
	n := 0
	for _, s := range sales {
		if s.OrderID == "" {
			continue
		}
		if _, dup := seen[s.OrderID]; dup {
			n++
		}
		seen[s.OrderID] = struct{}{}
	}
	return n
}

func duplicateProductSKUs(products []schema.Product) int {
	seen := make(map[string]struct{}, len(products))
	n := 0
	for _, p := range products {
		if p.SKU == "" {
			continue
		}
		if _, dup := seen[p.SKU]; dup {
			n++
		}
		seen[p.SKU] = struct{}{}
	}
	return n
}

func duplicateCustomerIDs(customers []schema.Customer) int {
	seen := make(map[string]struct{}, len(customers))
	n := 0
	for _, c := range customers {
		if c.CustomerID == "" {
			continue
		}
		if _, dup := seen[c.CustomerID]; dup {
			n++
		}
		seen[c.CustomerID] = struct{}{}
	}
	return n
}

func returnsBeforeOrder(t schema.Tables) int {
	orderDates := orderDateIndex(t.Sales)
	n := 0
	for _, r := range t.Returns {
		od, ok := orderDates[r.OrderID]
		if !ok || r.ReturnDate == nil {
			continue
		}
		if r.ReturnDate.Before(od) {
			n++
		}
	}
	return n
}

func shippedBeforeOrder(t schema.Tables) int {
	orderDates := orderDateIndex(t.Sales)
	n := 0
	for _, sh := range t.Shipping {
		od, ok := orderDates[sh.OrderID]
		if !ok || sh.ShipDate == nil {
			continue
		}
		if sh.ShipDate.Before(od) {
			n++
		}
	}
	return n
}

func orderDateIndex(sales []schema.Sale) map[string]time.Time {
	idx := make(map[string]time.Time, len(sales))
	for _, s := range sales {
		if s.OrderID != "" && s.OrderDate != nil {
			idx[s.OrderID] = *s.OrderDate
		}
	}
	return idx
}
