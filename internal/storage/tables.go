package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"salesmart/internal/schema"
)

// batchSize bounds rows per CopyInto call so a huge fact table does not
// turn into one giant statement or COPY buffer.
const batchSize = 500

// WriteTables bootstraps the output schema and writes every table of t into
// repo. Tables load in dimension-then-fact order; the per-table row counts
// are returned keyed by bare table name.
func WriteTables(ctx context.Context, repo Repository, prefix string, t schema.Tables) (map[string]int64, error) {
	if err := Bootstrap(ctx, repo, prefix); err != nil {
		return nil, err
	}

	flat := map[string][][]any{
		"sales":          saleRows(t.Sales),
		"products":       productRows(t.Products),
		"customers":      customerRows(t.Customers),
		"returns":        returnRows(t.Returns),
		"fees":           feeRows(t.Fees),
		"shipping":       shippingRows(t.Shipping),
		"targets":        targetRows(t.Targets),
		"enriched_sales": enrichedRows(t.Enriched),
	}

	counts := make(map[string]int64, len(flat))
	for _, name := range tableOrder {
		n, err := writeBatches(ctx, repo, prefix+name, columnsOf(name), flat[name])
		counts[name] = n
		if err != nil {
			return counts, fmt.Errorf("storage: write %s%s: %w", prefix, name, err)
		}
	}
	return counts, nil
}

// writeBatches splits rows into batches of batchSize and invokes CopyInto
// per batch, logging progress with running totals and rows/sec.
func writeBatches(ctx context.Context, repo Repository, table string, columns []string, rows [][]any) (int64, error) {
	var total int64
	start := time.Now()
	for off := 0; off < len(rows); off += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		end := off + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		n, err := repo.CopyInto(ctx, table, columns, rows[off:end])
		total += n
		if err != nil {
			return total, err
		}
	}
	if total > 0 {
		elapsed := time.Since(start)
		rps := float64(total) / elapsed.Seconds()
		log.Printf("storage: %s inserted=%d elapsed=%s rps=%.0f",
			table, total, elapsed.Truncate(time.Millisecond), rps)
	}
	return total, nil
}

func saleRows(sales []schema.Sale) [][]any {
	rows := make([][]any, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, saleValues(s))
	}
	return rows
}

// saleValues is shared between sales and the leading columns of
// enriched_sales; the two column lists must stay aligned.
func saleValues(s schema.Sale) []any {
	return []any{
		s.OrderID, dateVal(s.OrderDate), s.CustomerID, s.ProductSKU,
		s.Quantity, s.UnitPrice.String(), s.SalesAmount.String(),
		s.Currency, s.Country, s.City, s.Salesperson, s.Channel,
	}
}

func productRows(products []schema.Product) [][]any {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, []any{
			p.SKU, p.Name, p.Category, p.Subcategory,
			p.UnitCost.String(), p.Active, strVal(p.Supplier),
			p.PackageSize, p.EAN,
		})
	}
	return rows
}

func customerRows(customers []schema.Customer) [][]any {
	rows := make([][]any, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []any{
			c.CustomerID, c.Name, c.ASCIIName, c.Email, c.Phone,
			c.Country, c.City, c.Segment, dateVal(c.JoinDate), strVal(c.VAT),
		})
	}
	return rows
}

func returnRows(returns []schema.Return) [][]any {
	rows := make([][]any, 0, len(returns))
	for _, r := range returns {
		rows = append(rows, []any{
			r.ReturnID, r.OrderID, dateVal(r.ReturnDate), r.Reason, r.Refund.String(),
		})
	}
	return rows
}

func feeRows(fees []schema.Fee) [][]any {
	rows := make([][]any, 0, len(fees))
	for _, f := range fees {
		rows = append(rows, []any{f.Channel, f.Country, f.Month, f.Amount.String()})
	}
	return rows
}

func shippingRows(shipping []schema.Shipping) [][]any {
	rows := make([][]any, 0, len(shipping))
	for _, s := range shipping {
		rows = append(rows, []any{
			s.OrderID, dateVal(s.ShipDate), s.Carrier, s.Cost.String(), s.DeliveryDays,
		})
	}
	return rows
}

func targetRows(targets []schema.Target) [][]any {
	rows := make([][]any, 0, len(targets))
	for _, t := range targets {
		rows = append(rows, []any{t.Salesperson, t.Month, t.Amount.String()})
	}
	return rows
}

func enrichedRows(enriched []schema.EnrichedSale) [][]any {
	rows := make([][]any, 0, len(enriched))
	for _, e := range enriched {
		row := saleValues(e.Sale)
		row = append(row,
			strVal(e.ProductName), strVal(e.Category),
			decVal(e.UnitCost), decVal(e.Margin),
			strVal(e.CustomerName), strVal(e.CustomerCountry), strVal(e.Segment),
		)
		rows = append(rows, row)
	}
	return rows
}

// dateVal, strVal and decVal map nullable fields to driver-level NULLs.

func dateVal(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func strVal(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func decVal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}
