package pipeline

import (
	"salesmart/internal/dedup"
	"salesmart/internal/parse"
	"salesmart/internal/transform"
	"salesmart/pkg/records"
)

// Table ties one canonical table to its field mapping and dedup policy.
// The mapping's Source names are the column names after header cleaning;
// per-file deviations are bridged by each source's header_map.
type Table struct {
	Source transform.Source
	Policy dedup.Policy
}

// tableNames fixes the processing order of canonical tables.
var tableNames = []string{
	"sales", "products", "customers", "returns", "fees", "shipping", "targets",
}

// Catalog returns the canonical table definitions.
//
// Dedup policy: every table keeps the first occurrence of a natural key
// except customers, where profile updates arrive as new rows and the most
// recent join_date wins.
func Catalog() map[string]Table {
	return map[string]Table{
		"sales": {
			Policy: dedup.KeepFirst{},
			Source: transform.Source{
				Name: "sales",
				Key:  []string{"order_id"},
				Fields: []transform.Field{
					{Source: "order_id", Name: "order_id", Kind: transform.KindID, Required: true},
					{Source: "order_date", Name: "order_date", Kind: transform.KindDate},
					{Source: "customer_id", Name: "customer_id", Kind: transform.KindID},
					{Source: "sku", Name: "product_sku", Kind: transform.KindID},
					{Source: "quantity", Name: "quantity", Kind: transform.KindInt},
					{Source: "unit_price", Name: "unit_price", Kind: transform.KindNumber},
					{Source: "currency", Name: "currency", Kind: transform.KindID},
					{Source: "country", Name: "order_country", Kind: transform.KindCountry},
					{Source: "city", Name: "order_city", Kind: transform.KindText},
					{Source: "salesperson", Name: "salesperson", Kind: transform.KindText},
					{Source: "channel", Name: "channel", Kind: transform.KindText},
				},
			},
		},
		"products": {
			Policy: dedup.KeepFirst{},
			Source: transform.Source{
				Name: "products",
				Key:  []string{"product_sku"},
				Fields: []transform.Field{
					{Source: "sku", Name: "product_sku", Kind: transform.KindID, Required: true},
					{Source: "name", Name: "name", Kind: transform.KindText},
					{Source: "category", Name: "category", Kind: transform.KindText},
					{Source: "subcategory", Name: "subcategory", Kind: transform.KindText},
					{Source: "unit_cost", Name: "unit_cost", Kind: transform.KindNumber},
					{Source: "active", Name: "active", Kind: transform.KindLogical},
					{Source: "supplier", Name: "supplier", Kind: transform.KindText},
					{Source: "package_size", Name: "package_size", Kind: transform.KindPackSize},
					{Source: "ean", Name: "ean", Kind: transform.KindEAN},
				},
			},
		},
		"customers": {
			Policy: dedup.LatestBy{Field: "join_date"},
			Source: transform.Source{
				Name: "customers",
				Key:  []string{"customer_id"},
				Fields: []transform.Field{
					{Source: "customer_id", Name: "customer_id", Kind: transform.KindID, Required: true},
					{Source: "name", Name: "name", Kind: transform.KindText},
					{Source: "email", Name: "email", Kind: transform.KindEmail},
					{Source: "phone", Name: "phone", Kind: transform.KindPhone},
					{Source: "country", Name: "country", Kind: transform.KindCountry},
					{Source: "city", Name: "city", Kind: transform.KindText},
					{Source: "segment", Name: "segment", Kind: transform.KindText},
					{Source: "join_date", Name: "join_date", Kind: transform.KindDate},
					{Source: "vat", Name: "vat", Kind: transform.KindID},
				},
				Derive: deriveASCIIName,
			},
		},
		"returns": {
			Policy: dedup.KeepFirst{},
			Source: transform.Source{
				Name: "returns",
				Key:  []string{"return_id"},
				Fields: []transform.Field{
					{Source: "return_id", Name: "return_id", Kind: transform.KindID, Required: true},
					{Source: "order_id", Name: "order_id", Kind: transform.KindID},
					{Source: "return_date", Name: "return_date", Kind: transform.KindDate},
					{Source: "reason", Name: "reason", Kind: transform.KindText},
					{Source: "refund", Name: "refund", Kind: transform.KindNumber},
				},
			},
		},
		"fees": {
			Policy: dedup.KeepFirst{},
			Source: transform.Source{
				Name: "fees",
				Key:  []string{"channel", "country", "month"},
				Fields: []transform.Field{
					{Source: "channel", Name: "channel", Kind: transform.KindText, Required: true},
					{Source: "country", Name: "country", Kind: transform.KindCountry, Required: true},
					{Source: "month", Name: "month", Kind: transform.KindMonth, Required: true},
					{Source: "fee_amount", Name: "fee_amount", Kind: transform.KindNumber},
				},
			},
		},
		"shipping": {
			Policy: dedup.KeepFirst{},
			Source: transform.Source{
				Name: "shipping",
				Key:  []string{"order_id"},
				Fields: []transform.Field{
					{Source: "order_id", Name: "order_id", Kind: transform.KindID, Required: true},
					{Source: "ship_date", Name: "ship_date", Kind: transform.KindDate},
					{Source: "carrier", Name: "carrier", Kind: transform.KindText},
					{Source: "cost", Name: "cost", Kind: transform.KindNumber},
					{Source: "delivery_days", Name: "delivery_days", Kind: transform.KindInt},
				},
			},
		},
		"targets": {
			Policy: dedup.KeepFirst{},
			Source: transform.Source{
				Name: "targets",
				Key:  []string{"salesperson", "month"},
				Fields: []transform.Field{
					{Source: "salesperson", Name: "salesperson", Kind: transform.KindText, Required: true},
					{Source: "month", Name: "month", Kind: transform.KindMonth, Required: true},
					{Source: "target_amount", Name: "target_amount", Kind: transform.KindNumber},
				},
			},
		},
	}
}

// deriveASCIIName adds the deaccented customer name alongside the original.
func deriveASCIIName(rec records.Record) {
	if name, ok := rec["name"].(string); ok {
		rec["ascii_name"] = parse.StripDiacritics(name)
	}
}
