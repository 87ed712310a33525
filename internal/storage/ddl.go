package storage

import (
	"context"
	"fmt"
	"strings"
)

// ddlTemplates holds one CREATE TABLE statement per output table, keyed by
// bare table name. The column types are restricted to the portable subset
// both backends accept (TEXT, INTEGER, NUMERIC, DATE, BOOLEAN).
var ddlTemplates = map[string]string{
	"sales": `CREATE TABLE IF NOT EXISTS %s (
	order_id TEXT NOT NULL,
	order_date DATE,
	customer_id TEXT,
	product_sku TEXT,
	quantity INTEGER,
	unit_price NUMERIC,
	sales_amount NUMERIC,
	currency TEXT,
	order_country TEXT,
	order_city TEXT,
	salesperson TEXT,
	channel TEXT
)`,
	"products": `CREATE TABLE IF NOT EXISTS %s (
	product_sku TEXT NOT NULL,
	name TEXT,
	category TEXT,
	subcategory TEXT,
	unit_cost NUMERIC,
	active BOOLEAN,
	supplier TEXT,
	package_size TEXT,
	ean TEXT
)`,
	"customers": `CREATE TABLE IF NOT EXISTS %s (
	customer_id TEXT NOT NULL,
	name TEXT,
	ascii_name TEXT,
	email TEXT,
	phone TEXT,
	country TEXT,
	city TEXT,
	segment TEXT,
	join_date DATE,
	vat TEXT
)`,
	"returns": `CREATE TABLE IF NOT EXISTS %s (
	return_id TEXT NOT NULL,
	order_id TEXT,
	return_date DATE,
	reason TEXT,
	refund NUMERIC
)`,
	"fees": `CREATE TABLE IF NOT EXISTS %s (
	channel TEXT,
	country TEXT,
	month TEXT,
	fee_amount NUMERIC
)`,
	"shipping": `CREATE TABLE IF NOT EXISTS %s (
	order_id TEXT NOT NULL,
	ship_date DATE,
	carrier TEXT,
	cost NUMERIC,
	delivery_days INTEGER
)`,
	"targets": `CREATE TABLE IF NOT EXISTS %s (
	salesperson TEXT,
	month TEXT,
	target_amount NUMERIC
)`,
	"enriched_sales": `CREATE TABLE IF NOT EXISTS %s (
	order_id TEXT NOT NULL,
	order_date DATE,
	customer_id TEXT,
	product_sku TEXT,
	quantity INTEGER,
	unit_price NUMERIC,
	sales_amount NUMERIC,
	currency TEXT,
	order_country TEXT,
	order_city TEXT,
	salesperson TEXT,
	channel TEXT,
	product_name TEXT,
	category TEXT,
	unit_cost NUMERIC,
	margin NUMERIC,
	customer_name TEXT,
	customer_country TEXT,
	segment TEXT
)`,
}

// tableOrder fixes a stable DDL/load order: facts after the dimensions
// they reference.
var tableOrder = []string{
	"products", "customers", "sales", "returns",
	"fees", "shipping", "targets", "enriched_sales",
}

// DDL returns the CREATE TABLE IF NOT EXISTS statement for the given bare
// table name, with prefix prepended to the table identifier.
func DDL(prefix, name string) (string, error) {
	tmpl, ok := ddlTemplates[name]
	if !ok {
		return "", fmt.Errorf("storage: no DDL for table %q", name)
	}
	return fmt.Sprintf(tmpl, prefix+name), nil
}

// Bootstrap creates every output table that does not yet exist.
func Bootstrap(ctx context.Context, repo Repository, prefix string) error {
	for _, name := range tableOrder {
		stmt, err := DDL(prefix, name)
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("storage: create %s%s: %w", prefix, name, err)
		}
	}
	return nil
}

// columnsOf extracts the column names from a DDL template, in declaration
// order. Used to keep the flatteners and the DDL from drifting apart.
func columnsOf(name string) []string {
	tmpl := ddlTemplates[name]
	open := strings.Index(tmpl, "(")
	body := tmpl[open+1 : strings.LastIndex(tmpl, ")")]
	var cols []string
	for _, line := range strings.Split(body, ",") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cols = append(cols, fields[0])
	}
	return cols
}
