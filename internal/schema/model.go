// Package schema defines the canonical star-schema entities produced by a
// pipeline run, plus the binders that lift deduplicated records into typed
// form. Money fields are decimals; dates are date-only UTC; nullable
// attributes are pointers.
package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the fact table row. SalesAmount is always derived as
// Quantity × UnitPrice, never trusted from the source.
type Sale struct {
	OrderID     string          `db:"order_id"`
	OrderDate   *time.Time      `db:"order_date"`
	CustomerID  string          `db:"customer_id"`
	ProductSKU  string          `db:"product_sku"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	SalesAmount decimal.Decimal `db:"sales_amount"`
	Currency    string          `db:"currency"`
	Country     string          `db:"order_country"`
	City        string          `db:"order_city"`
	Salesperson string          `db:"salesperson"`
	Channel     string          `db:"channel"`
}

// Product is the product dimension row.
type Product struct {
	SKU         string          `db:"product_sku"`
	Name        string          `db:"name"`
	Category    string          `db:"category"`
	Subcategory string          `db:"subcategory"`
	UnitCost    decimal.Decimal `db:"unit_cost"`
	Active      bool            `db:"active"`
	Supplier    *string         `db:"supplier"`
	PackageSize string          `db:"package_size"`
	EAN         string          `db:"ean"`
}

// Customer is the customer dimension row. ASCIIName and Email carry the
// deaccented forms; Phone is digits plus an optional leading "+".
type Customer struct {
	CustomerID string     `db:"customer_id"`
	Name       string     `db:"name"`
	ASCIIName  string     `db:"ascii_name"`
	Email      string     `db:"email"`
	Phone      string     `db:"phone"`
	Country    string     `db:"country"`
	City       string     `db:"city"`
	Segment    string     `db:"segment"`
	JoinDate   *time.Time `db:"join_date"`
	VAT        *string    `db:"vat"`
}

// Return is a product return referencing a Sale.
type Return struct {
	ReturnID   string          `db:"return_id"`
	OrderID    string          `db:"order_id"`
	ReturnDate *time.Time      `db:"return_date"`
	Reason     string          `db:"reason"`
	Refund     decimal.Decimal `db:"refund"`
}

// Fee is a per-channel, per-country monthly fee.
type Fee struct {
	Channel string          `db:"channel"`
	Country string          `db:"country"`
	Month   string          `db:"month"`
	Amount  decimal.Decimal `db:"fee_amount"`
}

// Shipping is the shipment record for an order.
type Shipping struct {
	OrderID      string          `db:"order_id"`
	ShipDate     *time.Time      `db:"ship_date"`
	Carrier      string          `db:"carrier"`
	Cost         decimal.Decimal `db:"cost"`
	DeliveryDays int             `db:"delivery_days"`
}

// Target is a per-salesperson monthly sales target.
type Target struct {
	Salesperson string          `db:"salesperson"`
	Month       string          `db:"month"`
	Amount      decimal.Decimal `db:"target_amount"`
}

// EnrichedSale is the denormalized fact produced by the integrator. The
// enrichment pointers stay nil when the referenced dimension row does not
// exist; the validator's orphan checks key off exactly that.
type EnrichedSale struct {
	Sale
	ProductName     *string          `db:"product_name"`
	Category        *string          `db:"category"`
	UnitCost        *decimal.Decimal `db:"unit_cost"`
	Margin          *decimal.Decimal `db:"margin"`
	CustomerName    *string          `db:"customer_name"`
	CustomerCountry *string          `db:"customer_country"`
	Segment         *string          `db:"segment"`
}

// Tables is the complete output of a run.
type Tables struct {
	Sales     []Sale
	Products  []Product
	Customers []Customer
	Returns   []Return
	Fees      []Fee
	Shipping  []Shipping
	Targets   []Target
	Enriched  []EnrichedSale
}
