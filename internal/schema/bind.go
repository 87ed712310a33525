package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"salesmart/pkg/records"
)

// Binders lift deduplicated records (canonical field names, parsed values)
// into the typed entities. Missing or failed fields become zero values or
// nil pointers; the validator reports on them downstream, binders never
// reject.

func BindSale(r records.Record) Sale {
	s := Sale{
		OrderID:     str(r, "order_id"),
		OrderDate:   datePtr(r, "order_date"),
		CustomerID:  str(r, "customer_id"),
		ProductSKU:  str(r, "product_sku"),
		Quantity:    intVal(r, "quantity"),
		UnitPrice:   dec(r, "unit_price"),
		Currency:    str(r, "currency"),
		Country:     str(r, "order_country"),
		City:        str(r, "order_city"),
		Salesperson: str(r, "salesperson"),
		Channel:     str(r, "channel"),
	}
	s.SalesAmount = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
	return s
}

func BindProduct(r records.Record) Product {
	return Product{
		SKU:         str(r, "product_sku"),
		Name:        str(r, "name"),
		Category:    str(r, "category"),
		Subcategory: str(r, "subcategory"),
		UnitCost:    dec(r, "unit_cost"),
		Active:      boolVal(r, "active"),
		Supplier:    strPtr(r, "supplier"),
		PackageSize: str(r, "package_size"),
		EAN:         str(r, "ean"),
	}
}

func BindCustomer(r records.Record) Customer {
	return Customer{
		CustomerID: str(r, "customer_id"),
		Name:       str(r, "name"),
		ASCIIName:  str(r, "ascii_name"),
		Email:      str(r, "email"),
		Phone:      str(r, "phone"),
		Country:    str(r, "country"),
		City:       str(r, "city"),
		Segment:    str(r, "segment"),
		JoinDate:   datePtr(r, "join_date"),
		VAT:        strPtr(r, "vat"),
	}
}

func BindReturn(r records.Record) Return {
	return Return{
		ReturnID:   str(r, "return_id"),
		OrderID:    str(r, "order_id"),
		ReturnDate: datePtr(r, "return_date"),
		Reason:     str(r, "reason"),
		Refund:     dec(r, "refund"),
	}
}

func BindFee(r records.Record) Fee {
	return Fee{
		Channel: str(r, "channel"),
		Country: str(r, "country"),
		Month:   str(r, "month"),
		Amount:  dec(r, "fee_amount"),
	}
}

func BindShipping(r records.Record) Shipping {
	return Shipping{
		OrderID:      str(r, "order_id"),
		ShipDate:     datePtr(r, "ship_date"),
		Carrier:      str(r, "carrier"),
		Cost:         dec(r, "cost"),
		DeliveryDays: intVal(r, "delivery_days"),
	}
}

func BindTarget(r records.Record) Target {
	return Target{
		Salesperson: str(r, "salesperson"),
		Month:       str(r, "month"),
		Amount:      dec(r, "target_amount"),
	}
}

func str(r records.Record, key string) string {
	s, _ := r[key].(string)
	return s
}

func strPtr(r records.Record, key string) *string {
	if s, ok := r[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

func intVal(r records.Record, key string) int {
	switch t := r[key].(type) {
	case int:
		return t
	case int64:
		return int(t)
	case decimal.Decimal:
		return int(t.IntPart())
	}
	return 0
}

func boolVal(r records.Record, key string) bool {
	b, _ := r[key].(bool)
	return b
}

func dec(r records.Record, key string) decimal.Decimal {
	if d, ok := r[key].(decimal.Decimal); ok {
		return d
	}
	return decimal.Zero
}

func datePtr(r records.Record, key string) *time.Time {
	if t, ok := r[key].(time.Time); ok {
		return &t
	}
	return nil
}
