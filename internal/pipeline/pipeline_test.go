package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"salesmart/internal/config"
	"salesmart/internal/validate"
)

// memOpener feeds in-memory CSV bodies keyed by source name.
func memOpener(files map[string]string) Opener {
	return func(_ context.Context, src config.Source) (io.ReadCloser, error) {
		body, ok := files[src.Name]
		if !ok {
			return nil, fmt.Errorf("no fixture for source %q", src.Name)
		}
		return io.NopCloser(strings.NewReader(body)), nil
	}
}

func testConfig() config.Pipeline {
	return config.Pipeline{
		Job: "test",
		Sources: []config.Source{
			{Name: "sales_q1", Table: "sales", Path: "q1.csv"},
			{Name: "sales_q2", Table: "sales", Path: "q2.csv"},
			{Name: "products", Table: "products", Path: "products.csv"},
			{Name: "customers", Table: "customers", Path: "customers.csv"},
		},
		Run: config.Run{MinDate: "2015-01-01", MaxDate: "2026-12-31"},
	}
}

const (
	salesQ1 = `Order ID,Order Date,Customer ID,SKU,Quantity,Unit Price,Currency,Country,City,Salesperson,Channel
ORD-1,2023-01-11,CUST-1,SKU-1,2,9.99,PLN,polska,Kraków,Jan Nowak,online
ORD-2,12.01.2023,CUST-1,SKU-404,1,"4,50",PLN,PL,Warszawa,Jan Nowak,retail
,2023-01-13,CUST-2,SKU-1,1,5.00,PLN,Poland,Gdańsk,Anna Kowalska,online
`
	// ORD-1 repeats across quarters; the first occurrence must win.
	salesQ2 = `Order ID,Order Date,Customer ID,SKU,Quantity,Unit Price,Currency,Country,City,Salesperson,Channel
ORD-1,2023-04-02,CUST-1,SKU-1,9,1.00,PLN,Poland,Kraków,Jan Nowak,online
ORD-3,2023-04-05,CUST-2,SKU-1,3,7.00,PLN,Poland,Łódź,Anna Kowalska,online
`
	productsCSV = `SKU,Name,Category,Subcategory,Unit Cost,Active,Supplier,Package Size,EAN
SKU-1,Zeszyt A5,Papier,Zeszyty,4.10,yes,Hurtownia Centralna,6 x 80 g,5901234123457
`
	customersCSV = `Customer ID,Name,Email,Phone,Country,City,Segment,Join Date,VAT
CUST-1,Józef Wiśniewski,JOZEF@EXAMPLE.COM,+48 601 002 003,Poland,Kraków,B2C,2020-05-01,
CUST-1,Józef Wiśniewski,jozef@example.com,601002003,Poland,Warszawa,B2B,2022-06-15,PL5260250274
CUST-2,Anna Zielińska,anna@example.com,,Poland,Gdańsk,B2C,2021-03-10,
`
)

func fixtures() map[string]string {
	return map[string]string{
		"sales_q1":  salesQ1,
		"sales_q2":  salesQ2,
		"products":  productsCSV,
		"customers": customersCSV,
	}
}

func TestRunEndToEnd(t *testing.T) {
	res, err := Run(context.Background(), testConfig(), memOpener(fixtures()), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Three unique orders survive: ORD-1 (first occurrence), ORD-2, ORD-3.
	// The keyless row is rejected, the quarterly duplicate deduplicated.
	if got := len(res.Tables.Sales); got != 3 {
		t.Fatalf("sales: got %d rows want 3", got)
	}
	if len(res.Rejects) != 1 || res.Rejects[0].Source != "sales" {
		t.Fatalf("rejects: got %#v want one sales reject", res.Rejects)
	}

	first := res.Tables.Sales[0]
	if first.OrderID != "ORD-1" || first.Quantity != 2 {
		t.Fatalf("dedup: ORD-1 winner got %+v want the first-quarter row", first)
	}
	if got := first.SalesAmount.String(); got != "19.98" {
		t.Fatalf("sales amount: got %s want 19.98", got)
	}
	if first.OrderDate == nil || !first.OrderDate.Equal(time.Date(2023, 1, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("order date: got %v", first.OrderDate)
	}
	if first.Country != "Poland" {
		t.Fatalf("country: got %q want Poland", first.Country)
	}

	// Customers: latest join_date wins, keeping first-occurrence position.
	if got := len(res.Tables.Customers); got != 2 {
		t.Fatalf("customers: got %d rows want 2", got)
	}
	winner := res.Tables.Customers[0]
	if winner.CustomerID != "CUST-1" || winner.Segment != "B2B" {
		t.Fatalf("customer dedup: got %+v want the 2022 profile", winner)
	}
	if winner.ASCIIName != "Jozef Wisniewski" {
		t.Fatalf("ascii name: got %q", winner.ASCIIName)
	}
	if winner.Email != "jozef@example.com" {
		t.Fatalf("email: got %q", winner.Email)
	}

	// Integration: ORD-2 references an unknown SKU and stays unenriched.
	var orphans int
	for _, e := range res.Tables.Enriched {
		if e.ProductSKU != "" && e.ProductName == nil {
			orphans++
		}
	}
	if orphans != 1 {
		t.Fatalf("enrichment: got %d orphaned sales want 1", orphans)
	}

	// The orphan check fails; the duplicate checks pass post-dedup.
	if !res.Report.Failed() {
		t.Fatalf("report: expected at least one FAIL")
	}
	byName := map[string]validate.Check{}
	for _, c := range res.Report {
		byName[c.Name] = c
	}
	if c := byName["sales: orphaned product fk"]; c.Status != validate.Fail || c.Violations != 1 {
		t.Fatalf("orphan check: got %+v", c)
	}
	if c := byName["sales: duplicate order id"]; c.Status != validate.Pass {
		t.Fatalf("duplicate check: got %+v", c)
	}
	if c := byName["products: duplicate sku"]; c.Status != validate.Pass {
		t.Fatalf("duplicate sku check: got %+v", c)
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	seqCfg := testConfig()
	parCfg := testConfig()
	parCfg.Run.Workers = 8

	seq, err := Run(context.Background(), seqCfg, memOpener(fixtures()), nil)
	if err != nil {
		t.Fatalf("Run sequential: %v", err)
	}
	par, err := Run(context.Background(), parCfg, memOpener(fixtures()), nil)
	if err != nil {
		t.Fatalf("Run parallel: %v", err)
	}

	if len(seq.Tables.Sales) != len(par.Tables.Sales) {
		t.Fatalf("parallel run changed sales count: %d vs %d", len(seq.Tables.Sales), len(par.Tables.Sales))
	}
	for i := range seq.Tables.Sales {
		if seq.Tables.Sales[i].OrderID != par.Tables.Sales[i].OrderID {
			t.Fatalf("parallel run changed order at %d: %s vs %s",
				i, seq.Tables.Sales[i].OrderID, par.Tables.Sales[i].OrderID)
		}
	}
}

func TestRunUnknownSourceFile(t *testing.T) {
	cfg := testConfig()
	cfg.Sources = append(cfg.Sources, config.Source{Name: "missing", Table: "fees", Path: "x.csv"})
	_, err := Run(context.Background(), cfg, memOpener(fixtures()), nil)
	if err == nil {
		t.Fatalf("Run: expected error for unreadable source")
	}
}

func TestCatalogCoversAllTables(t *testing.T) {
	t.Parallel()

	cat := Catalog()
	for _, name := range tableNames {
		tbl, ok := cat[name]
		if !ok {
			t.Fatalf("catalog: missing table %s", name)
		}
		if len(tbl.Source.Key) == 0 {
			t.Fatalf("catalog: table %s has no natural key", name)
		}
		named := map[string]bool{}
		for _, f := range tbl.Source.Fields {
			named[f.Name] = true
		}
		for _, k := range tbl.Source.Key {
			if !named[k] {
				t.Fatalf("catalog: table %s key %s has no field mapping", name, k)
			}
		}
	}
}
