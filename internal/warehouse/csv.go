package warehouse

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

// CSVSource reads dim_customers.csv, dim_products.csv and fact_sales.csv from
// a directory. Files carry a header row naming the warehouse columns; column
// order is free and unknown columns are ignored. Empty cells are NULL.
type CSVSource struct {
	dir string
}

// NewCSVSource returns a source reading from dir.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

// Name returns "csv".
func (s *CSVSource) Name() string { return "csv" }

// Close is a no-op.
func (s *CSVSource) Close() error { return nil }

// LoadSales reads fact_sales.csv.
func (s *CSVSource) LoadSales(ctx context.Context) ([]report.SalesLine, error) {
	return readCSV(ctx, s.path(SalesTable), SalesColumns, func(r *csvRecord) report.SalesLine {
		return report.SalesLine{
			OrderNumber:  r.str("order_number"),
			ProductKey:   r.num("product_key"),
			CustomerKey:  r.num("customer_key"),
			OrderDate:    r.date("order_date"),
			ShippingDate: r.date("shipping_date"),
			DueDate:      r.date("due_date"),
			SalesAmount:  r.num("sales_amount"),
			Quantity:     r.num("quantity"),
			Price:        r.num("price"),
		}
	})
}

// LoadCustomers reads dim_customers.csv.
func (s *CSVSource) LoadCustomers(ctx context.Context) ([]report.Customer, error) {
	return readCSV(ctx, s.path(CustomersTable), []string{"customer_key"}, func(r *csvRecord) report.Customer {
		return report.Customer{
			CustomerKey:    r.num("customer_key"),
			CustomerID:     r.num("customer_id"),
			CustomerNumber: r.str("customer_number"),
			FirstName:      r.str("first_name"),
			LastName:       r.str("last_name"),
			Country:        r.str("country"),
			MaritalStatus:  r.str("marital_status"),
			Gender:         r.str("gender"),
			Birthdate:      r.date("birthdate"),
			CreateDate:     r.date("create_date"),
		}
	})
}

// LoadProducts reads dim_products.csv.
func (s *CSVSource) LoadProducts(ctx context.Context) ([]report.Product, error) {
	return readCSV(ctx, s.path(ProductsTable), []string{"product_key"}, func(r *csvRecord) report.Product {
		return report.Product{
			ProductKey:    r.num("product_key"),
			ProductID:     r.num("product_id"),
			ProductNumber: r.str("product_number"),
			ProductName:   r.str("product_name"),
			CategoryID:    r.str("category_id"),
			Category:      r.str("category"),
			Subcategory:   r.str("subcategory"),
			Maintenance:   r.str("maintenance"),
			Cost:          r.nullNum("cost"),
			ProductLine:   r.str("product_line"),
			StartDate:     r.date("start_date"),
		}
	})
}

func (s *CSVSource) path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

// csvRecord gives typed, header-addressed access to one CSV line and
// collects the first conversion error.
type csvRecord struct {
	index  map[string]int
	fields []string
	line   int
	err    error
}

func (r *csvRecord) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r *csvRecord) nullNum(col string) *int {
	v := r.str(col)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(col, v, err)
		return nil
	}
	return &n
}

func (r *csvRecord) num(col string) int {
	if n := r.nullNum(col); n != nil {
		return *n
	}
	return 0
}

func (r *csvRecord) date(col string) time.Time {
	v := r.str(col)
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(report.DateLayout, v)
	if err != nil {
		r.fail(col, v, err)
		return time.Time{}
	}
	return t
}

func (r *csvRecord) fail(col, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("line %d, column %s: invalid value %q: %w", r.line, col, value, err)
	}
}

func readCSV[T any](ctx context.Context, path string, required []string, build func(*csvRecord) T) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: missing header", path)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%s: missing column %s", path, col)
		}
	}

	var out []T
	rec := &csvRecord{index: index, line: 1}
	for {
		if rec.line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rec.line++
		rec.fields = fields
		v := build(rec)
		if rec.err != nil {
			return nil, fmt.Errorf("%s: %w", path, rec.err)
		}
		out = append(out, v)
	}
	return out, nil
}
