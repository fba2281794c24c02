package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pgEdge/pgedge-salesreport/internal/config"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

// Source reads warehouse tables into memory.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	LoadSales(ctx context.Context) ([]report.SalesLine, error)
	LoadCustomers(ctx context.Context) ([]report.Customer, error)
	LoadProducts(ctx context.Context) ([]report.Product, error)

	// Close releases any connection held by the source.
	Close() error
}

// Snapshot is one consistent read of the warehouse. Only the dimension a
// report needs is populated.
type Snapshot struct {
	Sales     []report.SalesLine
	Customers []report.Customer
	Products  []report.Product
}

// Open returns the Source selected by cfg.Source.
func Open(ctx context.Context, cfg *config.Config) (Source, error) {
	switch cfg.Source {
	case config.SourcePostgres:
		return OpenPostgres(ctx, cfg.Connection)
	case config.SourceMySQL:
		return OpenMySQL(ctx, cfg.Connection)
	case config.SourceCSV:
		return NewCSVSource(cfg.Report.CSVDir), nil
	default:
		return nil, fmt.Errorf("unknown source: %s", cfg.Source)
	}
}

// LoadSnapshot reads the fact table and the dimension for the given report
// kind ("customers" or "products").
func LoadSnapshot(ctx context.Context, src Source, kind string) (*Snapshot, error) {
	start := time.Now()
	snap := &Snapshot{}

	var err error
	if snap.Sales, err = src.LoadSales(ctx); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", SalesTable, err)
	}

	switch kind {
	case "customers":
		if snap.Customers, err = src.LoadCustomers(ctx); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", CustomersTable, err)
		}
	case "products":
		if snap.Products, err = src.LoadProducts(ctx); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", ProductsTable, err)
		}
	default:
		return nil, fmt.Errorf("unknown report: %s", kind)
	}

	logging.Info().
		Str("source", src.Name()).
		Int("sales", len(snap.Sales)).
		Int("customers", len(snap.Customers)).
		Int("products", len(snap.Products)).
		Dur("elapsed", time.Since(start)).
		Msg("Loaded snapshot")

	return snap, nil
}

// scanner is satisfied by pgx.Rows and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// nullable column targets shared by the SQL sources.
type customerRow struct {
	key                                           int
	id                                            *int
	number, first, last, country, marital, gender *string
	birthdate, created                            *time.Time
}

func scanCustomer(s scanner) (report.Customer, error) {
	var r customerRow
	if err := s.Scan(&r.key, &r.id, &r.number, &r.first, &r.last, &r.country,
		&r.marital, &r.gender, &r.birthdate, &r.created); err != nil {
		return report.Customer{}, err
	}
	return report.Customer{
		CustomerKey:    r.key,
		CustomerID:     deref(r.id),
		CustomerNumber: deref(r.number),
		FirstName:      deref(r.first),
		LastName:       deref(r.last),
		Country:        deref(r.country),
		MaritalStatus:  deref(r.marital),
		Gender:         deref(r.gender),
		Birthdate:      day(r.birthdate),
		CreateDate:     day(r.created),
	}, nil
}

func scanProduct(s scanner) (report.Product, error) {
	var (
		p                                             report.Product
		id                                            *int
		number, name, catID, cat, subcat, maint, line *string
		start                                         *time.Time
	)
	if err := s.Scan(&p.ProductKey, &id, &number, &name, &catID, &cat, &subcat,
		&maint, &p.Cost, &line, &start); err != nil {
		return report.Product{}, err
	}
	p.ProductID = deref(id)
	p.ProductNumber = deref(number)
	p.ProductName = deref(name)
	p.CategoryID = deref(catID)
	p.Category = deref(cat)
	p.Subcategory = deref(subcat)
	p.Maintenance = deref(maint)
	p.ProductLine = deref(line)
	p.StartDate = day(start)
	return p, nil
}

func scanSale(s scanner) (report.SalesLine, error) {
	var (
		l                       report.SalesLine
		product, customer       *int
		order, shipping, due    *time.Time
		amount, quantity, price *int
	)
	if err := s.Scan(&l.OrderNumber, &product, &customer, &order, &shipping, &due,
		&amount, &quantity, &price); err != nil {
		return report.SalesLine{}, err
	}
	l.ProductKey = deref(product)
	l.CustomerKey = deref(customer)
	l.OrderDate = day(order)
	l.ShippingDate = day(shipping)
	l.DueDate = day(due)
	l.SalesAmount = deref(amount)
	l.Quantity = deref(quantity)
	l.Price = deref(price)
	return l, nil
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// day normalizes a nullable date to UTC midnight; NULL becomes the zero time.
func day(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return report.Truncate(*t)
}

// selectSQL builds the SELECT for a table in the given qualifier ("" for none).
func selectSQL(qualifier, table string, columns []string) string {
	name := table
	if qualifier != "" {
		name = qualifier + "." + table
	}
	return "SELECT " + strings.Join(columns, ", ") + " FROM " + name
}
