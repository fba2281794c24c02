package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-salesreport/internal/datagen"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

// Insert copies a snapshot into the gold tables with COPY, dimensions first.
func Insert(ctx context.Context, pool *pgxpool.Pool, snap *Snapshot, cfg datagen.BatchInsertConfig) error {
	if err := copyRows(ctx, pool, CustomersTable, CustomerColumns, snap.Customers, cfg, customerValues); err != nil {
		return fmt.Errorf("failed to load %s: %w", CustomersTable, err)
	}
	if err := copyRows(ctx, pool, ProductsTable, ProductColumns, snap.Products, cfg, productValues); err != nil {
		return fmt.Errorf("failed to load %s: %w", ProductsTable, err)
	}
	if err := copyRows(ctx, pool, SalesTable, SalesColumns, snap.Sales, cfg, salesValues); err != nil {
		return fmt.Errorf("failed to load %s: %w", SalesTable, err)
	}
	return nil
}

// LoadCSVDir reads the three warehouse CSV files from dir and copies them
// into the gold tables.
func LoadCSVDir(ctx context.Context, pool *pgxpool.Pool, dir string, cfg datagen.BatchInsertConfig) (*Snapshot, error) {
	src := NewCSVSource(dir)
	snap := &Snapshot{}

	var err error
	if snap.Customers, err = src.LoadCustomers(ctx); err != nil {
		return nil, err
	}
	if snap.Products, err = src.LoadProducts(ctx); err != nil {
		return nil, err
	}
	if snap.Sales, err = src.LoadSales(ctx); err != nil {
		return nil, err
	}

	logging.Info().
		Str("dir", dir).
		Int("customers", len(snap.Customers)).
		Int("products", len(snap.Products)).
		Int("sales", len(snap.Sales)).
		Msg("Read warehouse CSV files")

	return snap, Insert(ctx, pool, snap, cfg)
}

func copyRows[T any](ctx context.Context, pool *pgxpool.Pool, table string, columns []string,
	rows []T, cfg datagen.BatchInsertConfig, values func(*T) []any) error {
	progress := datagen.NewProgressReporter(table, int64(len(rows)), cfg.ShowProgress)
	ident := pgx.Identifier{SchemaName, table}

	err := datagen.Batches(len(rows), cfg.BatchSize, func(start, end int) error {
		batch := rows[start:end]
		n, err := pool.CopyFrom(ctx, ident, columns,
			pgx.CopyFromSlice(len(batch), func(i int) ([]any, error) {
				return values(&batch[i]), nil
			}))
		if err != nil {
			return err
		}
		progress.Update(n)
		return nil
	})
	if err != nil {
		return err
	}
	progress.Done()
	return nil
}

func customerValues(c *report.Customer) []any {
	return []any{
		c.CustomerKey, c.CustomerID, nullString(c.CustomerNumber), nullString(c.FirstName),
		nullString(c.LastName), nullString(c.Country), nullString(c.MaritalStatus),
		nullString(c.Gender), nullDate(c.Birthdate), nullDate(c.CreateDate),
	}
}

func productValues(p *report.Product) []any {
	return []any{
		p.ProductKey, p.ProductID, nullString(p.ProductNumber), nullString(p.ProductName),
		nullString(p.CategoryID), nullString(p.Category), nullString(p.Subcategory),
		nullString(p.Maintenance), p.Cost, nullString(p.ProductLine), nullDate(p.StartDate),
	}
}

func salesValues(s *report.SalesLine) []any {
	return []any{
		s.OrderNumber, s.ProductKey, s.CustomerKey, nullDate(s.OrderDate),
		nullDate(s.ShippingDate), nullDate(s.DueDate), s.SalesAmount, int16(s.Quantity), s.Price,
	}
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
