package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-salesreport/internal/db"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

// PostgresSource reads the gold schema through a pgx pool.
type PostgresSource struct {
	pool  *pgxpool.Pool
	owned bool
}

// OpenPostgres connects to connString and returns a source owning the pool.
func OpenPostgres(ctx context.Context, connString string) (*PostgresSource, error) {
	pool, err := db.Connect(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresSource{pool: pool, owned: true}, nil
}

// NewPostgresSource wraps an existing pool; Close leaves it open.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Name returns "postgres".
func (s *PostgresSource) Name() string { return "postgres" }

// Pool exposes the underlying pool for run bookkeeping.
func (s *PostgresSource) Pool() *pgxpool.Pool { return s.pool }

// LoadSales reads gold.fact_sales.
func (s *PostgresSource) LoadSales(ctx context.Context) ([]report.SalesLine, error) {
	return queryAll(ctx, s.pool, selectSQL(SchemaName, SalesTable, SalesColumns), scanSale)
}

// LoadCustomers reads gold.dim_customers.
func (s *PostgresSource) LoadCustomers(ctx context.Context) ([]report.Customer, error) {
	return queryAll(ctx, s.pool, selectSQL(SchemaName, CustomersTable, CustomerColumns), scanCustomer)
}

// LoadProducts reads gold.dim_products.
func (s *PostgresSource) LoadProducts(ctx context.Context) ([]report.Product, error) {
	return queryAll(ctx, s.pool, selectSQL(SchemaName, ProductsTable, ProductColumns), scanProduct)
}

// Close closes the pool when the source opened it.
func (s *PostgresSource) Close() error {
	if s.owned {
		s.pool.Close()
	}
	return nil
}

func queryAll[T any](ctx context.Context, pool *pgxpool.Pool, sql string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})
}
