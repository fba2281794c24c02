package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

// MySQLSource reads the warehouse tables from a MySQL or MariaDB database.
// The tables live unqualified in the database named by the DSN.
type MySQLSource struct {
	db *sql.DB
}

// OpenMySQL opens and pings a MySQL connection. dsn may be a mysql:// or
// mariadb:// URL or a native driver DSN.
func OpenMySQL(ctx context.Context, dsn string) (*MySQLSource, error) {
	native, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open("mysql", native)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	conn.SetMaxOpenConns(4)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}
	logging.Info().Msg("Connected to mysql")
	return &MySQLSource{db: conn}, nil
}

// Name returns "mysql".
func (s *MySQLSource) Name() string { return "mysql" }

// LoadSales reads fact_sales.
func (s *MySQLSource) LoadSales(ctx context.Context) ([]report.SalesLine, error) {
	return sqlQueryAll(ctx, s.db, selectSQL("", SalesTable, SalesColumns), scanSale)
}

// LoadCustomers reads dim_customers.
func (s *MySQLSource) LoadCustomers(ctx context.Context) ([]report.Customer, error) {
	return sqlQueryAll(ctx, s.db, selectSQL("", CustomersTable, CustomerColumns), scanCustomer)
}

// LoadProducts reads dim_products.
func (s *MySQLSource) LoadProducts(ctx context.Context) ([]report.Product, error) {
	return sqlQueryAll(ctx, s.db, selectSQL("", ProductsTable, ProductColumns), scanProduct)
}

// Close closes the database handle.
func (s *MySQLSource) Close() error {
	return s.db.Close()
}

func sqlQueryAll[T any](ctx context.Context, db *sql.DB, query string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// toMySQLDSN converts a mysql:// or mariadb:// URL into the driver's native
// user:pass@tcp(host)/db form. Other strings are returned unchanged.
func toMySQLDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mysql://") && !strings.HasPrefix(dsn, "mariadb://") {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	database := strings.TrimPrefix(u.Path, "/")
	if user == "" || u.Host == "" || database == "" {
		return "", fmt.Errorf("incomplete mysql dsn: user, host and database are required")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
		user, pass, u.Host, database), nil
}
