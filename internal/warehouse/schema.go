//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse manages the star-schema sales warehouse: its DDL, the
// sources report snapshots are read from, and the loaders that populate it.
package warehouse

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Table names, schema-qualified for PostgreSQL.
const (
	CustomersTable = "dim_customers"
	ProductsTable  = "dim_products"
	SalesTable     = "fact_sales"
	SchemaName     = "gold"
)

// Column lists in load order. CSV files use the same names as headers.
var (
	CustomerColumns = []string{
		"customer_key", "customer_id", "customer_number", "first_name", "last_name",
		"country", "marital_status", "gender", "birthdate", "create_date",
	}
	ProductColumns = []string{
		"product_key", "product_id", "product_number", "product_name", "category_id",
		"category", "subcategory", "maintenance", "cost", "product_line", "start_date",
	}
	SalesColumns = []string{
		"order_number", "product_key", "customer_key", "order_date", "shipping_date",
		"due_date", "sales_amount", "quantity", "price",
	}
)

// Schema SQL for the gold layer of the sales warehouse.
const createSchemaSQL = `
CREATE SCHEMA IF NOT EXISTS gold;

-- Customer Dimension
CREATE TABLE IF NOT EXISTS gold.dim_customers (
    customer_key    INTEGER PRIMARY KEY,
    customer_id     INTEGER,
    customer_number VARCHAR(50),
    first_name      VARCHAR(50),
    last_name       VARCHAR(50),
    country         VARCHAR(50),
    marital_status  VARCHAR(50),
    gender          VARCHAR(50),
    birthdate       DATE,
    create_date     DATE
);

-- Product Dimension
CREATE TABLE IF NOT EXISTS gold.dim_products (
    product_key    INTEGER PRIMARY KEY,
    product_id     INTEGER,
    product_number VARCHAR(50),
    product_name   VARCHAR(50),
    category_id    VARCHAR(50),
    category       VARCHAR(50),
    subcategory    VARCHAR(50),
    maintenance    VARCHAR(50),
    cost           INTEGER CHECK (cost >= 0),
    product_line   VARCHAR(50),
    start_date     DATE
);

-- Sales Fact
CREATE TABLE IF NOT EXISTS gold.fact_sales (
    order_number  VARCHAR(50) NOT NULL,
    product_key   INTEGER,
    customer_key  INTEGER,
    order_date    DATE,
    shipping_date DATE,
    due_date      DATE,
    sales_amount  INTEGER CHECK (sales_amount >= 0),
    quantity      SMALLINT CHECK (quantity BETWEEN 0 AND 255),
    price         INTEGER
);

CREATE INDEX IF NOT EXISTS idx_fact_sales_customer ON gold.fact_sales(customer_key);
CREATE INDEX IF NOT EXISTS idx_fact_sales_product ON gold.fact_sales(product_key);
CREATE INDEX IF NOT EXISTS idx_fact_sales_order_date ON gold.fact_sales(order_date);
CREATE INDEX IF NOT EXISTS idx_dim_products_category ON gold.dim_products(category);
CREATE INDEX IF NOT EXISTS idx_dim_customers_country ON gold.dim_customers(country);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS gold.fact_sales CASCADE;
DROP TABLE IF EXISTS gold.dim_products CASCADE;
DROP TABLE IF EXISTS gold.dim_customers CASCADE;
`

// CreateSchema creates the gold schema and its tables.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the warehouse tables.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}

// RowCounts returns the number of rows in each warehouse table.
func RowCounts(ctx context.Context, pool *pgxpool.Pool) (map[string]int64, error) {
	counts := make(map[string]int64, 3)
	for _, table := range []string{CustomersTable, ProductsTable, SalesTable} {
		var n int64
		if err := pool.QueryRow(ctx, "SELECT count(*) FROM "+SchemaName+"."+table).Scan(&n); err != nil {
			return nil, err
		}
		counts[table] = n
	}
	return counts, nil
}
