//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the PostgreSQL warehouse.
// Run with: go test -tags=integration ./internal/...
// Requires PostgreSQL to be running locally.
// Set PGEDGE_TEST_CONN to override the default connection string.

package warehouse_test

import (
	"context"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-salesreport/internal/datagen"
	"github.com/pgEdge/pgedge-salesreport/internal/db"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
	"github.com/pgEdge/pgedge-salesreport/internal/testutil"
	"github.com/pgEdge/pgedge-salesreport/internal/warehouse"
)

// TestPostgresWarehouseIntegration loads a generated warehouse and builds
// both reports from it.
func TestPostgresWarehouseIntegration(t *testing.T) {
	pool := testutil.NewTestPool(t, "warehouse")
	ctx := context.Background()

	evalDate := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	gen := warehouse.GeneratorConfig{
		Customers: 120, Products: 40, Orders: 1500, Seed: 42,
		Start: evalDate.AddDate(-3, 0, 0),
		End:   evalDate,
	}
	snap := warehouse.NewGenerator(gen).Generate()

	t.Run("CreateSchema", func(t *testing.T) {
		if err := warehouse.CreateSchema(ctx, pool); err != nil {
			t.Fatalf("CreateSchema failed: %v", err)
		}
	})

	t.Run("Insert", func(t *testing.T) {
		cfg := datagen.BatchInsertConfig{BatchSize: 500, ShowProgress: false}
		if err := warehouse.Insert(ctx, pool, snap, cfg); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		counts, err := warehouse.RowCounts(ctx, pool)
		if err != nil {
			t.Fatalf("RowCounts failed: %v", err)
		}
		if counts[warehouse.CustomersTable] != int64(len(snap.Customers)) ||
			counts[warehouse.ProductsTable] != int64(len(snap.Products)) ||
			counts[warehouse.SalesTable] != int64(len(snap.Sales)) {
			t.Errorf("Unexpected row counts: %v", counts)
		}
	})

	src := warehouse.NewPostgresSource(pool)

	t.Run("CustomerReport", func(t *testing.T) {
		loaded, err := warehouse.LoadSnapshot(ctx, src, "customers")
		if err != nil {
			t.Fatalf("LoadSnapshot failed: %v", err)
		}
		want, err := report.BuildCustomerReport(snap.Sales, snap.Customers, evalDate, report.Options{})
		if err != nil {
			t.Fatalf("BuildCustomerReport on generated data failed: %v", err)
		}
		got, err := report.BuildCustomerReport(loaded.Sales, loaded.Customers, evalDate, report.Options{Workers: 4})
		if err != nil {
			t.Fatalf("BuildCustomerReport on loaded data failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("Expected %d rows, got %d", len(want), len(got))
		}
		for i := range want {
			g, w := got[i], want[i]
			if g.CustomerKey != w.CustomerKey || g.TotalSales != w.TotalSales ||
				g.RevenueRank != w.RevenueRank || g.ValueTier != w.ValueTier ||
				g.AgeGroup != w.AgeGroup || g.FirstOrderDate != w.FirstOrderDate {
				t.Errorf("Row %d differs after round trip:\nwant %+v\ngot  %+v", i, w, g)
				break
			}
		}
	})

	t.Run("ProductReport", func(t *testing.T) {
		loaded, err := warehouse.LoadSnapshot(ctx, src, "products")
		if err != nil {
			t.Fatalf("LoadSnapshot failed: %v", err)
		}
		rows, err := report.BuildProductReport(loaded.Sales, loaded.Products, evalDate, report.Options{})
		if err != nil {
			t.Fatalf("BuildProductReport failed: %v", err)
		}
		if len(rows) == 0 {
			t.Error("Expected product rows")
		}
	})

	t.Run("Runs", func(t *testing.T) {
		if err := db.SaveMetadata(ctx, pool, db.InitInfo{Mode: "generated", Customers: 120, Products: 40, Orders: 1500, Seed: 42}); err != nil {
			t.Fatalf("SaveMetadata failed: %v", err)
		}
		mode, err := db.GetMetadataValue(ctx, pool, "mode")
		if err != nil || mode != "generated" {
			t.Errorf("Expected mode generated, got %q (%v)", mode, err)
		}

		run := db.NewRun("customers", evalDate, "json")
		run.RowCount = 10
		run.TotalSales = 12345
		run.FinishedAt = time.Now().UTC()
		if err := db.RecordRun(ctx, pool, run); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}

		runs, err := db.RecentRuns(ctx, pool, 5)
		if err != nil {
			t.Fatalf("RecentRuns failed: %v", err)
		}
		if len(runs) != 1 || runs[0].ID != run.ID || runs[0].TotalSales != 12345 {
			t.Errorf("Unexpected runs: %+v", runs)
		}
	})

	t.Run("DropSchema", func(t *testing.T) {
		if err := warehouse.DropSchema(ctx, pool); err != nil {
			t.Fatalf("DropSchema failed: %v", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			t.Fatalf("DropMetadata failed: %v", err)
		}
	})
}
