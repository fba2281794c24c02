//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/pkg/version"
)

const (
	metadataTable = "salesreport_metadata"
	runsTable     = "salesreport_runs"
)

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS salesreport_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

const createRunsTableSQL = `
CREATE TABLE IF NOT EXISTS salesreport_runs (
    run_id          UUID PRIMARY KEY,
    report          TEXT NOT NULL,
    evaluation_date DATE NOT NULL,
    row_count       INTEGER NOT NULL,
    total_sales     BIGINT NOT NULL,
    format          TEXT NOT NULL,
    output          TEXT NOT NULL DEFAULT '',
    started_at      TIMESTAMPTZ NOT NULL,
    finished_at     TIMESTAMPTZ NOT NULL,
    version         TEXT NOT NULL
)`

// InitInfo describes how the warehouse was populated.
type InitInfo struct {
	Mode      string // "generated" or "csv"
	Pattern   string
	Customers int
	Products  int
	Orders    int
	Seed      uint64
}

// SaveMetadata records initialization metadata in the database.
func SaveMetadata(ctx context.Context, pool *pgxpool.Pool, info InitInfo) error {
	_, err := pool.Exec(ctx, createMetadataTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{
		"mode":           info.Mode,
		"pattern":        info.Pattern,
		"version":        version.Short(),
		"initialized_at": time.Now().UTC().Format(time.RFC3339),
		"customers":      fmt.Sprint(info.Customers),
		"products":       fmt.Sprint(info.Products),
		"orders":         fmt.Sprint(info.Orders),
		"seed":           fmt.Sprint(info.Seed),
	}

	for key, value := range metadata {
		_, err := pool.Exec(ctx, `
            INSERT INTO salesreport_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Str("mode", info.Mode).
		Int("orders", info.Orders).
		Msg("Saved metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, pool *pgxpool.Pool, key string) (string, error) {
	var value string
	err := pool.QueryRow(ctx, `
        SELECT value FROM salesreport_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	rows, err := pool.Query(ctx, `SELECT key, value FROM salesreport_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DropMetadata drops the metadata and run tables.
func DropMetadata(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s, %s", metadataTable, runsTable))
	return err
}

// MetadataExists checks if the metadata table exists.
func MetadataExists(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = $1
        )
    `, metadataTable).Scan(&exists)
	return exists, err
}

// Run is one recorded report build.
type Run struct {
	ID             uuid.UUID
	Report         string
	EvaluationDate time.Time
	RowCount       int
	TotalSales     int64
	Format         string
	Output         string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// NewRun starts a run record with a fresh id.
func NewRun(report string, evalDate time.Time, format string) *Run {
	return &Run{
		ID:             uuid.New(),
		Report:         report,
		EvaluationDate: evalDate,
		Format:         format,
		StartedAt:      time.Now().UTC(),
	}
}

// RecordRun stores a finished run in salesreport_runs.
func RecordRun(ctx context.Context, pool *pgxpool.Pool, run *Run) error {
	if _, err := pool.Exec(ctx, createRunsTableSQL); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	_, err := pool.Exec(ctx, `
        INSERT INTO salesreport_runs
            (run_id, report, evaluation_date, row_count, total_sales, format,
             output, started_at, finished_at, version)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, run.ID, run.Report, run.EvaluationDate, run.RowCount, run.TotalSales,
		run.Format, run.Output, run.StartedAt, run.FinishedAt, version.Short())
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}

	logging.Debug().
		Str("run_id", run.ID.String()).
		Str("report", run.Report).
		Msg("Recorded report run")
	return nil
}

// RecentRuns returns the latest runs, newest first.
func RecentRuns(ctx context.Context, pool *pgxpool.Pool, limit int) ([]Run, error) {
	rows, err := pool.Query(ctx, `
        SELECT run_id, report, evaluation_date, row_count, total_sales,
               format, output, started_at, finished_at
        FROM salesreport_runs
        ORDER BY started_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Report, &r.EvaluationDate, &r.RowCount,
			&r.TotalSales, &r.Format, &r.Output, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
