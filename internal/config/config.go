//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-salesreport.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"

	"github.com/pgEdge/pgedge-salesreport/internal/datagen/demand"
)

// Supported snapshot sources.
const (
	SourcePostgres = "postgres"
	SourceMySQL    = "mysql"
	SourceCSV      = "csv"
)

// Formats lists the supported export formats.
var Formats = []string{"table", "csv", "json", "yaml", "pdf"}

// Config holds all configuration for pgedge-salesreport.
type Config struct {
	// Connection is the warehouse connection string (postgres:// or mysql://).
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Source selects where report snapshots are read from: postgres, mysql or csv.
	Source string `mapstructure:"source"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`

	// Report holds configuration for the report subcommands.
	Report ReportConfig `mapstructure:"report"`
}

// InitConfig holds configuration for warehouse initialization.
type InitConfig struct {
	// Customers, Products and Orders size the generated dataset.
	Customers int `mapstructure:"customers"`
	Products  int `mapstructure:"products"`
	Orders    int `mapstructure:"orders"`

	// Seed makes generated data reproducible (0 = random).
	Seed uint64 `mapstructure:"seed"`

	// Pattern is the calendar demand pattern: flat, retail or business.
	Pattern string `mapstructure:"pattern"`

	// DropExisting drops the existing warehouse schema before initialization.
	DropExisting bool `mapstructure:"drop_existing"`

	// CSVDir loads dim_customers.csv, dim_products.csv and fact_sales.csv
	// from this directory instead of generating data.
	CSVDir string `mapstructure:"csv_dir"`
}

// ReportConfig holds configuration for report builds and exports.
type ReportConfig struct {
	// EvaluationDate is the "today" of the report, YYYY-MM-DD (empty = today UTC).
	EvaluationDate string `mapstructure:"evaluation_date"`

	// Format is the export format: table, csv, json, yaml or pdf.
	Format string `mapstructure:"format"`

	// OutputDir receives exported files for file formats.
	OutputDir string `mapstructure:"output_dir"`

	// Workers is the number of aggregation workers (0 = one per CPU).
	Workers int `mapstructure:"workers"`

	// CSVDir is read when Source is csv.
	CSVDir string `mapstructure:"csv_dir"`

	// Limit caps the rows printed by the table format (0 = all).
	Limit int `mapstructure:"limit"`

	// S3Bucket, when set, receives a copy of every exported file.
	S3Bucket string `mapstructure:"s3_bucket"`
	S3Prefix string `mapstructure:"s3_prefix"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Source:   SourcePostgres,
		Init: InitConfig{
			Customers:    1000,
			Products:     200,
			Orders:       20000,
			Pattern:      "flat",
			DropExisting: false,
		},
		Report: ReportConfig{
			Format:    "table",
			OutputDir: ".",
			Limit:     50,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-salesreport.yaml
// 3. ~/.config/pgedge-salesreport/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-salesreport")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-salesreport"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Source {
	case SourcePostgres, SourceMySQL:
		if c.Connection == "" {
			return fmt.Errorf("connection string is required for source %q", c.Source)
		}
	case SourceCSV:
	default:
		return fmt.Errorf("source must be 'postgres', 'mysql' or 'csv'")
	}
	return nil
}

// ValidateInit checks configuration required for init command.
// The warehouse is always initialized in PostgreSQL.
func (c *Config) ValidateInit() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required for init")
	}
	if c.Init.CSVDir != "" {
		return nil
	}
	if c.Init.Customers < 1 || c.Init.Products < 1 {
		return fmt.Errorf("customers and products must be at least 1")
	}
	if c.Init.Orders < 0 {
		return fmt.Errorf("orders must be non-negative")
	}
	if _, err := demand.Get(c.Init.Pattern); err != nil {
		return fmt.Errorf("pattern must be one of %v", demand.List())
	}
	return nil
}

// ValidateReport checks configuration required for the report commands.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Source == SourceCSV && c.Report.CSVDir == "" {
		return fmt.Errorf("report.csv_dir is required for source 'csv'")
	}
	if !slices.Contains(Formats, c.Report.Format) {
		return fmt.Errorf("format must be one of %v", Formats)
	}
	if c.Report.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}
	if c.Report.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	if c.Report.S3Bucket != "" && c.Report.Format == "table" {
		return fmt.Errorf("s3_bucket requires a file format, not 'table'")
	}
	if _, err := c.EvaluationDate(); err != nil {
		return err
	}
	return nil
}

// EvaluationDate returns the configured evaluation date, or today in UTC
// when none is set.
func (c *Config) EvaluationDate() (time.Time, error) {
	if c.Report.EvaluationDate == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", c.Report.EvaluationDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("evaluation_date must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}
