package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesreport/internal/db"
	"github.com/pgEdge/pgedge-salesreport/internal/export"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
	"github.com/pgEdge/pgedge-salesreport/internal/warehouse"
)

var (
	reportEvalDate  string
	reportFormat    string
	reportOutputDir string
	reportWorkers   int
	reportLimit     int
	reportCSVDir    string
	reportS3Bucket  string
	reportS3Prefix  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build a customer or product report",
	Long: `Build a report from the configured source. The snapshot is validated,
joined, aggregated per customer or product, segmented and ranked, then
exported in the chosen format.

Example:
  pgedge-salesreport report customers --connection "postgres://..."
  pgedge-salesreport report products --source csv --csv-dir ./datasets --format pdf
  pgedge-salesreport report customers --format json --s3-bucket reports --s3-prefix sales`,
}

var reportCustomersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Customer report: lifetime metrics, segments and revenue ranks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, "customers")
	},
}

var reportProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Product report: performance, margins and category ranks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, "products")
	},
}

func init() {
	flags := reportCmd.PersistentFlags()
	flags.StringVar(&reportEvalDate, "eval-date", "",
		"evaluation date, YYYY-MM-DD (default: today UTC)")
	flags.StringVar(&reportFormat, "format", "",
		"output format: table, csv, json, yaml, pdf")
	flags.StringVar(&reportOutputDir, "output-dir", "",
		"directory for exported files (default: .)")
	flags.IntVar(&reportWorkers, "workers", 0,
		"aggregation workers (default: one per CPU)")
	flags.IntVar(&reportLimit, "limit", 0,
		"rows printed by the table format (0 = all, default: 50)")
	flags.StringVar(&reportCSVDir, "csv-dir", "",
		"directory holding the warehouse CSV files (source csv)")
	flags.StringVar(&reportS3Bucket, "s3-bucket", "",
		"upload the exported file to this S3 bucket")
	flags.StringVar(&reportS3Prefix, "s3-prefix", "",
		"key prefix for S3 uploads")

	reportCmd.AddCommand(reportCustomersCmd)
	reportCmd.AddCommand(reportProductsCmd)
}

func runReport(cmd *cobra.Command, kind string) error {
	// Override config with CLI flags
	if reportEvalDate != "" {
		cfg.Report.EvaluationDate = reportEvalDate
	}
	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}
	if reportOutputDir != "" {
		cfg.Report.OutputDir = reportOutputDir
	}
	if reportWorkers > 0 {
		cfg.Report.Workers = reportWorkers
	}
	if cmd.Flags().Changed("limit") {
		cfg.Report.Limit = reportLimit
	}
	if reportCSVDir != "" {
		cfg.Report.CSVDir = reportCSVDir
	}
	if reportS3Bucket != "" {
		cfg.Report.S3Bucket = reportS3Bucket
	}
	if reportS3Prefix != "" {
		cfg.Report.S3Prefix = reportS3Prefix
	}

	// Validate configuration
	if err := cfg.ValidateReport(); err != nil {
		return err
	}
	evalDate, err := cfg.EvaluationDate()
	if err != nil {
		return err
	}

	run := db.NewRun(kind, evalDate, cfg.Report.Format)
	log := logging.WithRun(run.ID.String(), kind)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Info().
		Str("source", cfg.Source).
		Str("evaluation_date", evalDate.Format(report.DateLayout)).
		Str("format", cfg.Report.Format).
		Msg("Building report")

	src, err := warehouse.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	spinner, _ := pterm.DefaultSpinner.
		WithWriter(cmd.ErrOrStderr()).
		Start(fmt.Sprintf("Loading %s snapshot from %s...", kind, src.Name()))
	snap, err := warehouse.LoadSnapshot(ctx, src, kind)
	if err != nil {
		spinner.Fail("Loading failed")
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	spinner.Success(fmt.Sprintf("Loaded %d sales lines", len(snap.Sales)))

	table, totalSales, err := buildTable(kind, snap, evalDate, report.Options{Workers: cfg.Report.Workers})
	if err != nil {
		return err
	}
	run.RowCount = table.Len()
	run.TotalSales = totalSales

	exporter := export.NewExporter(cfg.Report.OutputDir, cfg.Report.Limit)
	exporter.Out = cmd.OutOrStdout()
	path, err := exporter.Export(table, cfg.Report.Format, evalDate)
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	run.Output = path

	if cfg.Report.S3Bucket != "" {
		client, err := export.NewS3Client(ctx)
		if err != nil {
			return err
		}
		key, err := export.Upload(ctx, client, cfg.Report.S3Bucket, cfg.Report.S3Prefix, path)
		if err != nil {
			return err
		}
		run.Output = fmt.Sprintf("s3://%s/%s", cfg.Report.S3Bucket, key)
	}
	run.FinishedAt = time.Now().UTC()

	// Runs are recorded next to the warehouse when it lives in PostgreSQL
	if pg, ok := src.(*warehouse.PostgresSource); ok {
		if err := db.RecordRun(ctx, pg.Pool(), run); err != nil {
			log.Warn().Err(err).Msg("Could not record report run")
		}
	}

	log.Info().
		Int("rows", run.RowCount).
		Int64("total_sales", run.TotalSales).
		Dur("elapsed", run.FinishedAt.Sub(run.StartedAt)).
		Msg("Report complete")
	if path != "" {
		pterm.Success.Printfln("Report written to %s", run.Output)
	}

	return nil
}

// buildTable builds the report of the given kind and returns it with the
// total sales it covers.
func buildTable(kind string, snap *warehouse.Snapshot, evalDate time.Time, opts report.Options) (*export.Table, int64, error) {
	var total int64
	switch kind {
	case "customers":
		rows, err := report.BuildCustomerReport(snap.Sales, snap.Customers, evalDate, opts)
		if err != nil {
			return nil, 0, err
		}
		for _, r := range rows {
			total += int64(r.TotalSales)
		}
		return export.CustomerTable(rows), total, nil
	case "products":
		rows, err := report.BuildProductReport(snap.Sales, snap.Products, evalDate, opts)
		if err != nil {
			return nil, 0, err
		}
		for _, r := range rows {
			total += int64(r.TotalSales)
		}
		return export.ProductTable(rows), total, nil
	default:
		return nil, 0, fmt.Errorf("unknown report: %s", kind)
	}
}
