package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesreport/internal/db"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
	"github.com/pgEdge/pgedge-salesreport/internal/warehouse"
)

var statusRuns int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show warehouse metadata, row counts and recent report runs",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusRuns, "runs", 10,
		"number of recent report runs to show")
}

func runStatus(cmd *cobra.Command, args []string) error {
	if cfg.Connection == "" {
		return fmt.Errorf("connection string is required for status")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	out := cmd.OutOrStdout()

	exists, err := db.MetadataExists(ctx, pool)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("warehouse has not been initialized; run 'pgedge-salesreport init' first")
	}

	metadata, err := db.GetAllMetadata(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fmt.Fprintln(out, pterm.DefaultSection.Sprint("Warehouse"))
	for _, k := range keys {
		fmt.Fprintf(out, "  %-16s %s\n", k, metadata[k])
	}

	counts, err := warehouse.RowCounts(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}
	fmt.Fprintln(out)
	for _, table := range []string{warehouse.CustomersTable, warehouse.ProductsTable, warehouse.SalesTable} {
		fmt.Fprintf(out, "  %-16s %d rows\n", table, counts[table])
	}

	if statusRuns <= 0 {
		return nil
	}
	runs, err := db.RecentRuns(ctx, pool, statusRuns)
	if err != nil {
		// No report has been recorded yet
		return nil
	}

	data := pterm.TableData{{"run_id", "report", "evaluation_date", "rows", "total_sales", "format", "output", "finished_at"}}
	for _, r := range runs {
		data = append(data, []string{
			r.ID.String(), r.Report, r.EvaluationDate.Format(report.DateLayout),
			fmt.Sprint(r.RowCount), fmt.Sprint(r.TotalSales), r.Format, r.Output,
			r.FinishedAt.Format("2006-01-02 15:04:05"),
		})
	}
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, pterm.DefaultSection.Sprint("Recent runs"))
	fmt.Fprintln(out, rendered)
	return nil
}
