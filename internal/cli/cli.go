//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-salesreport.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesreport/internal/config"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/report"
	"github.com/pgEdge/pgedge-salesreport/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	source     string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-salesreport",
		Short: "Customer and product sales analytics over a star-schema warehouse",
		Long: `pgedge-salesreport reads a sales warehouse (a sales fact table with
customer and product dimensions) from PostgreSQL, MySQL or CSV files and
builds customer and product reports: lifetime metrics, KPIs, rule-based
segments and revenue rankings.

The init command creates and populates a PostgreSQL warehouse, either with
generated data or from CSV files, so reports can be tried out immediately.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-salesreport.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"warehouse connection string (postgres:// or mysql://)")
	rootCmd.PersistentFlags().StringVar(&source, "source", "",
		"report source: postgres, mysql or csv")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(segmentsCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if source != "" {
		cfg.Source = source
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "List the segmentation rules",
	Long: `List every rule set applied by the reports. Rules are evaluated top
to bottom; the first matching rule assigns its label and the default applies
when none match.`,
	Run: func(cmd *cobra.Command, args []string) {
		printRuleSets(cmd.OutOrStdout(), "Customer segments", report.CustomerRuleSets())
		fmt.Fprintln(cmd.OutOrStdout())
		printRuleSets(cmd.OutOrStdout(), "Product segments", report.ProductRuleSets())
	},
}

func printRuleSets(out io.Writer, title string, sets []*report.RuleSet) {
	fmt.Fprintf(out, "%s:\n", title)
	for _, rs := range sets {
		width := len(rs.Default)
		for _, r := range rs.Rules {
			width = max(width, len(r.Label))
		}

		fmt.Fprintf(out, "\n  %s\n", rs.Name)
		for _, r := range rs.Rules {
			fmt.Fprintf(out, "    %-*s  %s\n", width, r.Label, r.Condition)
		}
		fmt.Fprintf(out, "    %-*s  otherwise\n", width, rs.Default)
	}
}
