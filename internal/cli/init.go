package cli

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesreport/internal/datagen"
	"github.com/pgEdge/pgedge-salesreport/internal/datagen/demand"
	"github.com/pgEdge/pgedge-salesreport/internal/db"
	"github.com/pgEdge/pgedge-salesreport/internal/logging"
	"github.com/pgEdge/pgedge-salesreport/internal/warehouse"
)

var (
	initCustomers    int
	initProducts     int
	initOrders       int
	initSeed         uint64
	initPattern      string
	initCSVDir       string
	initDropExisting bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create and populate the sales warehouse",
	Long: `Create the gold schema (dim_customers, dim_products, fact_sales) in a
PostgreSQL database and populate it, either with generated data or by loading
dim_customers.csv, dim_products.csv and fact_sales.csv from a directory.

Example:
  pgedge-salesreport init --connection "postgres://..." --orders 50000 --seed 42
  pgedge-salesreport init --connection "postgres://..." --csv-dir ./datasets`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().IntVar(&initCustomers, "customers", 0,
		"number of customers to generate (default: 1000)")
	initCmd.Flags().IntVar(&initProducts, "products", 0,
		"number of products to generate (default: 200)")
	initCmd.Flags().IntVar(&initOrders, "orders", 0,
		"number of orders to generate (default: 20000)")
	initCmd.Flags().Uint64Var(&initSeed, "seed", 0,
		"random seed for reproducible data (0 = random)")
	initCmd.Flags().StringVar(&initPattern, "pattern", "",
		"demand pattern for generated orders: flat, retail, business (default: flat)")
	initCmd.Flags().StringVar(&initCSVDir, "csv-dir", "",
		"load warehouse CSV files from this directory instead of generating data")
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop the existing warehouse before initialization")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if initCustomers > 0 {
		cfg.Init.Customers = initCustomers
	}
	if initProducts > 0 {
		cfg.Init.Products = initProducts
	}
	if initOrders > 0 {
		cfg.Init.Orders = initOrders
	}
	if initSeed > 0 {
		cfg.Init.Seed = initSeed
	}
	if initPattern != "" {
		cfg.Init.Pattern = initPattern
	}
	if initCSVDir != "" {
		cfg.Init.CSVDir = initCSVDir
	}
	if initDropExisting {
		cfg.Init.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateInit(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Refuse to load twice into the same warehouse
	exists, err := db.MetadataExists(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to check metadata: %w", err)
	}
	if exists && !cfg.Init.DropExisting {
		mode, _ := db.GetMetadataValue(ctx, pool, "mode")
		return fmt.Errorf(
			"warehouse was already initialized (%s); use --drop-existing to reinitialize", mode)
	}

	if cfg.Init.DropExisting {
		logging.Info().Msg("Dropping existing warehouse")
		if err := warehouse.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := warehouse.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	batch := datagen.DefaultBatchConfig()
	info := db.InitInfo{Mode: "generated", Seed: cfg.Init.Seed}

	if cfg.Init.CSVDir != "" {
		snap, err := warehouse.LoadCSVDir(ctx, pool, cfg.Init.CSVDir, batch)
		if err != nil {
			return fmt.Errorf("failed to load CSV files: %w", err)
		}
		info.Mode = "csv"
		info.Customers = len(snap.Customers)
		info.Products = len(snap.Products)
		info.Orders = len(snap.Sales)
	} else {
		pattern, err := demand.Get(cfg.Init.Pattern)
		if err != nil {
			return err
		}
		info.Pattern = pattern.Name()

		spinner, _ := pterm.DefaultSpinner.Start("Generating warehouse data...")
		snap := warehouse.NewGenerator(warehouse.GeneratorConfig{
			Customers: cfg.Init.Customers,
			Products:  cfg.Init.Products,
			Orders:    cfg.Init.Orders,
			Seed:      cfg.Init.Seed,
			Pattern:   pattern,
		}).Generate()
		spinner.Success(fmt.Sprintf("Generated %d sales lines", len(snap.Sales)))

		if err := warehouse.Insert(ctx, pool, snap, batch); err != nil {
			return fmt.Errorf("failed to load generated data: %w", err)
		}
		info.Customers = cfg.Init.Customers
		info.Products = cfg.Init.Products
		info.Orders = cfg.Init.Orders
	}

	if err := db.SaveMetadata(ctx, pool, info); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("mode", info.Mode).
		Int("customers", info.Customers).
		Int("products", info.Products).
		Int("orders", info.Orders).
		Msg("Warehouse initialization complete")
	pterm.Success.Printfln("Warehouse initialized (%s)", info.Mode)

	return nil
}
