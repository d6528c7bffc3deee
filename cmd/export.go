package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/airseed/internal/config"
	"github.com/Lumos-Labs-HQ/airseed/internal/export"
	"github.com/Lumos-Labs-HQ/airseed/internal/logger"
	"github.com/Lumos-Labs-HQ/airseed/internal/seeder"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the airport, airline and route catalog",
	Long: `
Resolve the reference catalog (OpenFlights, or the built-in fallback) and
write its airport, airline and route tables.
Supported formats: csv (default), sql, json, sqlite

Examples:
  airseed export
  airseed export --format json --out ./catalog
  airseed export --offline --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("format") {
			cfg.Output.Format, _ = flags.GetString("format")
		}
		if flags.Changed("out") {
			cfg.Output.Dir, _ = flags.GetString("out")
		}
		if flags.Changed("offline") {
			cfg.Catalog.Offline, _ = flags.GetBool("offline")
		}
		if flags.Changed("seed") {
			cfg.Seed, _ = flags.GetInt64("seed")
		}

		if err := cfg.Validate(); err != nil {
			color.Red("❌ %v", err)
			return err
		}

		ctx := context.Background()
		color.Cyan("🌍 Resolving catalog...")
		cat := seeder.LoadCatalog(ctx, nil, cfg.Catalog, seeder.CatalogRand(cfg.Seed))

		sink, err := export.New(cfg.Output.Format, cfg.Output.Dir, export.Options{
			ChunkSize: cfg.Output.ChunkSize,
			Title:     "Airline Demo Catalog",
		})
		if err != nil {
			return err
		}

		for _, table := range cat.Tables() {
			if err := sink.Write(ctx, table); err != nil {
				sink.Abort()
				logger.ErrorWithStack(err)
				color.Red("❌ Export failed: %v", err)
				return err
			}
		}

		files, err := sink.Commit()
		if err != nil {
			color.Red("❌ Export failed: %v", err)
			return err
		}

		color.Green("✅ Export completed (%s catalog: %d airports, %d airlines, %d routes)",
			cat.Source, len(cat.Locations), len(cat.Carriers), len(cat.Routes))
		for _, f := range files {
			color.Green("   📄 %s", f)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "csv", "Output format (csv, sql, json, sqlite)")
	exportCmd.Flags().StringP("out", "o", ".", "Output directory")
	exportCmd.Flags().Bool("offline", false, "Skip OpenFlights and use the built-in catalog")
	exportCmd.Flags().Int64("seed", 0, "Seed for fallback carrier assignment")
}
