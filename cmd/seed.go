package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lumos-Labs-HQ/airseed/internal/config"
	"github.com/Lumos-Labs-HQ/airseed/internal/export"
	"github.com/Lumos-Labs-HQ/airseed/internal/logger"
	"github.com/Lumos-Labs-HQ/airseed/internal/seeder"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate passengers, flights and bookings",
	Long: `
Generate a full airline demo dataset and write it to the output directory.

Examples:
  airseed seed
  airseed seed --scale 10 --seed 42 --format sql
  airseed seed --variant basic --offline --out ./data
  airseed seed --format sqlite --s3-bucket demo-data --s3-prefix runs/42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
			color.Cyan("🎲 No seed given, using %d (pass --seed %d to reproduce this run)", cfg.Seed, cfg.Seed)
		}

		if err := cfg.Validate(); err != nil {
			color.Red("❌ %v", err)
			return err
		}

		sc, err := seeder.FromConfig(cfg, time.Now())
		if err != nil {
			color.Red("❌ %v", err)
			return err
		}

		sink, err := export.New(cfg.Output.Format, cfg.Output.Dir, export.Options{ChunkSize: cfg.Output.ChunkSize})
		if err != nil {
			return err
		}

		ctx := context.Background()
		result, err := seeder.New(sink).Run(ctx, sc)
		if err != nil {
			logger.ErrorWithStack(err)
			color.Red("❌ Generation failed: %v", err)
			return err
		}

		printSummary(result)

		if cfg.Output.S3.Bucket != "" {
			files := append(append([]string(nil), result.Files...), result.Manifest)
			if err := publish(ctx, cfg.Output.S3, files); err != nil {
				logger.ErrorWithStack(err)
				color.Red("❌ Upload failed: %v", err)
				color.Yellow("💡 Local files in %s are complete; re-run the upload or copy them manually.", cfg.Output.Dir)
				return err
			}
		}

		printLoadHints(cfg.Output.Format, cfg.Output.Dir, result.Files)
		return nil
	},
}

func printSummary(result *seeder.Result) {
	fmt.Println()
	color.Cyan("📊 Run %s (seed %d, catalog %s)", result.RunID, result.Seed, result.CatalogSource)
	for _, name := range result.Order {
		fmt.Printf("   %-10s %d rows\n", name, result.Counts[name])
	}
	for _, f := range result.Files {
		color.Green("   📄 %s", f)
	}
	if result.Manifest != "" {
		color.Green("   📄 %s", result.Manifest)
	}
}

func publish(ctx context.Context, cfg config.S3, files []string) error {
	color.Cyan("☁️  Uploading %d files to s3://%s/%s", len(files), cfg.Bucket, cfg.Prefix)
	p, err := export.NewS3Publisher(ctx, cfg)
	if err != nil {
		return err
	}
	urls, err := p.Publish(ctx, files)
	for _, u := range urls {
		color.Green("   ✅ %s", u)
	}
	return err
}

func printLoadHints(format, dir string, files []string) {
	fmt.Println()
	color.Yellow("💡 To load the data:")
	switch format {
	case export.FormatCSV:
		fmt.Printf("   cd %s && psql -d <database> -f load_csv.sql\n", dir)
	case export.FormatSQL:
		for _, f := range files {
			fmt.Printf("   psql -d <database> -f %s\n", f)
		}
	case export.FormatSQLite:
		fmt.Printf("   sqlite3 %s\n", filepath.Join(dir, export.SQLiteFile))
	case export.FormatJSON:
		fmt.Printf("   import the JSON files in %s with your loader of choice\n", dir)
	}
}

func init() {
	seedCmd.Flags().IntP("scale", "s", 1, "Scale factor (1-1000)")
	seedCmd.Flags().Int64("seed", 0, "Random seed (0 derives one from the clock)")
	seedCmd.Flags().StringP("format", "f", "csv", "Output format (csv, sql, json, sqlite)")
	seedCmd.Flags().StringP("out", "o", ".", "Output directory")
	seedCmd.Flags().String("variant", config.VariantEnhanced, "Generation variant (basic, enhanced)")
	seedCmd.Flags().Bool("offline", false, "Skip OpenFlights and use the built-in catalog")
	seedCmd.Flags().String("base-date", "", "First schedulable day, YYYY-MM-DD (default today, UTC)")
	seedCmd.Flags().Int("chunk-size", export.DefaultChunkSize, "Rows per INSERT statement for the sql format")
	seedCmd.Flags().String("s3-bucket", "", "Upload the output to this S3 bucket")
	seedCmd.Flags().String("s3-prefix", "", "Key prefix for the S3 upload")

	viper.BindPFlag("scale", seedCmd.Flags().Lookup("scale"))
	viper.BindPFlag("seed", seedCmd.Flags().Lookup("seed"))
	viper.BindPFlag("output.format", seedCmd.Flags().Lookup("format"))
	viper.BindPFlag("output.dir", seedCmd.Flags().Lookup("out"))
	viper.BindPFlag("variant", seedCmd.Flags().Lookup("variant"))
	viper.BindPFlag("catalog.offline", seedCmd.Flags().Lookup("offline"))
	viper.BindPFlag("base_date", seedCmd.Flags().Lookup("base-date"))
	viper.BindPFlag("output.chunk_size", seedCmd.Flags().Lookup("chunk-size"))
	viper.BindPFlag("output.s3.bucket", seedCmd.Flags().Lookup("s3-bucket"))
	viper.BindPFlag("output.s3.prefix", seedCmd.Flags().Lookup("s3-prefix"))
}
