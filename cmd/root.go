package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lumos-Labs-HQ/airseed/internal/config"
	"github.com/Lumos-Labs-HQ/airseed/internal/logger"
)

var (
	cfgFile string
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════╗",
		"║      █████╗ ██╗██████╗ ███████╗███████╗██████╗    ║",
		"║     ██╔══██╗██║██╔══██╗██╔════╝██╔════╝██╔══██╗   ║",
		"║     ███████║██║██████╔╝███████╗█████╗  ██║  ██║   ║",
		"║     ██╔══██║██║██╔══██╗╚════██║██╔══╝  ██║  ██║   ║",
		"║     ██║  ██║██║██║  ██║███████║███████╗██████╔╝   ║",
		"║     ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝╚══════╝╚══════╝╚═════╝    ║",
		"║                                                  ║",
		"║        ✈  Reproducible Airline Demo Data ✈       ║",
		"╚══════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                 ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "airseed",
	Short: "Generate reproducible airline demo data",
	Long: `
airseed generates passengers, flights and bookings over a catalog of real
airports and routes, and writes them as files ready to load into a database.

Output formats:
- CSV (with a psql \COPY script)
- SQL (chunked INSERT scripts)
- JSON
- SQLite (a single database file)

The same seed, scale and base date always produce the same bytes.`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLogLevel(viper.GetString("log_level"))
	},

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("airseed version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	RegisterBaseCommands()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	logger.InitLogger(nil)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./airseed.config.json)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	config.SetDefaults(viper.GetViper())
	config.ConfigureEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName(config.ConfigName)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			color.Yellow("⚠️  Could not read config: %v", err)
		}
	}
}
