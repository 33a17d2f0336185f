package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/menuseed/internal/config"
	"github.com/Lumos-Labs-HQ/menuseed/internal/database"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔════════════════════════════════════════════════╗",
		"║   ███╗   ███╗███████╗███╗   ██╗██╗   ██╗      ║",
		"║   ████╗ ████║██╔════╝████╗  ██║██║   ██║      ║",
		"║   ██╔████╔██║█████╗  ██╔██╗ ██║██║   ██║      ║",
		"║   ██║╚██╔╝██║██╔══╝  ██║╚██╗██║██║   ██║      ║",
		"║   ██║ ╚═╝ ██║███████╗██║ ╚████║╚██████╔╝      ║",
		"║   ╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝ ╚═════╝  seed ║",
		"║                                                ║",
		"║        🍕 Food catalog seeder 🍔               ║",
		"╚════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "menuseed",
	Short: "Rebuild a food-ordering catalog from a bundled dataset",
	Long: `
menuseed wipes and rebuilds the catalog of a food-ordering backend:
categories, customizations, menu items, the links between menu items and
customizations, and the menu images in the storage bucket.

Backends:
- MongoDB (documents + GridFS bucket)
- PostgreSQL, MySQL, SQLite (documents + filesystem bucket)
- memory (dry runs)`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("menuseed version %s\n", Version)
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
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("menuseed.config")
	}

	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			color.Yellow("⚠️  Could not read config file: %v", err)
		}
	}
}

// loadConfig reads and validates the configuration, optionally forcing a provider.
func loadConfig(provider string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if provider != "" {
		cfg.Database.Provider = provider
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (*database.Backend, error) {
	backend, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := backend.Documents.Ping(ctx); err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return backend, nil
}
