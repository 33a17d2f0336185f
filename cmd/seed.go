package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lumos-Labs-HQ/menuseed/internal/catalog"
	"github.com/Lumos-Labs-HQ/menuseed/internal/seeder"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seedData   string
	seedDryRun bool
	seedStrict bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Wipe and rebuild the catalog",
	Long: `Delete every category, customization, menu item, menu customization link
and menu image, then recreate them from the dataset.

The embedded dataset is used unless --data or seed.data_file names a YAML or
JSON file. Menu items whose category or image cannot be resolved are skipped
with a warning.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := ""
		if seedDryRun {
			provider = "memory"
		}
		cfg, err := loadConfig(provider)
		if err != nil {
			return err
		}

		dataFile := seedData
		if dataFile == "" {
			dataFile = cfg.Seed.DataFile
		}
		data, err := catalog.Load(dataFile)
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}

		if bad := data.ReservedImageURLs(); len(bad) > 0 {
			color.Yellow("⚠️  %d menu items have image URLs that cannot be fetched and will be skipped:", len(bad))
			for _, entry := range bad {
				color.Yellow("   %s", entry)
			}
			if seedStrict {
				return fmt.Errorf("refusing to clear the catalog: %d unfetchable image URLs", len(bad))
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		backend, err := openBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		if seedDryRun {
			color.Yellow("🧪 Dry run: writing to the in-memory backend")
		}

		report := seeder.New(cfg, backend.Documents, backend.Files).Seed(ctx, data)
		printReport(report)

		if seedStrict && !report.Clean() {
			return fmt.Errorf("seeding finished with %d warnings and %d clear failures", len(report.Warnings), len(report.ClearErrors()))
		}
		return nil
	},
}

func printReport(report *seeder.Report) {
	fmt.Println()
	color.Cyan("📊 Summary (%s)", report.Duration.Round(time.Millisecond))
	fmt.Printf("   Categories:      %d\n", report.Categories)
	fmt.Printf("   Customizations:  %d\n", report.Customizations)
	fmt.Printf("   Menu items:      %d\n", report.MenuItems)
	fmt.Printf("   Images:          %d\n", report.Images)
	fmt.Printf("   Links:           %d\n", report.Links)

	if n := len(report.Warnings); n > 0 {
		color.Yellow("   Warnings:        %s", humanize.Comma(int64(n)))
	}
	if n := len(report.ClearErrors()); n > 0 {
		color.Red("   Clear failures:  %s", humanize.Comma(int64(n)))
	}
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedData, "data", "", "Dataset file (YAML or JSON) to seed instead of the embedded one")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Seed the in-memory backend instead of the configured one")
	seedCmd.Flags().BoolVar(&seedStrict, "strict", false, "Exit non-zero when anything was skipped or failed")
}
