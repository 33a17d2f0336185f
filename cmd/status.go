package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is currently in the catalog",
	Long: `Show the number of documents in each catalog collection and the number
and total size of files in the image bucket.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig("")
		if err != nil {
			return err
		}

		ctx := context.Background()
		backend, err := openBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		color.Cyan("📦 %s (%s)", cfg.Database.DatabaseID, cfg.Database.Provider)

		c := cfg.Collections
		for _, collectionID := range []string{c.Categories, c.Customizations, c.Menu, c.MenuCustomizations} {
			count, err := backend.Documents.CountDocuments(ctx, cfg.Database.DatabaseID, collectionID)
			if err != nil {
				return fmt.Errorf("failed to count %s: %w", collectionID, err)
			}
			fmt.Printf("   %-22s %s\n", collectionID, humanize.Comma(count))
		}

		files, err := backend.Files.ListFiles(ctx, cfg.Storage.BucketID)
		if err != nil {
			return fmt.Errorf("failed to list bucket %s: %w", cfg.Storage.BucketID, err)
		}
		var size int64
		for _, f := range files {
			size += f.Size
		}
		fmt.Printf("   %-22s %d files, %s\n", cfg.Storage.BucketID, len(files), humanize.Bytes(uint64(size)))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
