package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lumos-Labs-HQ/menuseed/internal/seeder"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the catalog without reseeding",
	Long: `Delete every document in the catalog collections (join records first)
and every file in the image bucket.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig("")
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		backend, err := openBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		failed := 0
		for _, result := range seeder.New(cfg, backend.Documents, backend.Files).ClearAll(ctx) {
			if result.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of the catalog targets were not fully cleared", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
