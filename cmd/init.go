package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/menuseed/internal/config"
	"github.com/Lumos-Labs-HQ/menuseed/template"
	"github.com/spf13/cobra"
)

var (
	mongodbFlag    bool
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a menuseed config in the current directory",
	Long:  `Write ` + config.FileName + ` and a .env with an example DATABASE_URL for the chosen backend.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.MongoDB
		flagCount := 0

		if mongodbFlag {
			dbType = template.MongoDB
			flagCount++
		}
		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--mongodb, --sqlite, --postgresql, or --mysql)")
		}

		return initializeProject(dbType)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&mongodbFlag, "mongodb", false, "Initialize for MongoDB (default)")
	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize for SQLite")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize for PostgreSQL")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize for MySQL")
}

func initializeProject(dbType template.DatabaseType) error {
	if _, err := os.Stat(config.FileName); err == nil {
		return fmt.Errorf("%s already exists", config.FileName)
	}

	tmpl := template.NewProjectTemplate(dbType)

	directories := tmpl.GetDirectoryStructure()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	content, err := tmpl.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", config.FileName, err)
	}
	if err := os.WriteFile(config.FileName, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create file %s: %w", config.FileName, err)
	}

	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	fmt.Printf("✅ Initialized menuseed for %s\n", dbType)
	fmt.Println()
	fmt.Println("📝 Configuration file created:")
	fmt.Printf("   %s\n", config.FileName)
	for _, dir := range directories {
		fmt.Printf("📁 Image bucket directory: %s/\n", dir)
	}

	if os.Getenv("DATABASE_URL") != "" {
		fmt.Println()
		fmt.Println("ℹ️  Using existing DATABASE_URL from environment")
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   menuseed seed --dry-run   # Check the dataset and image URLs\n")
	fmt.Printf("   menuseed seed             # Rebuild the catalog\n")
	fmt.Printf("   menuseed status           # Inspect the result\n")

	return nil
}

// handleEnvFile writes .env, or appends DATABASE_URL to an existing one that lacks it.
func handleEnvFile(defaultEnvContent string) error {
	envPath := ".env"

	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}

	existingStr += "\n# Added by menuseed\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
