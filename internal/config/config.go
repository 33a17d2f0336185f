package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/menuseed/internal/database/common"
	"github.com/spf13/viper"
)

const (
	FileName  = "menuseed.config.json"
	EnvPrefix = "MENUSEED"
)

type Config struct {
	Version     string      `json:"version" mapstructure:"version"`
	Endpoint    string      `json:"endpoint" mapstructure:"endpoint"`
	ProjectID   string      `json:"project_id" mapstructure:"project_id"`
	Database    Database    `json:"database" mapstructure:"database"`
	Storage     Storage     `json:"storage" mapstructure:"storage"`
	Collections Collections `json:"collections" mapstructure:"collections"`
	Seed        Seed        `json:"seed" mapstructure:"seed"`
}

type Database struct {
	Provider   string `json:"provider" mapstructure:"provider"`
	URLEnv     string `json:"url_env" mapstructure:"url_env"`
	DatabaseID string `json:"database_id" mapstructure:"database_id"`
}

type Storage struct {
	BucketID string `json:"bucket_id" mapstructure:"bucket_id"`
	Dir      string `json:"dir" mapstructure:"dir"` // root of the filesystem bucket for SQL providers
}

type Collections struct {
	Categories         string `json:"categories" mapstructure:"categories"`
	Customizations     string `json:"customizations" mapstructure:"customizations"`
	Menu               string `json:"menu" mapstructure:"menu"`
	MenuCustomizations string `json:"menu_customizations" mapstructure:"menu_customizations"`
}

type Seed struct {
	DataFile      string        `json:"data_file,omitempty" mapstructure:"data_file"`
	Concurrency   int           `json:"concurrency" mapstructure:"concurrency"`
	FetchTimeout  time.Duration `json:"fetch_timeout" mapstructure:"fetch_timeout"`
	MaxImageBytes int64         `json:"max_image_bytes" mapstructure:"max_image_bytes"`
}

var defaults = map[string]interface{}{
	"version":                         "1",
	"endpoint":                        "http://localhost/v1",
	"project_id":                      "",
	"database.provider":               "mongodb",
	"database.url_env":                "DATABASE_URL",
	"database.database_id":            "food_ordering",
	"storage.bucket_id":               "menu_images",
	"storage.dir":                     "storage",
	"collections.categories":          "categories",
	"collections.customizations":      "customizations",
	"collections.menu":                "menu",
	"collections.menu_customizations": "menu_customizations",
	"seed.data_file":                  "",
	"seed.concurrency":                8,
	"seed.fetch_timeout":              "30s",
	"seed.max_image_bytes":            int64(10 << 20),
}

var supportedProviders = []string{"mongodb", "postgresql", "postgres", "mysql", "sqlite", "sqlite3", "memory"}

// SetDefaults registers every key with v so AutomaticEnv can override keys
// that are absent from the config file.
func SetDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration produced by an empty config file.
func Default() *Config {
	cfg, err := LoadFrom(viper.New())
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) GetDatabaseURL() (string, error) {
	if c.Database.Provider == "memory" {
		return "", nil
	}
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if !common.IsValidIdentifier(c.Database.DatabaseID) {
		return fmt.Errorf("database.database_id must be a valid identifier, got %q", c.Database.DatabaseID)
	}
	if !common.IsValidIdentifier(c.Storage.BucketID) {
		return fmt.Errorf("storage.bucket_id must be a valid identifier, got %q", c.Storage.BucketID)
	}

	seen := make(map[string]string)
	for key, id := range c.Collections.byKey() {
		if !common.IsValidIdentifier(id) {
			return fmt.Errorf("collections.%s must be a valid identifier, got %q", key, id)
		}
		if other, exists := seen[id]; exists {
			return fmt.Errorf("collections.%s and collections.%s both use collection %q", other, key, id)
		}
		seen[id] = key
	}

	if c.Seed.Concurrency < 1 {
		return fmt.Errorf("seed.concurrency must be at least 1, got %d", c.Seed.Concurrency)
	}
	if c.Seed.FetchTimeout <= 0 {
		return fmt.Errorf("seed.fetch_timeout must be positive")
	}
	if c.Seed.MaxImageBytes <= 0 {
		return fmt.Errorf("seed.max_image_bytes must be positive")
	}

	return nil
}

func (c Collections) byKey() map[string]string {
	return map[string]string{
		"categories":          c.Categories,
		"customizations":      c.Customizations,
		"menu":                c.Menu,
		"menu_customizations": c.MenuCustomizations,
	}
}

// ClearOrder lists the collections in the order they are wiped. Join records
// go first so nothing is left pointing at a deleted menu item or customization.
func (c Collections) ClearOrder() []string {
	return []string{c.MenuCustomizations, c.Menu, c.Customizations, c.Categories}
}

func (c *Config) IsSQLProvider() bool {
	switch c.Database.Provider {
	case "postgresql", "postgres", "mysql", "sqlite", "sqlite3":
		return true
	}
	return false
}
