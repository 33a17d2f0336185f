package database

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/menuseed/internal/config"
	"github.com/Lumos-Labs-HQ/menuseed/internal/database/localfs"
	"github.com/Lumos-Labs-HQ/menuseed/internal/database/memory"
	"github.com/Lumos-Labs-HQ/menuseed/internal/database/mongodb"
	"github.com/Lumos-Labs-HQ/menuseed/internal/database/relational"
	"github.com/spf13/afero"
)

type Backend struct {
	Documents DocumentStore
	Files     FileStore
}

func (b *Backend) Close() error {
	return b.Documents.Close()
}

// Open connects to the provider named in cfg. MongoDB keeps files in GridFS
// next to the documents; SQL providers keep them on the local filesystem.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Database.Provider {
	case "memory":
		store := memory.New(cfg.Endpoint, cfg.ProjectID)
		return &Backend{Documents: store, Files: store}, nil

	case "mongodb":
		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return nil, err
		}
		adapter := mongodb.New()
		if err := adapter.Connect(ctx, dbURL); err != nil {
			return nil, err
		}
		files := mongodb.NewBucketStore(adapter, cfg.Database.DatabaseID, cfg.Endpoint, cfg.ProjectID)
		return &Backend{Documents: adapter, Files: files}, nil

	case "postgresql", "postgres", "mysql", "sqlite", "sqlite3":
		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return nil, err
		}
		adapter, err := relational.New(cfg.Database.Provider)
		if err != nil {
			return nil, err
		}
		if err := adapter.Connect(ctx, dbURL); err != nil {
			return nil, err
		}
		files := localfs.New(afero.NewOsFs(), cfg.Storage.Dir, cfg.Endpoint, cfg.ProjectID)
		return &Backend{Documents: adapter, Files: files}, nil
	}

	return nil, fmt.Errorf("unsupported database provider: %s", cfg.Database.Provider)
}
