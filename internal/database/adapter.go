package database

import (
	"context"
	"io"

	"github.com/Lumos-Labs-HQ/menuseed/internal/types"
)

// DocumentStore is the document half of the backend. Every call is scoped by
// database id and collection id.
type DocumentStore interface {
	Ping(ctx context.Context) error
	Close() error

	ListDocuments(ctx context.Context, databaseID, collectionID string) ([]types.Document, error)
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, fields map[string]interface{}) (*types.Document, error)
	DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error
	CountDocuments(ctx context.Context, databaseID, collectionID string) (int64, error)
}

// FileStore is the file bucket half of the backend.
type FileStore interface {
	ListFiles(ctx context.Context, bucketID string) ([]types.File, error)
	CreateFile(ctx context.Context, bucketID, fileID, name, mimeType string, content io.Reader) (*types.File, error)
	DeleteFile(ctx context.Context, bucketID, fileID string) error
	FileViewURL(bucketID, fileID string) string
}
