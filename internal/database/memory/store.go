// Package memory keeps documents and files in process memory. It backs
// --dry-run and the seeder tests.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/menuseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/menuseed/internal/types"
)

// Hooks inject failures. A non-nil error returned from a hook aborts the call
// before anything is changed.
type Hooks struct {
	List   func(collectionID string) error
	Create func(collectionID string, fields map[string]interface{}) error
	Delete func(collectionID, documentID string) error
	Upload func(bucketID, name string) error
	Remove func(bucketID, fileID string) error
}

type storedFile struct {
	info types.File
	data []byte
}

type Store struct {
	mu        sync.Mutex
	endpoint  string
	projectID string
	docs      map[string][]types.Document
	files     map[string][]storedFile
	Hooks     Hooks
}

func New(endpoint, projectID string) *Store {
	return &Store{
		endpoint:  endpoint,
		projectID: projectID,
		docs:      make(map[string][]types.Document),
		files:     make(map[string][]storedFile),
	}
}

func key(databaseID, collectionID string) string {
	return databaseID + "/" + collectionID
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }

func (s *Store) ListDocuments(ctx context.Context, databaseID, collectionID string) ([]types.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Hooks.List != nil {
		if err := s.Hooks.List(collectionID); err != nil {
			return nil, err
		}
	}
	return s.Documents(databaseID, collectionID), nil
}

func (s *Store) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, fields map[string]interface{}) (*types.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Hooks.Create != nil {
		if err := s.Hooks.Create(collectionID, fields); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(databaseID, collectionID)
	for _, d := range s.docs[k] {
		if d.ID == documentID {
			return nil, fmt.Errorf("document %s already exists in %s", documentID, collectionID)
		}
	}

	copied := make(map[string]interface{}, len(fields))
	for name, v := range fields {
		copied[name] = v
	}
	doc := types.Document{ID: documentID, Fields: copied}
	s.docs[k] = append(s.docs[k], doc)
	return &doc, nil
}

func (s *Store) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Hooks.Delete != nil {
		if err := s.Hooks.Delete(collectionID, documentID); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(databaseID, collectionID)
	docs := s.docs[k]
	for i, d := range docs {
		if d.ID == documentID {
			s.docs[k] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("document %s not found in %s", documentID, collectionID)
}

func (s *Store) CountDocuments(ctx context.Context, databaseID, collectionID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.docs[key(databaseID, collectionID)])), nil
}

// Documents returns a snapshot of a collection in insertion order.
func (s *Store) Documents(databaseID, collectionID string) []types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.docs[key(databaseID, collectionID)]
	out := make([]types.Document, len(docs))
	copy(out, docs)
	return out
}

func (s *Store) ListFiles(ctx context.Context, bucketID string) ([]types.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	files := s.files[bucketID]
	out := make([]types.File, 0, len(files))
	for _, f := range files {
		out = append(out, f.info)
	}
	return out, nil
}

func (s *Store) CreateFile(ctx context.Context, bucketID, fileID, name, mimeType string, content io.Reader) (*types.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Hooks.Upload != nil {
		if err := s.Hooks.Upload(bucketID, name); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info := types.File{
		ID:        fileID,
		Name:      name,
		MimeType:  mimeType,
		Size:      int64(buf.Len()),
		CreatedAt: time.Now(),
	}
	s.files[bucketID] = append(s.files[bucketID], storedFile{info: info, data: buf.Bytes()})
	return &info, nil
}

func (s *Store) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Hooks.Remove != nil {
		if err := s.Hooks.Remove(bucketID, fileID); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files := s.files[bucketID]
	for i, f := range files {
		if f.info.ID == fileID {
			s.files[bucketID] = append(files[:i:i], files[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("file %s not found in bucket %s", fileID, bucketID)
}

func (s *Store) FileViewURL(bucketID, fileID string) string {
	return common.ViewURL(s.endpoint, s.projectID, bucketID, fileID)
}

// FileContent returns the bytes stored for a file.
func (s *Store) FileContent(bucketID, fileID string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.files[bucketID] {
		if f.info.ID == fileID {
			return f.data, true
		}
	}
	return nil, false
}
