// Package localfs stores bucket files on a filesystem, one directory per file:
// <root>/<bucket>/<file id>/<file name>.
package localfs

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lumos-Labs-HQ/menuseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/menuseed/internal/types"
	"github.com/spf13/afero"
)

type Store struct {
	fs        afero.Fs
	root      string
	endpoint  string
	projectID string
}

func New(fs afero.Fs, root, endpoint, projectID string) *Store {
	return &Store{fs: fs, root: root, endpoint: endpoint, projectID: projectID}
}

func (s *Store) bucketDir(bucketID string) (string, error) {
	if !common.IsValidIdentifier(bucketID) {
		return "", fmt.Errorf("invalid bucket id: %q", bucketID)
	}
	return filepath.Join(s.root, bucketID), nil
}

func (s *Store) fileDir(bucketID, fileID string) (string, error) {
	dir, err := s.bucketDir(bucketID)
	if err != nil {
		return "", err
	}
	if fileID == "" || strings.ContainsAny(fileID, `/\.`) {
		return "", fmt.Errorf("invalid file id: %q", fileID)
	}
	return filepath.Join(dir, fileID), nil
}

func (s *Store) ListFiles(ctx context.Context, bucketID string) ([]types.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := s.bucketDir(bucketID)
	if err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list bucket %s: %w", bucketID, err)
	}

	var files []types.File
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		contents, err := afero.ReadDir(s.fs, filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", entry.Name(), err)
		}
		for _, c := range contents {
			if c.IsDir() {
				continue
			}
			files = append(files, types.File{
				ID:        entry.Name(),
				Name:      c.Name(),
				MimeType:  mime.TypeByExtension(filepath.Ext(c.Name())),
				Size:      c.Size(),
				CreatedAt: c.ModTime(),
			})
			break
		}
	}
	return files, nil
}

func (s *Store) CreateFile(ctx context.Context, bucketID, fileID, name, mimeType string, content io.Reader) (*types.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := s.fileDir(bucketID, fileID)
	if err != nil {
		return nil, err
	}

	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." {
		name = fileID
	}

	if exists, _ := afero.DirExists(s.fs, dir); exists {
		return nil, fmt.Errorf("file %s already exists in bucket %s", fileID, bucketID)
	}
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := afero.WriteReader(s.fs, path, content); err != nil {
		s.fs.RemoveAll(dir)
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, err
	}

	return &types.File{
		ID:        fileID,
		Name:      name,
		MimeType:  mimeType,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

func (s *Store) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, err := s.fileDir(bucketID, fileID)
	if err != nil {
		return err
	}
	exists, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("file %s not found in bucket %s", fileID, bucketID)
	}
	return s.fs.RemoveAll(dir)
}

func (s *Store) FileViewURL(bucketID, fileID string) string {
	return common.ViewURL(s.endpoint, s.projectID, bucketID, fileID)
}
