package mongodb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Lumos-Labs-HQ/menuseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/menuseed/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BucketStore keeps files in GridFS. Each bucket id maps to a GridFS bucket
// (<bucket>.files / <bucket>.chunks) in the configured database.
type BucketStore struct {
	adapter    *Adapter
	databaseID string
	endpoint   string
	projectID  string
}

type gridFile struct {
	ID         interface{} `bson:"_id"`
	Name       string      `bson:"filename"`
	Length     int64       `bson:"length"`
	UploadDate time.Time   `bson:"uploadDate"`
	Metadata   bson.M      `bson:"metadata,omitempty"`
}

func NewBucketStore(adapter *Adapter, databaseID, endpoint, projectID string) *BucketStore {
	return &BucketStore{
		adapter:    adapter,
		databaseID: databaseID,
		endpoint:   endpoint,
		projectID:  projectID,
	}
}

func (s *BucketStore) bucket(ctx context.Context, bucketID string) (*gridfs.Bucket, error) {
	db, err := s.adapter.database(s.databaseID)
	if err != nil {
		return nil, err
	}
	b, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketID))
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", bucketID, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		b.SetReadDeadline(deadline)
		b.SetWriteDeadline(deadline)
	}
	return b, nil
}

func (s *BucketStore) ListFiles(ctx context.Context, bucketID string) ([]types.File, error) {
	b, err := s.bucket(ctx, bucketID)
	if err != nil {
		return nil, err
	}

	cursor, err := b.Find(bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list files in %s: %w", bucketID, err)
	}
	defer cursor.Close(ctx)

	var found []gridFile
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode files in %s: %w", bucketID, err)
	}

	files := make([]types.File, 0, len(found))
	for _, f := range found {
		mimeType, _ := f.Metadata["contentType"].(string)
		files = append(files, types.File{
			ID:        idString(f.ID),
			Name:      f.Name,
			MimeType:  mimeType,
			Size:      f.Length,
			CreatedAt: f.UploadDate,
		})
	}
	return files, nil
}

func (s *BucketStore) CreateFile(ctx context.Context, bucketID, fileID, name, mimeType string, content io.Reader) (*types.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := s.bucket(ctx, bucketID)
	if err != nil {
		return nil, err
	}

	counter := &countingReader{r: content}
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": mimeType})
	if err := b.UploadFromStreamWithID(fileID, name, counter, opts); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", name, err)
	}

	return &types.File{
		ID:        fileID,
		Name:      name,
		MimeType:  mimeType,
		Size:      counter.n,
		CreatedAt: time.Now(),
	}, nil
}

func (s *BucketStore) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := s.bucket(ctx, bucketID)
	if err != nil {
		return err
	}

	err = b.Delete(fileID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		if oid, hexErr := primitive.ObjectIDFromHex(fileID); hexErr == nil {
			err = b.Delete(oid)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}

func (s *BucketStore) FileViewURL(bucketID, fileID string) string {
	return common.ViewURL(s.endpoint, s.projectID, bucketID, fileID)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
