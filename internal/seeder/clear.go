package seeder

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// ClearAll wipes every catalog collection, join records first, then the bucket.
func (s *Seeder) ClearAll(ctx context.Context) []ClearResult {
	var results []ClearResult
	for _, collectionID := range s.config.Collections.ClearOrder() {
		results = append(results, s.ClearCollection(ctx, collectionID))
	}
	return append(results, s.ClearFileStorage(ctx))
}

// ClearCollection deletes every document in a collection. Deletes run
// concurrently and a failed delete never cancels its siblings.
func (s *Seeder) ClearCollection(ctx context.Context, collectionID string) ClearResult {
	result := ClearResult{Target: collectionID}
	dbID := s.config.Database.DatabaseID

	docs, err := s.docs.ListDocuments(ctx, dbID, collectionID)
	if err != nil {
		result.Err = err
		s.fail("❌ Failed to clear documents in %s: %v", collectionID, err)
		return result
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}

	result.Total = len(ids)
	result.Deleted, result.Err = s.deleteAll(ctx, ids, func(ctx context.Context, id string) error {
		return s.docs.DeleteDocument(ctx, dbID, collectionID, id)
	})

	if result.Err != nil {
		s.fail("❌ Failed to clear documents in %s (%d of %d deletes failed): %v",
			collectionID, result.Failed(), result.Total, result.Err)
		return result
	}
	s.success("✅ Cleared %d documents in %s", result.Deleted, collectionID)
	return result
}

// ClearFileStorage deletes every file in the configured bucket, with the same
// best-effort semantics as ClearCollection.
func (s *Seeder) ClearFileStorage(ctx context.Context) ClearResult {
	bucketID := s.config.Storage.BucketID
	result := ClearResult{Target: bucketID}

	files, err := s.files.ListFiles(ctx, bucketID)
	if err != nil {
		result.Err = err
		s.fail("❌ Failed to clear storage bucket %s: %v", bucketID, err)
		return result
	}

	ids := make([]string, len(files))
	for i, f := range files {
		ids[i] = f.ID
	}

	result.Total = len(ids)
	result.Deleted, result.Err = s.deleteAll(ctx, ids, func(ctx context.Context, id string) error {
		return s.files.DeleteFile(ctx, bucketID, id)
	})

	if result.Err != nil {
		s.fail("❌ Failed to clear storage bucket %s (%d of %d deletes failed): %v",
			bucketID, result.Failed(), result.Total, result.Err)
		return result
	}
	s.success("✅ Cleared %d files in storage bucket %s", result.Deleted, bucketID)
	return result
}

// deleteAll fans out one delete per id, at most seed.concurrency at a time,
// and waits for all of them. Goroutines never return an error to the group so
// nothing short-circuits; each outcome lands in its own slot. A panicking
// delete is recorded as that id's failure.
func (s *Seeder) deleteAll(ctx context.Context, ids []string, del func(context.Context, string) error) (int, error) {
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(max(1, s.config.Seed.Concurrency))
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("%s: panic: %v", id, r)
				}
			}()
			if err := del(ctx, id); err != nil {
				errs[i] = fmt.Errorf("%s: %w", id, err)
			}
			return nil
		})
	}
	g.Wait()

	deleted := 0
	for _, err := range errs {
		if err == nil {
			deleted++
		}
	}
	return deleted, multierr.Combine(errs...)
}
