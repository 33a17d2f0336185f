package seeder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultImageType is used when the source URL has no recognizable image extension.
const DefaultImageType = "image/jpeg"

// UploadImage copies the image at sourceURL into the bucket under a fresh id
// and returns its public view URL.
func (s *Seeder) UploadImage(ctx context.Context, sourceURL string) (string, error) {
	body, err := s.fetch(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	bucketID := s.config.Storage.BucketID
	name := FileName(sourceURL, s.now())
	mimeType := MimeType(sourceURL)

	file, err := s.files.CreateFile(ctx, bucketID, s.newID(), name, mimeType, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to store %s: %w", name, err)
	}

	s.info("  🖼️  Uploaded %s (%s, %s)", name, mimeType, humanize.Bytes(uint64(file.Size)))
	return s.files.FileViewURL(bucketID, file.ID), nil
}

func (s *Seeder) fetch(ctx context.Context, sourceURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Seed.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch image: unexpected status %s", resp.Status)
	}

	limit := s.config.Seed.MaxImageBytes
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("image larger than %s", humanize.Bytes(uint64(limit)))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("image is empty")
	}
	return body, nil
}

// MimeType infers the content type from the URL path's extension.
func MimeType(sourceURL string) string {
	p := sourceURL
	if u, err := url.Parse(sourceURL); err == nil {
		p = u.Path
	}

	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return DefaultImageType
	}

	mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return DefaultImageType
	}
	return mediaType
}

// FileName is the last path segment of the URL, or file-<unix>.jpg when the
// URL has none.
func FileName(sourceURL string, now time.Time) string {
	p := sourceURL
	if u, err := url.Parse(sourceURL); err == nil {
		p = u.Path
	}

	name := path.Base(p)
	if name == "" || name == "." || name == "/" {
		return fmt.Sprintf("file-%d.jpg", now.Unix())
	}
	return name
}
