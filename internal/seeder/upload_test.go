package seeder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMimeType(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://img.example.com/a/burger.png", "image/png"},
		{"https://img.example.com/a/burger.PNG", "image/png"},
		{"https://img.example.com/a/burger.webp?w=400", "image/webp"},
		{"https://img.example.com/a/burger.jpg", "image/jpeg"},
		{"https://img.example.com/a/burger.gif", "image/gif"},
		{"https://img.example.com/a/burger", DefaultImageType},
		{"https://img.example.com/a/burger.xyz123", DefaultImageType},
		{"https://img.example.com/a/menu.json", DefaultImageType},
	}

	for _, tt := range tests {
		if got := MimeType(tt.url); got != tt.want {
			t.Errorf("MimeType(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	now := time.Unix(1700000000, 0)

	if got := FileName("https://img.example.com/menu/pizza.png?v=2", now); got != "pizza.png" {
		t.Errorf("Expected pizza.png, got %s", got)
	}
	if got := FileName("https://img.example.com/", now); got != "file-1700000000.jpg" {
		t.Errorf("Expected fallback name, got %s", got)
	}
	if got := FileName("https://img.example.com", now); got != "file-1700000000.jpg" {
		t.Errorf("Expected fallback name, got %s", got)
	}
}

func TestUploadImageRejectsOversizedImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer srv.Close()

	f := newFixture(t)
	f.cfg.Seed.MaxImageBytes = 1024

	if _, err := f.seeder.UploadImage(context.Background(), srv.URL+"/big.png"); err == nil {
		t.Error("Expected oversized image to be rejected")
	}
	files, _ := f.store.ListFiles(context.Background(), f.cfg.Storage.BucketID)
	if len(files) != 0 {
		t.Errorf("Expected nothing stored, got %d files", len(files))
	}
}

func TestUploadImageHTTPError(t *testing.T) {
	srv := imageServer(t)
	f := newFixture(t)

	_, err := f.seeder.UploadImage(context.Background(), srv.URL+"/missing/a.png")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected 404 error, got %v", err)
	}
}

func TestUploadImageTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f := newFixture(t)
	f.cfg.Seed.FetchTimeout = 50 * time.Millisecond

	if _, err := f.seeder.UploadImage(context.Background(), srv.URL+"/slow.png"); err == nil {
		t.Error("Expected timeout error")
	}
}

func TestUploadImageReturnsViewURL(t *testing.T) {
	srv := imageServer(t)
	f := newFixture(t)

	viewURL, err := f.seeder.UploadImage(context.Background(), srv.URL+"/img/pizza.png")
	if err != nil {
		t.Fatalf("UploadImage failed: %v", err)
	}
	if !strings.HasPrefix(viewURL, "https://cloud.example.com/v1/storage/buckets/menu_images/files/") {
		t.Errorf("Unexpected view URL: %s", viewURL)
	}
	if !strings.HasSuffix(viewURL, "/view?project=food") {
		t.Errorf("Expected project query, got %s", viewURL)
	}
}
