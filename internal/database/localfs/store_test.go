package localfs

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestCreateListDelete(t *testing.T) {
	ctx := context.Background()
	store := New(afero.NewMemMapFs(), "/data", "https://cloud.example.com/v1", "proj")

	file, err := store.CreateFile(ctx, "menu_images", "abc123", "burger.png", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}
	if file.Size != int64(len("png-bytes")) {
		t.Errorf("Expected size %d, got %d", len("png-bytes"), file.Size)
	}

	files, err := store.ListFiles(ctx, "menu_images")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 1 || files[0].ID != "abc123" || files[0].Name != "burger.png" {
		t.Fatalf("Unexpected listing: %+v", files)
	}
	if files[0].MimeType != "image/png" {
		t.Errorf("Expected image/png, got %s", files[0].MimeType)
	}

	if err := store.DeleteFile(ctx, "menu_images", "abc123"); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	if err := store.DeleteFile(ctx, "menu_images", "abc123"); err == nil {
		t.Error("Expected error deleting a missing file")
	}

	files, _ = store.ListFiles(ctx, "menu_images")
	if len(files) != 0 {
		t.Errorf("Expected empty bucket, got %+v", files)
	}
}

func TestListMissingBucketIsEmpty(t *testing.T) {
	store := New(afero.NewMemMapFs(), "/data", "", "")
	files, err := store.ListFiles(context.Background(), "nothing_here")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected no files, got %d", len(files))
	}
}

func TestRejectsPathTraversal(t *testing.T) {
	ctx := context.Background()
	store := New(afero.NewMemMapFs(), "/data", "", "")

	if _, err := store.CreateFile(ctx, "../etc", "id1", "x.png", "image/png", strings.NewReader("x")); err == nil {
		t.Error("Expected invalid bucket id to be rejected")
	}
	if _, err := store.CreateFile(ctx, "bucket", "../id1", "x.png", "image/png", strings.NewReader("x")); err == nil {
		t.Error("Expected invalid file id to be rejected")
	}

	file, err := store.CreateFile(ctx, "bucket", "id2", "../../escape.png", "image/png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}
	if file.Name != "escape.png" {
		t.Errorf("Expected name to be reduced to its base, got %s", file.Name)
	}
}

func TestFileViewURL(t *testing.T) {
	store := New(afero.NewMemMapFs(), "/data", "https://cloud.example.com/v1/", "proj")
	got := store.FileViewURL("menu_images", "abc")
	want := "https://cloud.example.com/v1/storage/buckets/menu_images/files/abc/view?project=proj"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
