package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandleEnvFile(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	if err := handleEnvFile("DATABASE_URL=mongodb://localhost:27017\n"); err != nil {
		t.Fatalf("handleEnvFile failed: %v", err)
	}
	content, _ := os.ReadFile(filepath.Join(dir, ".env"))
	if string(content) != "DATABASE_URL=mongodb://localhost:27017\n" {
		t.Errorf("Unexpected .env content: %q", content)
	}

	os.WriteFile(filepath.Join(dir, ".env"), []byte("API_KEY=abc"), 0644)
	if err := handleEnvFile("DATABASE_URL=mongodb://localhost:27017\n"); err != nil {
		t.Fatalf("handleEnvFile failed: %v", err)
	}
	content, _ = os.ReadFile(filepath.Join(dir, ".env"))
	if !strings.HasPrefix(string(content), "API_KEY=abc\n") || !strings.Contains(string(content), "DATABASE_URL=") {
		t.Errorf("Expected DATABASE_URL appended, got %q", content)
	}

	before := string(content)
	handleEnvFile("DATABASE_URL=other\n")
	content, _ = os.ReadFile(filepath.Join(dir, ".env"))
	if string(content) != before {
		t.Error("Expected existing DATABASE_URL to be left alone")
	}
}
