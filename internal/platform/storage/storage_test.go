package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestUploadWritesFileAndReturnsURL(t *testing.T) {
	store := New(t.TempDir(), "/files/")

	url, err := store.Upload(context.Background(), "applications/1001/dependent-add/income.pdf", []byte("data"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if url != "/files/applications/1001/dependent-add/income.pdf" {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), "applications", "1001", "dependent-add", "income.pdf"))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "data" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestUploadRejectsTraversal(t *testing.T) {
	store := New(t.TempDir(), "/files")
	if _, err := store.Upload(context.Background(), "../outside.txt", []byte("x")); err == nil {
		t.Fatal("expected traversal path to be rejected")
	}
}
