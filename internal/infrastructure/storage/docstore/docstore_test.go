package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shopinvoice/internal/core/apperror"
)

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "does-not-exist"))
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeStorageUnavailable {
		t.Fatalf("expected STORAGE_UNAVAILABLE, got %v", err)
	}
}

func TestNew_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(root, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(root)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeStorageUnavailable {
		t.Fatalf("expected STORAGE_UNAVAILABLE, got %v", err)
	}
}

func TestWrite_CreatesDirectories(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rel := "invoice/2026-03/INV-2026-00001_abc123.pdf"
	if err := store.Write(context.Background(), rel, []byte("%PDF-1.7")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(store.AbsolutePath(rel))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "%PDF-1.7" {
		t.Errorf("stored content = %q", data)
	}
}

func TestWrite_Overwrite(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	rel := "invoice/2026-03/INV-2026-00001_abc123.pdf"
	if err := store.Write(ctx, rel, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := store.Write(ctx, rel, []byte("second")); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(store.AbsolutePath(rel))
	if string(data) != "second" {
		t.Errorf("re-render must overwrite, got %q", data)
	}
}

func TestWrite_RejectsEscapingPaths(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, rel := range []string{"../outside.pdf", "/etc/passwd", "."} {
		if err := store.Write(context.Background(), rel, []byte("x")); err == nil {
			t.Errorf("path %q must be rejected", rel)
		}
	}
}
