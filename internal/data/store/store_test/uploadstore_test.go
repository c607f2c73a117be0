package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/akolanti/quizcrafter/internal/data/store"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
)

func TestUploadStore_SaveFixedReplaces(t *testing.T) {
	dir := t.TempDir()
	u, err := store.NewUploadStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	first, err := u.SaveFixed(ctx, strings.NewReader("first document about cells"))
	if err != nil {
		t.Fatalf("SaveFixed failed: %v", err)
	}
	second, err := u.SaveFixed(ctx, strings.NewReader("second document about stars"))
	if err != nil {
		t.Fatalf("SaveFixed failed: %v", err)
	}
	if first != second || first != filepath.Join(dir, "book.pdf") {
		t.Errorf("uploads should land on the fixed path, got %s and %s", first, second)
	}

	doc, err := u.LoadDocument(ctx, u.FixedPath())
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if doc.Text != "second document about stars" {
		t.Errorf("expected the later upload, got %q", doc.Text)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestUploadStore_SaveNamed(t *testing.T) {
	dir := t.TempDir()
	u, _ := store.NewUploadStore(dir)
	ctx := context.Background()

	path, err := u.SaveNamed(ctx, "../../etc/notes.txt", strings.NewReader("notes"))
	if err != nil {
		t.Fatalf("SaveNamed failed: %v", err)
	}
	if path != filepath.Join(dir, "notes.txt") {
		t.Errorf("filename should be reduced to its base, got %s", path)
	}

	for _, bad := range []string{"", "..", "/"} {
		_, err := u.SaveNamed(ctx, bad, strings.NewReader("x"))
		var cfgErr *quizErrors.ConfigError
		if !errors.As(err, &cfgErr) || !cfgErr.UserInput {
			t.Errorf("filename %q: expected input error, got %v", bad, err)
		}
	}
}

func TestUploadStore_LoadMissing(t *testing.T) {
	u, _ := store.NewUploadStore(t.TempDir())
	_, err := u.LoadDocument(context.Background(), u.FixedPath())
	var docErr *quizErrors.DocumentError
	if !errors.As(err, &docErr) {
		t.Errorf("expected DocumentError, got %v", err)
	}
}

func TestUploadStore_ConcurrentUploadAndRead(t *testing.T) {
	u, _ := store.NewUploadStore(t.TempDir())
	ctx := context.Background()
	if _, err := u.SaveFixed(ctx, strings.NewReader("aaaa aaaa aaaa")); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = u.SaveFixed(ctx, strings.NewReader("bbbb bbbb bbbb"))
		}()
		go func() {
			defer wg.Done()
			doc, err := u.LoadDocument(ctx, u.FixedPath())
			if err != nil {
				t.Errorf("LoadDocument failed: %v", err)
				return
			}
			if doc.Text != "aaaa aaaa aaaa" && doc.Text != "bbbb bbbb bbbb" {
				t.Errorf("torn document %q", doc.Text)
			}
		}()
	}
	wg.Wait()
}
