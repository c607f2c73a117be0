package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/rag/ingest"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

// UploadStore owns the upload directory. Writes go to a temp file and are
// renamed into place under the write lock, reads extract under the read lock,
// so a document is never read half written. A later upload to the fixed path
// still replaces the earlier one.
type UploadStore struct {
	dir    string
	mu     sync.RWMutex
	logger *logger_i.Logger
}

func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &quizErrors.UploadIOError{Path: dir, Err: err}
	}
	return &UploadStore{dir: dir, logger: logger_i.NewLogger("upload_store")}, nil
}

func (u *UploadStore) FixedPath() string {
	return filepath.Join(u.dir, config.FixedUploadName)
}

// SaveFixed stores the upload under the single well known name.
func (u *UploadStore) SaveFixed(ctx context.Context, r io.Reader) (string, error) {
	return u.save(ctx, config.FixedUploadName, r)
}

// SaveNamed stores the upload under the base of the client supplied filename.
func (u *UploadStore) SaveNamed(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == ".." || name == "/" || strings.TrimSpace(name) == "" {
		return "", quizErrors.NewInputError("file", "invalid filename %q", filename)
	}
	return u.save(ctx, name, r)
}

func (u *UploadStore) save(ctx context.Context, name string, r io.Reader) (string, error) {
	log := u.logger.FromContext(ctx)
	target := filepath.Join(u.dir, name)

	u.mu.Lock()
	defer u.mu.Unlock()

	tmp, err := os.CreateTemp(u.dir, ".upload-*")
	if err != nil {
		return "", &quizErrors.UploadIOError{Path: target, Err: err}
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		log.Error("Upload write failed", "path", target, "error", err)
		return "", &quizErrors.UploadIOError{Path: target, Err: err}
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		log.Error("Upload rename failed", "path", target, "error", err)
		return "", &quizErrors.UploadIOError{Path: target, Err: err}
	}

	log.Info("Upload stored", "path", target, "bytes", written)
	return target, nil
}

// LoadDocument extracts the stored file at path.
func (u *UploadStore) LoadDocument(ctx context.Context, path string) (commonModels.Document, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	doc, err := ingest.ExtractDocument(path)
	if err != nil {
		u.logger.FromContext(ctx).Warn("Document extraction failed", "path", path, "error", err)
		return doc, err
	}
	return doc, nil
}
