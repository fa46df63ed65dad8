package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"choicefiction/internal/interfaces"

	"go.uber.org/zap"
)

var _ interfaces.ImageStore = (*DiskStore)(nil)

// DiskStore хранит файлы в локальном каталоге, который раздается по /uploads/.
type DiskStore struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

// NewDiskStore создает каталог root при необходимости.
func NewDiskStore(root, publicBaseURL string, logger *zap.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", root, err)
	}
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(publicBaseURL, "/") + "/uploads/",
		logger:  logger.Named("DiskStore"),
	}, nil
}

// Root - каталог с файлами.
func (d *DiskStore) Root() string { return d.root }

// Put пишет файл через временный файл и rename, чтобы не оставлять обрезанных файлов.
func (d *DiskStore) Put(ctx context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	target := filepath.Join(d.root, clean)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create dir for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: body}); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("rename %s: %w", key, err)
	}

	d.logger.Info("File stored", zap.String("key", key))
	return d.baseURL + filepath.ToSlash(clean), nil
}

// ctxReader прерывает копирование при отмене запроса.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
