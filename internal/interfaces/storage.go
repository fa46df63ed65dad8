package interfaces

import (
	"context"
	"io"
)

// ImageStore сохраняет загруженные изображения и возвращает публичный URL.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
