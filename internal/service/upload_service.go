package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"choicefiction/internal/interfaces"
	"choicefiction/internal/models"
	"choicefiction/internal/storage"

	"go.uber.org/zap"
)

// sniffLen - сколько байт http.DetectContentType смотрит.
const sniffLen = 512

// UploadService - загрузка изображений персонажей.
type UploadService interface {
	UploadImage(ctx context.Context, file io.Reader, filename, contentType string, size int64) (string, error)
}

type uploadServiceImpl struct {
	store    interfaces.ImageStore
	maxBytes int64
	logger   *zap.Logger
}

// NewUploadService создает UploadService с лимитом размера maxBytes.
func NewUploadService(store interfaces.ImageStore, maxBytes int64, logger *zap.Logger) UploadService {
	return &uploadServiceImpl{store: store, maxBytes: maxBytes, logger: logger.Named("UploadService")}
}

func (s *uploadServiceImpl) UploadImage(ctx context.Context, file io.Reader, filename, contentType string, size int64) (string, error) {
	if file == nil {
		return "", models.ErrFileMissing
	}
	if size > s.maxBytes {
		return "", models.ErrFileTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("%w: read file: %v", models.ErrUploadFailed, err)
	}
	head = head[:n]
	if n == 0 {
		return "", models.ErrFileMissing
	}

	contentType = strings.TrimSpace(contentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(head)
	}
	if !storage.IsAllowedImageType(contentType) {
		return "", models.NewValidationError(models.MsgImageOnly)
	}
	contentType, _, _ = strings.Cut(contentType, ";")
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	key, err := storage.NewObjectKey(storage.CharacterImagePrefix, filename, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	// Лимит повторяется на чтении: заголовок части мог соврать о размере.
	// Превышение обрывает запись в хранилище, объект не сохраняется.
	body := &limitedReader{r: io.MultiReader(bytes.NewReader(head), file), remaining: s.maxBytes}
	url, err := s.store.Put(ctx, key, contentType, body, size)
	if body.exceeded {
		s.logger.Warn("Upload exceeded size limit", zap.String("key", key), zap.Int64("limit", s.maxBytes))
		return "", models.ErrFileTooLarge
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	s.logger.Info("Image uploaded", zap.String("key", key), zap.String("contentType", contentType), zap.Int64("bytes", s.maxBytes-body.remaining))
	return url, nil
}

var errBodyTooLarge = errors.New("upload body exceeds size limit")

// limitedReader отдает не больше remaining байт и возвращает ошибку,
// если в источнике осталось что-то сверх лимита.
type limitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.exceeded {
		return 0, errBodyTooLarge
	}
	if l.remaining <= 0 {
		var extra [1]byte
		n, err := l.r.Read(extra[:])
		if n > 0 {
			l.exceeded = true
			return 0, errBodyTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
