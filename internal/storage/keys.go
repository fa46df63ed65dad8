package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// CharacterImagePrefix - каталог изображений персонажей в хранилище.
const CharacterImagePrefix = "characters"

// NewObjectKey возвращает ключ вида <prefix>/<32 hex>.<ext>.
// Расширение берется из имени файла, иначе из content type.
func NewObjectKey(prefix, filename, contentType string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate object key: %w", err)
	}
	name := hex.EncodeToString(buf)
	if ext := extension(filename, contentType); ext != "" {
		name += ext
	}
	return prefix + "/" + name, nil
}

func extension(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" && len(ext) <= 6 && isAlnum(ext[1:]) {
		return ext
	}
	if contentType == "" {
		return ""
	}
	if ext, ok := preferredExt[contentType]; ok {
		return ext
	}
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}

// preferredExt - принимаемые типы изображений и их расширения.
var preferredExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// IsAllowedImageType сообщает, принимается ли content type для загрузки.
// Векторные форматы (SVG) не принимаются: файлы раздаются с того же origin.
func IsAllowedImageType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	_, ok := preferredExt[strings.ToLower(strings.TrimSpace(mediaType))]
	return ok
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
