// Package storage keeps uploaded record photos.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store accepts an object and returns the URL it can be fetched from.
type Store interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"image/gif":  ".gif",
}

// imageExts are the only filename extensions accepted when the content type
// is not a known image type.
var imageExts = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpg",
	".png":  ".png",
	".webp": ".webp",
	".heic": ".heic",
	".gif":  ".gif",
}

// ErrUnsupportedType rejects uploads that are not a known image type.
var ErrUnsupportedType = errors.New("unsupported content type")

// MaxPhotoBytes bounds a single upload.
const MaxPhotoBytes = 10 << 20

// Local writes objects below Dir in per-month folders and serves them from BaseURL.
type Local struct {
	Dir     string
	BaseURL string
	now     func() time.Time
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/"), now: time.Now}, nil
}

func (l *Local) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty upload")
	}
	if len(data) > MaxPhotoBytes {
		return "", fmt.Errorf("upload is %d bytes, limit %d", len(data), MaxPhotoBytes)
	}
	ext, ok := extByType[strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))]
	if !ok {
		ext, ok = imageExts[strings.ToLower(filepath.Ext(name))]
		if !ok {
			return "", fmt.Errorf("%w: %q (%s)", ErrUnsupportedType, contentType, name)
		}
	}

	month := l.now().Format("200601")
	key := path.Join(month, uuid.NewString()+ext)
	full := filepath.Join(l.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(full), err)
	}
	tmp := full + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("commit %s: %w", key, err)
	}
	return l.BaseURL + "/" + key, nil
}
