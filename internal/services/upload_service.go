package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"tienda/internal/storage"
)

var (
	ErrFileTooLarge = errors.New("file exceeds the 5 MiB limit")
	ErrBadMIME      = errors.New("only JPEG, PNG and WebP images are allowed")
)

var allowedMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// UploadService stages client uploads into a temporary namespace. No
// database rows are created here; staged files stay "floating" until a
// product save commits them.
type UploadService struct {
	Store    storage.Store
	MaxBytes int64
}

// NewBatch mints the staging namespace shared by every file in one
// upload request.
func (s *UploadService) NewBatch() string {
	return storage.NewTempNamespace()
}

// Stage validates and writes one file into the batch namespace, returning
// a temporary ref. Validation failures happen before any storage write.
func (s *UploadService) Stage(ctx context.Context, batch string, f io.ReadSeeker, size int64) (storage.ImageRef, error) {
	if size > s.MaxBytes {
		return storage.ImageRef{}, ErrFileTooLarge
	}

	// Sniff the real content type from the first 512 bytes; the client
	// header is not trusted.
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return storage.ImageRef{}, fmt.Errorf("upload: read: %w", err)
	}
	mime := http.DetectContentType(buf[:n])
	ext, ok := allowedMIME[mime]
	if !ok {
		return storage.ImageRef{}, ErrBadMIME
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return storage.ImageRef{}, fmt.Errorf("upload: seek: %w", err)
	}

	assetID := storage.NewAssetID()
	key := storage.ObjectKey(batch, assetID, ext)
	if err := s.Store.Put(ctx, key, f, size, mime); err != nil {
		return storage.ImageRef{}, err
	}
	return storage.ImageRef{
		Kind:      storage.RefTemporary,
		URL:       s.Store.URL(key),
		Namespace: batch,
		AssetID:   assetID,
		Ext:       ext,
	}, nil
}

// Delete removes a stored object given its public URL. Used by the admin
// panel to drop an image directly.
func (s *UploadService) Delete(ctx context.Context, url string) error {
	key, ok := s.Store.KeyFromURL(url)
	if !ok {
		return fmt.Errorf("upload: url outside bucket: %s", url)
	}
	return s.Store.Remove(ctx, key)
}
