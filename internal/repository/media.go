package repository

import (
	"io"
	"os"
	"path/filepath"

	"memebin/internal/models"
)

// MediaStore holds the uploaded media files, keyed by their sanitized
// filename. Uploading the same filename twice silently overwrites.
type MediaStore interface {
	Save(filename string, r io.Reader) error
	Remove(filename string) error
	Dir() string
}

type mediaStore struct {
	dir string
}

// NewMediaStore returns a MediaStore rooted at dir.
func NewMediaStore(dir string) MediaStore {
	return &mediaStore{dir: dir}
}

func (s *mediaStore) Save(filename string, r io.Reader) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return models.NewInternalError(err)
	}
	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return models.NewInternalError(err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return models.NewInternalError(err)
	}
	if err := f.Close(); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *mediaStore) Remove(filename string) error {
	return os.Remove(filepath.Join(s.dir, filename))
}

// Dir returns the store root, used as the static serving mount.
func (s *mediaStore) Dir() string {
	return s.dir
}
