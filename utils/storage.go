package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage abstracts the object store used for tenant photos and documents:
// save a byte buffer under a folder and get back a public URL, move an
// object to another folder by URL, delete by URL.
type Storage interface {
	Save(data []byte, folder, filename string) (string, error)
	MoveToFolder(url, folder string) (string, error)
	DeleteByURL(url string) error
}

var ErrInvalidStorageURL = errors.New("url does not belong to this storage")

// LocalStorage keeps objects on the local disk under root and serves them
// under {baseURL}/uploads/.
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes data under folder with a timestamp-prefixed name and returns
// the public URL.
func (s *LocalStorage) Save(data []byte, folder, filename string) (string, error) {
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(filename))

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, name), nil
}

// MoveToFolder relocates the object behind url into folder and returns the
// new URL. Used for soft-delete semantics: removed tenants' documents move
// to a holding folder instead of being destroyed.
func (s *LocalStorage) MoveToFolder(url, folder string) (string, error) {
	rel, err := s.relPath(url)
	if err != nil {
		return "", err
	}

	name := filepath.Base(rel)
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	if err := os.Rename(filepath.Join(s.root, rel), filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, name), nil
}

func (s *LocalStorage) DeleteByURL(url string) error {
	rel, err := s.relPath(url)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, rel)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// relPath extracts the path under root from a public URL, rejecting URLs
// that escape the storage root.
func (s *LocalStorage) relPath(url string) (string, error) {
	prefix := s.baseURL + "/uploads/"
	if !strings.HasPrefix(url, prefix) {
		return "", ErrInvalidStorageURL
	}
	rel := filepath.Clean(strings.TrimPrefix(url, prefix))
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", ErrInvalidStorageURL
	}
	return rel, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
