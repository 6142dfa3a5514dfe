package service

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ImageStore hands out coffee images by file name.
type ImageStore interface {
	Open(name string) (io.ReadCloser, int64, error)
}

type DirImageStore struct {
	dir string
}

// NewDirImageStore serves images from dir, creating it if needed.
func NewDirImageStore(dir string) (*DirImageStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DirImageStore{dir: dir}, nil
}

func (s *DirImageStore) Open(name string) (io.ReadCloser, int64, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == ".." {
		return nil, 0, imageNotFound(name)
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, 0, imageNotFound(name)
	}
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, 0, imageNotFound(name)
	}
	return f, info.Size(), nil
}

func imageNotFound(name string) error {
	return notFound("IMAGE_NOT_FOUND", "Image not found: %s", name)
}

// ImageContentType infers the content type from the file extension.
func ImageContentType(name string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
