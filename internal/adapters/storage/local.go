package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"eventhub/internal/domain"
)

// allowedExtensions lists the lower-case extensions accepted per kind.
var allowedExtensions = map[domain.FileKind][]string{
	domain.FilePoster:         {".png", ".jpg", ".jpeg"},
	domain.FileProfilePicture: {".png", ".jpg", ".jpeg"},
	domain.FileCertificate:    {".pdf", ".png", ".jpg", ".jpeg"},
}

// PublicPrefix is the URL path prefix every returned reference starts with.
const PublicPrefix = "uploads"

type localStore struct {
	root string
}

// NewLocalStore returns a FileStore writing under root/<kind>/<uuid><ext>.
// References are returned as "uploads/<kind>/<uuid><ext>" whatever root is.
func NewLocalStore(root string) domain.FileStore {
	return &localStore{root: root}
}

func (s *localStore) Save(ctx context.Context, kind domain.FileKind, filename string, r io.Reader) (string, error) {
	if _, ok := domain.ParseFileKind(string(kind)); !ok {
		return "", fmt.Errorf("%w: unknown upload kind %q", domain.ErrInvalidInput, kind)
	}
	ext, err := extensionFor(kind, filename)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + ext
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return path.Join(PublicPrefix, string(kind), name), nil
}

func extensionFor(kind domain.FileKind, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExtensions[kind] {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %q for %s", domain.ErrUnsupportedFileType, ext, kind)
}
