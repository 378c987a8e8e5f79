package domain

import (
	"context"
	"errors"
	"io"
)

// ErrUnsupportedFileType is returned when an upload's extension is not allowed for its kind.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// FileKind selects the folder an uploaded asset is stored in.
type FileKind string

const (
	FilePoster         FileKind = "posters"
	FileProfilePicture FileKind = "profile_pics"
	FileCertificate    FileKind = "certificates"
)

// ParseFileKind returns the FileKind for s, or false when s is not a known kind.
func ParseFileKind(s string) (FileKind, bool) {
	switch FileKind(s) {
	case FilePoster, FileProfilePicture, FileCertificate:
		return FileKind(s), true
	}
	return "", false
}

// FileStore saves uploaded assets and returns a reference string. Contents are never inspected.
type FileStore interface {
	Save(ctx context.Context, kind FileKind, filename string, r io.Reader) (ref string, err error)
}
