// Package media stores uploaded portfolio assets on the local filesystem.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/astecastudio/portfolio-api/internal/domain"
)

// ErrUnsupportedType rejects uploads whose extension is not on the
// allow-list.
var ErrUnsupportedType = errors.New("unsupported file type")

// imageExtensions and videoExtensions double as the upload allow-list and
// the item-type inference table.
var (
	imageExtensions = map[string]struct{}{
		".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
	}
	videoExtensions = map[string]struct{}{
		".mp4": {}, ".mov": {}, ".avi": {}, ".webm": {},
	}
)

// Storage writes uploads into a single flat directory. Stored names are
// prefixed with a random UUID so client-chosen names can never collide or
// overwrite each other.
type Storage struct {
	dir string
}

// NewStorage creates the upload directory if needed.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the root directory uploads are written to.
func (s *Storage) Dir() string {
	return s.dir
}

// Save stores the content under a fresh unique name derived from the
// client-supplied filename and returns that stored name. The client name
// is sanitised; only its base and extension survive.
func (s *Storage) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedExtension(ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	stored := uuid.New().String() + "_" + sanitizeName(filename)

	f, err := os.OpenFile(filepath.Join(s.dir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	return stored, nil
}

// AllowedExtension reports whether ext (lower case, dot included) is
// accepted for upload.
func AllowedExtension(ext string) bool {
	if _, ok := imageExtensions[ext]; ok {
		return true
	}
	_, ok := videoExtensions[ext]
	return ok
}

// ItemTypeForExtension infers the portfolio item type from a stored file's
// extension. Returns "" for extensions outside the allow-list.
func ItemTypeForExtension(ext string) string {
	ext = strings.ToLower(ext)
	if _, ok := imageExtensions[ext]; ok {
		return domain.ItemTypeImage
	}
	if _, ok := videoExtensions[ext]; ok {
		return domain.ItemTypeVideo
	}
	return ""
}

// sanitizeName reduces a client filename to a safe flat name. Path
// separators and oddball characters are squashed so the stored name can
// never escape the upload directory.
func sanitizeName(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := strings.Trim(b.String(), "._")
	if name == "" {
		name = "upload"
	}
	return name
}
