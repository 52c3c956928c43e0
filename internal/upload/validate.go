package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize is the largest accepted document, inclusive
const MaxFileSize = 16 << 20

// Accepted document types
const (
	TypePDF  = "application/pdf"
	TypeDOC  = "application/msword"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypeTXT  = "text/plain"
)

// AllowedTypes lists the MIME types the archive accepts
var AllowedTypes = []string{TypePDF, TypeDOC, TypeDOCX, TypeTXT}

// Validation errors
var (
	ErrNoFile          = errors.New("no file selected")
	ErrTooLarge        = errors.New("file exceeds the 16MB limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// File is a document picked for upload, held in memory
type File struct {
	Name     string
	Size     int64
	MIMEType string
	Content  []byte
}

// Load reads a picked document. At most MaxFileSize+1 bytes are consumed,
// enough for Validate to tell that a file is too large.
func Load(name string, r io.Reader) (*File, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	f := &File{
		Name:    filepath.Base(name),
		Size:    int64(len(content)),
		Content: content,
	}
	f.MIMEType = DetectMIME(f.Name, content)
	return f, nil
}

// LoadFile opens a document from disk. Oversized files are not read;
// their type is guessed from the extension only.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		name := filepath.Base(path)
		return &File{Name: name, Size: info.Size(), MIMEType: typeByExtension(name)}, nil
	}
	return Load(path, fh)
}

// Validate checks a picked file before any request is made: presence,
// then size, then type.
func Validate(f *File) error {
	if f == nil || (f.Name == "" && f.Size == 0) {
		return ErrNoFile
	}
	if f.Size > MaxFileSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, f.Name, f.Size)
	}
	if !IsAllowedType(f.MIMEType) {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, f.MIMEType)
	}
	return nil
}

// IsAllowedType reports whether a MIME type is accepted. Parameters such
// as charset are ignored.
func IsAllowedType(mimeType string) bool {
	base := baseType(mimeType)
	for _, t := range AllowedTypes {
		if base == t {
			return true
		}
	}
	return false
}

func baseType(mimeType string) string {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mt
	}
	t, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(t))
}
