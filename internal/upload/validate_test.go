package upload

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		file *File
		want error
	}{
		{"nil", nil, ErrNoFile},
		{"empty", &File{}, ErrNoFile},
		{"pdf at limit", &File{Name: "a.pdf", Size: MaxFileSize, MIMEType: TypePDF}, nil},
		{"one byte over", &File{Name: "a.pdf", Size: MaxFileSize + 1, MIMEType: TypePDF}, ErrTooLarge},
		{"size checked before type", &File{Name: "a.png", Size: MaxFileSize + 1, MIMEType: "image/png"}, ErrTooLarge},
		{"png", &File{Name: "a.png", Size: 10, MIMEType: "image/png"}, ErrUnsupportedType},
		{"doc", &File{Name: "a.doc", Size: 10, MIMEType: TypeDOC}, nil},
		{"docx", &File{Name: "a.docx", Size: 10, MIMEType: TypeDOCX}, nil},
		{"text with charset", &File{Name: "a.txt", Size: 10, MIMEType: "text/plain; charset=utf-8"}, nil},
		{"empty type", &File{Name: "a", Size: 10}, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.file)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsAllowedType(t *testing.T) {
	assert.True(t, IsAllowedType("application/pdf"))
	assert.True(t, IsAllowedType("Text/Plain; charset=ISO-8859-1"))
	assert.False(t, IsAllowedType("image/png"))
	assert.False(t, IsAllowedType("text/html"))
	assert.False(t, IsAllowedType(""))
}

func TestLoad(t *testing.T) {
	f, err := Load("dir/notes.txt", strings.NewReader("line one\nline two\n"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", f.Name)
	assert.EqualValues(t, 18, f.Size)
	assert.Equal(t, TypeTXT, f.MIMEType)
	assert.NoError(t, Validate(f))
}

func TestLoadLimitsRead(t *testing.T) {
	f, err := Load("huge.pdf", io.LimitReader(zeroReader{}, MaxFileSize+100))
	require.NoError(t, err)
	assert.EqualValues(t, MaxFileSize+1, f.Size)
	assert.ErrorIs(t, Validate(f), ErrTooLarge)

	f, err = Load("exact.txt", io.LimitReader(zeroReader{}, MaxFileSize))
	require.NoError(t, err)
	assert.EqualValues(t, MaxFileSize, f.Size)
	assert.NotErrorIs(t, Validate(f), ErrTooLarge)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	pdfPath := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdfPath, buildPDF(2), 0o644))
	f, err := LoadFile(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, TypePDF, f.MIMEType)
	assert.NoError(t, Validate(f))

	bigPath := filepath.Join(dir, "big.pdf")
	require.NoError(t, os.WriteFile(bigPath, nil, 0o644))
	require.NoError(t, os.Truncate(bigPath, MaxFileSize+1))
	f, err = LoadFile(bigPath)
	require.NoError(t, err)
	assert.Nil(t, f.Content)
	assert.Equal(t, TypePDF, f.MIMEType)
	assert.ErrorIs(t, Validate(f), ErrTooLarge)

	_, err = LoadFile(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)

	_, err = LoadFile(dir)
	assert.Error(t, err)
}

func TestDetectMIME(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	assert.Equal(t, TypePDF, DetectMIME("x.bin", buildPDF(1)))
	assert.Equal(t, "image/png", DetectMIME("renamed.pdf", png))
	assert.Equal(t, TypeTXT, DetectMIME("readme", []byte("hello\n")))
	assert.Equal(t, TypeDOCX, DetectMIME("notes.docx", buildDocx(t, "<w:p><w:r><w:t>hi</w:t></w:r></w:p>")))
	assert.Equal(t, TypeTXT, DetectMIME("empty.txt", nil))
	assert.Equal(t, "application/octet-stream", DetectMIME("unknown", nil))
	assert.Equal(t, TypeDOC, DetectMIME("old.DOC", nil))
}

func TestDetectMIMEKeepsTextFilesPlain(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"notes.txt", "{\"a\": 1}\n"},
		{"page.txt", "<html><head><title>x</title></head><body>hi</body></html>\n"},
		{"marks.txt", "name,math,phys\nann,90,80\nbob,70,85\n"},
		{"feed.TXT", "<?xml version=\"1.0\"?><root><a>1</a></root>\n"},
		{"readme.txt", "plain prose\n"},
	}
	for _, tt := range tests {
		f, err := Load(tt.name, strings.NewReader(tt.content))
		require.NoError(t, err)
		assert.Equal(t, TypeTXT, f.MIMEType, tt.name)
		assert.NoError(t, Validate(f), tt.name)
	}

	// binary content is still judged by what it is
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	assert.Equal(t, "image/png", DetectMIME("scan.txt", png))
	assert.Equal(t, TypePDF, DetectMIME("paper.txt", buildPDF(1)))
	assert.Equal(t, "text/html", DetectMIME("page.html", []byte("<html><body>hi</body></html>")))
}
