package upload

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrNotInspectable is returned for document types we cannot look into
var ErrNotInspectable = errors.New("document type cannot be inspected")

// Summary describes a picked document. Only the count matching the
// document type is set.
type Summary struct {
	MIMEType string
	Pages    int // PDF
	Words    int // DOCX
	Lines    int // TXT
}

// Inspect reads the in-memory document and counts pages, words or lines
// depending on its type. A failure here never makes the file invalid.
func Inspect(f *File) (Summary, error) {
	if f == nil || len(f.Content) == 0 {
		return Summary{}, ErrNoFile
	}

	s := Summary{MIMEType: baseType(f.MIMEType)}
	var err error
	switch s.MIMEType {
	case TypePDF:
		s.Pages, err = countPDFPages(f.Content)
	case TypeDOCX:
		s.Words, err = countDocxWords(f.Content)
	case TypeTXT:
		s.Lines = countLines(f.Content)
	default:
		err = fmt.Errorf("%w: %s", ErrNotInspectable, s.MIMEType)
	}
	if err != nil {
		return Summary{}, err
	}
	return s, nil
}

func countPDFPages(content []byte) (pages int, err error) {
	// the parser panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return reader.NumPage(), nil
}

func countDocxWords(content []byte) (int, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	text, err := documentText(doc.Editable().GetContent())
	if err != nil {
		return 0, fmt.Errorf("read docx: %w", err)
	}
	return len(strings.Fields(text)), nil
}

// documentText collects the text runs of a WordprocessingML body. Runs of
// one paragraph are joined as-is, paragraphs are separated by newlines.
func documentText(body string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(body))
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			inText = t.Name.Local == "t"
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	lines := bytes.Count(content, []byte("\n"))
	if content[len(content)-1] != '\n' {
		lines++
	}
	return lines
}
