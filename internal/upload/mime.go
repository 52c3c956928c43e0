package upload

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// generic results that say nothing about the document format
var containerTypes = map[string]bool{
	"application/octet-stream":  true,
	"application/zip":           true,
	"application/x-ole-storage": true,
}

// sniffed results that are still plain text to a reader
var textTypes = map[string]bool{
	"application/json":     true,
	"application/xml":      true,
	"application/x-ndjson": true,
}

var extensionTypes = map[string]string{
	".pdf":  TypePDF,
	".doc":  TypeDOC,
	".docx": TypeDOCX,
	".txt":  TypeTXT,
}

// DetectMIME sniffs the document content and falls back to the file
// extension when the content only reveals a container format. A .txt file
// whose content is any kind of text stays text/plain.
func DetectMIME(name string, content []byte) string {
	if len(content) > 0 {
		detected := baseType(mimetype.Detect(content).String())
		if typeByExtension(name) == TypeTXT && isText(detected) {
			return TypeTXT
		}
		if !containerTypes[detected] {
			return detected
		}
	}
	if t := typeByExtension(name); t != "" {
		return t
	}
	return "application/octet-stream"
}

func isText(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/") || textTypes[mimeType]
}

func typeByExtension(name string) string {
	return extensionTypes[strings.ToLower(filepath.Ext(name))]
}
