package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in    string
		kind  IntentKind
		query string
	}{
		{"", IntentNone, ""},
		{"   \t", IntentNone, ""},
		{"upload", IntentAdmin, "upload"},
		{"  UpLoad ", IntentAdmin, "UpLoad"},
		{"upload physics", IntentSearch, "upload physics"},
		{"  math ", IntentSearch, "math"},
	}

	for _, tt := range tests {
		got := Classify(tt.in)
		assert.Equal(t, tt.kind, got.Kind, "input %q", tt.in)
		assert.Equal(t, tt.query, got.Query, "input %q", tt.in)
	}
}

func TestIntentKindString(t *testing.T) {
	assert.Equal(t, "none", IntentNone.String())
	assert.Equal(t, "admin", IntentAdmin.String())
	assert.Equal(t, "search", IntentSearch.String())
	assert.Equal(t, "unknown", IntentKind(42).String())
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"path/../traversal", "pathtraversal"},
		{"../../etc/passwd", "etcpasswd"},
		{"test<script>alert(1)</script>", "testscriptalert1script"},
		{`"><script>alert(1)</script>`, "scriptalert1script"},
		{"normal text", "normal text"},
		{"jane_doe-2", "jane_doe-2"},
		{"line\nbreak", "line break"},
		{"Мария", "Мария"},
		{"", ""},
		{"   ", ""},
		{"../", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), "input %q", tt.in)
	}
}

func TestSanitizeCapsLength(t *testing.T) {
	got := Sanitize(strings.Repeat("a", 500))
	assert.Equal(t, MaxNameLength, utf8.RuneCountInString(got))

	got = Sanitize(strings.Repeat("ж", 150))
	assert.Equal(t, MaxNameLength, utf8.RuneCountInString(got))
}
