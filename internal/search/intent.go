package search

import (
	"strings"
	"unicode"
)

// AdminTrigger is the query that opens the admin prompt instead of searching
const AdminTrigger = "upload"

// MaxNameLength caps the sanitized operator name, in runes
const MaxNameLength = 100

// IntentKind tells the controller what a submitted query means
type IntentKind int

const (
	// IntentNone is an empty or whitespace-only query; nothing happens
	IntentNone IntentKind = iota
	// IntentAdmin is the admin trigger; the collection is never filtered
	IntentAdmin
	// IntentSearch is an ordinary search
	IntentSearch
)

// String returns a short name for logs
func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "none"
	case IntentAdmin:
		return "admin"
	case IntentSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Intent is a classified query
type Intent struct {
	Kind  IntentKind
	Query string // trimmed query text
}

// Classify decides what a submitted query should do
func Classify(raw string) Intent {
	q := strings.TrimSpace(raw)
	switch {
	case q == "":
		return Intent{Kind: IntentNone}
	case strings.EqualFold(q, AdminTrigger):
		return Intent{Kind: IntentAdmin, Query: q}
	default:
		return Intent{Kind: IntentSearch, Query: q}
	}
}

// Sanitize strips an operator name down to letters, digits, spaces, '-' and
// '_'. Path separators, dots and markup characters are dropped, other
// whitespace becomes a space, and the result is cut to MaxNameLength runes.
func Sanitize(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range name {
		if n == MaxNameLength {
			break
		}
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == ' ':
		case unicode.IsSpace(r):
			r = ' '
		default:
			continue
		}
		b.WriteRune(r)
		n++
	}
	return strings.TrimSpace(b.String())
}
