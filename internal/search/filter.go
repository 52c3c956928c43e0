package search

import (
	"strings"

	"github.com/samber/lo"

	"github.com/ytget/terminal-archive/internal/model"
)

// Haystack returns the lower-cased text a query is matched against:
// class, subject, year, original name, exam type and medium joined
// without separators.
func Haystack(p model.Paper) string {
	var b strings.Builder
	b.WriteString(p.Class.String())
	b.WriteString(p.Subject)
	b.WriteString(p.Year.String())
	b.WriteString(p.OriginalName)
	b.WriteString(p.ExamType)
	b.WriteString(p.Medium)
	return strings.ToLower(b.String())
}

// Filter returns the papers whose haystack contains the lower-cased query,
// in corpus order. The corpus is not modified.
func Filter(query string, corpus []model.Paper) []model.Paper {
	needle := strings.ToLower(query)
	return lo.Filter(corpus, func(p model.Paper, _ int) bool {
		return strings.Contains(Haystack(p), needle)
	})
}
