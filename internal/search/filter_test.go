package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/terminal-archive/internal/model"
)

var mathPaper = model.Paper{
	Class: "10", Subject: "Math", Year: "2024", Semester: "1",
	ExamType: "Final", Medium: "English", OriginalName: "m.pdf", URL: "/f/m.pdf",
}

func corpus() []model.Paper {
	return []model.Paper{
		mathPaper,
		{Class: "12", Subject: "Physics", Year: "2023", Semester: "2", ExamType: "Mid", Medium: "Hindi", OriginalName: "phy.pdf", URL: "/f/phy.pdf"},
		{Class: "11", Subject: "Applied Mathematics", Year: "2022", Semester: "1", ExamType: "Final", Medium: "English", OriginalName: "am.docx", URL: "/f/am.docx"},
	}
}

func TestFilterSinglePaperScenario(t *testing.T) {
	papers := []model.Paper{mathPaper}

	hits := Filter("math", papers)
	require.Len(t, hits, 1)
	assert.Equal(t, mathPaper, hits[0])

	assert.Empty(t, Filter("2023", papers))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string // subjects, in order
	}{
		{"case insensitive", "MATH", []string{"Math", "Applied Mathematics"}},
		{"year", "2023", []string{"Physics"}},
		{"medium", "english", []string{"Math", "Applied Mathematics"}},
		{"original name", "phy.pdf", []string{"Physics"}},
		{"exam type", "mid", []string{"Physics"}},
		{"spans fields", "10math", []string{"Math"}},
		{"no match", "chemistry", nil},
		{"empty matches all", "", []string{"Math", "Physics", "Applied Mathematics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, p := range Filter(tt.query, corpus()) {
				got = append(got, p.Subject)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterMatchesExactlyTheContainingSubset(t *testing.T) {
	c := corpus()
	for _, q := range []string{"a", "20", "final", "pdf", "x", "1"} {
		hits := Filter(q, c)
		var want []model.Paper
		for _, p := range c {
			if strings.Contains(Haystack(p), strings.ToLower(q)) {
				want = append(want, p)
			}
		}
		assert.ElementsMatch(t, want, hits, "query %q", q)
	}
}

func TestFilterDoesNotModifyCorpus(t *testing.T) {
	c := corpus()
	before := append([]model.Paper(nil), c...)
	_ = Filter("physics", c)
	assert.Equal(t, before, c)
}

func TestFilterIgnoresURLAndSemester(t *testing.T) {
	p := model.Paper{Subject: "Bio", Semester: "7", URL: "/f/secret.pdf"}
	assert.Empty(t, Filter("secret", []model.Paper{p}))
	assert.Empty(t, Filter("7", []model.Paper{p}))
}
