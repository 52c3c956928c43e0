package search

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/ytget/terminal-archive/internal/model"
)

// Result is one rendered search hit
type Result struct {
	Label string
	URL   string
	Paper model.Paper
}

// Label formats the link text for a paper
func Label(p model.Paper) string {
	return fmt.Sprintf("Class %s | %s | Sem %s | %s", p.Class, p.Subject, p.Semester, p.Year)
}

// Results converts matched papers into view-models
func Results(papers []model.Paper) []Result {
	return lo.Map(papers, func(p model.Paper, _ int) Result {
		return Result{Label: Label(p), URL: p.URL, Paper: p}
	})
}

// Run filters the corpus and builds the view-models in one step
func Run(query string, corpus []model.Paper) []Result {
	return Results(Filter(query, corpus))
}
