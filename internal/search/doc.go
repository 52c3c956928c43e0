// Package search implements the client-side paper search: query
// classification, substring filtering over the loaded collection and the
// result view-models shown in the terminal.
package search
