package terminal

import "fmt"

// LineKind selects how a line is styled
type LineKind int

const (
	LinePlain LineKind = iota
	LineInfo
	LineSuccess
	LineError
	LinePrompt // echoed user input
	LineLink   // a search hit; URL and Index are set
)

// PromptSymbol precedes echoed commands
const PromptSymbol = "$ "

// Line is one row of terminal output. Text is always shown verbatim,
// never interpreted as markup.
type Line struct {
	Kind  LineKind
	Text  string
	URL   string // LineLink only
	Index int    // 1-based position in the result list, LineLink only
}

// Plain returns an unstyled line
func Plain(format string, args ...any) Line {
	return Line{Kind: LinePlain, Text: sprintf(format, args...)}
}

// Info returns a highlighted status line
func Info(format string, args ...any) Line {
	return Line{Kind: LineInfo, Text: sprintf(format, args...)}
}

// Success returns a line reporting a completed step
func Success(format string, args ...any) Line {
	return Line{Kind: LineSuccess, Text: sprintf(format, args...)}
}

// Error returns a line reporting a failure
func Error(format string, args ...any) Line {
	return Line{Kind: LineError, Text: sprintf(format, args...)}
}

// Prompt echoes a command as typed
func Prompt(command string) Line {
	return Line{Kind: LinePrompt, Text: PromptSymbol + command}
}

// Link returns a numbered search hit
func Link(index int, label, url string) Line {
	return Line{Kind: LineLink, Text: label, URL: url, Index: index}
}

// Display returns the text as rendered, including the number of a link
func (l Line) Display() string {
	if l.Kind == LineLink {
		return fmt.Sprintf("  %d. %s", l.Index, l.Text)
	}
	return l.Text
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
