package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/terminal-archive/internal/terminal"
)

func TestConsolePrintRendersPlainText(t *testing.T) {
	test.NewApp()
	c := NewConsole(nil)

	c.Print(
		terminal.Plain("<b>not bold</b>"),
		terminal.Error(terminal.MsgFetchFailed),
		terminal.Prompt("list"),
	)

	if got := c.LineCount(); got != 3 {
		t.Fatalf("Expected 3 lines, got %d", got)
	}

	first, ok := c.lines.Objects[0].(*widget.Label)
	if !ok {
		t.Fatalf("Expected a label, got %T", c.lines.Objects[0])
	}
	if first.Text != "<b>not bold</b>" {
		t.Errorf("Expected text shown verbatim, got %q", first.Text)
	}

	errLine := c.lines.Objects[1].(*widget.Label)
	if errLine.Importance != widget.DangerImportance {
		t.Errorf("Expected error line to use danger importance, got %v", errLine.Importance)
	}

	prompt := c.lines.Objects[2].(*widget.Label)
	if prompt.Text != "$ list" || !prompt.TextStyle.Bold {
		t.Errorf("Unexpected prompt line %q bold=%v", prompt.Text, prompt.TextStyle.Bold)
	}
}

func TestConsoleLinkCallsBack(t *testing.T) {
	test.NewApp()
	var tapped []int
	c := NewConsole(func(index int) { tapped = append(tapped, index) })

	c.Print(terminal.Link(2, "Class 10 | Math | Sem 1 | 2024", "/f/m.pdf"))

	link, ok := c.lines.Objects[0].(*widget.Hyperlink)
	if !ok {
		t.Fatalf("Expected a hyperlink, got %T", c.lines.Objects[0])
	}
	if link.Text != "  2. Class 10 | Math | Sem 1 | 2024" {
		t.Errorf("Unexpected link text %q", link.Text)
	}

	link.OnTapped()
	if len(tapped) != 1 || tapped[0] != 2 {
		t.Errorf("Expected callback with index 2, got %v", tapped)
	}
}

func TestConsoleDropsOldestLines(t *testing.T) {
	test.NewApp()
	c := NewConsole(nil)

	for i := 0; i < MaxConsoleLines+5; i++ {
		c.Print(terminal.Plain("line %d", i))
	}

	if got := c.LineCount(); got != MaxConsoleLines {
		t.Fatalf("Expected %d lines, got %d", MaxConsoleLines, got)
	}
	first := c.lines.Objects[0].(*widget.Label)
	if first.Text != "line 5" {
		t.Errorf("Expected oldest lines dropped, first is %q", first.Text)
	}
}

func TestConsoleSpinnerAndClear(t *testing.T) {
	test.NewApp()
	c := NewConsole(nil)

	c.StartSpinner(terminal.MsgConnecting)
	if !c.busy.Visible() {
		t.Error("Expected busy indicator to be visible")
	}
	if c.status.Text != terminal.MsgConnecting {
		t.Errorf("Expected spinner label, got %q", c.status.Text)
	}

	c.StopSpinner()
	if c.busy.Visible() {
		t.Error("Expected busy indicator to be hidden")
	}

	c.Print(terminal.Banner()...)
	c.Clear()
	if got := c.LineCount(); got != 0 {
		t.Errorf("Expected empty console after Clear, got %d lines", got)
	}
}
