package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/terminal-archive/internal/terminal"
)

// Console is the scrolling output area of the terminal. Every method may be
// called from any goroutine; changes are applied on the UI goroutine.
type Console struct {
	lines   *fyne.Container
	scroll  *container.Scroll
	spinner *widget.ProgressBarInfinite
	status  *widget.Label
	busy    *fyne.Container
	root    *fyne.Container

	onLink func(index int)
}

var _ terminal.Console = (*Console)(nil)

// NewConsole creates an empty console. onLink is called with the result
// number when a link line is tapped.
func NewConsole(onLink func(index int)) *Console {
	c := &Console{onLink: onLink}

	c.lines = container.NewVBox()
	c.scroll = container.NewScroll(c.lines)

	c.spinner = widget.NewProgressBarInfinite()
	c.spinner.Stop()
	c.status = widget.NewLabel("")
	c.status.TextStyle = fyne.TextStyle{Monospace: true}
	c.busy = container.NewBorder(nil, nil, c.status, nil, c.spinner)
	c.busy.Hide()

	c.root = container.NewBorder(nil, c.busy, nil, nil, c.scroll)
	return c
}

// Container returns the console canvas object
func (c *Console) Container() fyne.CanvasObject {
	return c.root
}

// Print appends lines and scrolls to the newest one
func (c *Console) Print(lines ...terminal.Line) {
	if len(lines) == 0 {
		return
	}
	fyne.Do(func() {
		for _, line := range lines {
			c.lines.Add(c.render(line))
		}
		if extra := len(c.lines.Objects) - MaxConsoleLines; extra > 0 {
			c.lines.Objects = c.lines.Objects[extra:]
			c.lines.Refresh()
		}
		c.scroll.ScrollToBottom()
	})
}

// StartSpinner shows the busy indicator with a label
func (c *Console) StartSpinner(label string) {
	fyne.Do(func() {
		c.status.SetText(label)
		c.busy.Show()
		c.spinner.Start()
	})
}

// StopSpinner hides the busy indicator
func (c *Console) StopSpinner() {
	fyne.Do(func() {
		c.spinner.Stop()
		c.busy.Hide()
		c.status.SetText("")
	})
}

// Clear removes all output
func (c *Console) Clear() {
	fyne.Do(func() {
		c.lines.RemoveAll()
	})
}

// LineCount returns the number of lines on screen. UI goroutine only.
func (c *Console) LineCount() int {
	return len(c.lines.Objects)
}

// render turns a line into a plain-text widget. Server supplied text is
// never parsed as markup.
func (c *Console) render(line terminal.Line) fyne.CanvasObject {
	if line.Kind == terminal.LineLink {
		index := line.Index
		link := widget.NewHyperlink(line.Display(), nil)
		link.TextStyle = fyne.TextStyle{Monospace: true}
		link.OnTapped = func() {
			if c.onLink != nil {
				c.onLink(index)
			}
		}
		return link
	}

	label := widget.NewLabel(line.Display())
	label.TextStyle = fyne.TextStyle{Monospace: true}
	label.Wrapping = fyne.TextWrapOff
	switch line.Kind {
	case terminal.LineInfo:
		label.Importance = widget.HighImportance
	case terminal.LineSuccess:
		label.Importance = widget.SuccessImportance
	case terminal.LineError:
		label.Importance = widget.DangerImportance
	case terminal.LinePrompt:
		label.TextStyle.Bold = true
	}
	return label
}
