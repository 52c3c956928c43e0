package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/terminal-archive/internal/model"
)

// DownloadsPanel lists the papers saved with the get command. It stays
// hidden until the first download is queued. All methods run on the UI
// goroutine.
type DownloadsPanel struct {
	localization *Localization
	order        []string
	tasks        map[string]model.DownloadTask

	title *widget.Label
	list  *widget.List
	root  *fyne.Container

	onStop   func(taskID string)
	onOpen   func(filePath string)
	onReveal func(filePath string)
}

// NewDownloadsPanel creates an empty, hidden panel
func NewDownloadsPanel(localization *Localization, onStop func(taskID string), onOpen, onReveal func(filePath string)) *DownloadsPanel {
	p := &DownloadsPanel{
		localization: localization,
		tasks:        make(map[string]model.DownloadTask),
		onStop:       onStop,
		onOpen:       onOpen,
		onReveal:     onReveal,
	}

	p.title = widget.NewLabel(localization.GetText(KeyDownloads))
	p.title.TextStyle = fyne.TextStyle{Bold: true}

	p.list = widget.NewList(
		func() int { return len(p.order) },
		func() fyne.CanvasObject {
			row := NewDownloadRow(p.localization)
			row.SetCallbacks(p.onStop, p.onOpen, p.onReveal)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(p.order) {
				return
			}
			if row, ok := obj.(*DownloadRow); ok {
				row.UpdateTask(p.tasks[p.order[id]])
			}
		},
	)

	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(0, DownloadPanelHeight))
	p.root = container.NewBorder(
		container.NewVBox(widget.NewSeparator(), p.title),
		nil, nil, nil,
		container.NewStack(spacer, p.list),
	)
	p.root.Hide()
	return p
}

// SetLocalization refreshes the panel title
func (p *DownloadsPanel) SetLocalization(localization *Localization) {
	p.localization = localization
	p.title.SetText(localization.GetText(KeyDownloads))
}

// Container returns the panel canvas object
func (p *DownloadsPanel) Container() fyne.CanvasObject {
	return p.root
}

// Update inserts or refreshes task
func (p *DownloadsPanel) Update(task model.DownloadTask) {
	if _, ok := p.tasks[task.ID]; !ok {
		p.order = append(p.order, task.ID)
	}
	p.tasks[task.ID] = task
	p.list.Refresh()
	if p.root.Hidden {
		p.root.Show()
	}
}

// Len returns the number of listed downloads
func (p *DownloadsPanel) Len() int {
	return len(p.order)
}
