package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/terminal-archive/internal/model"
)

// DownloadRow is a compact row for one saved paper: title, status, speed,
// percent and the stop/open/reveal actions.
type DownloadRow struct {
	widget.BaseWidget

	task         model.DownloadTask
	localization *Localization

	titleLabel    *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	speedLabel    *widget.Label

	stopBtn   *widget.Button
	openBtn   *widget.Button
	revealBtn *widget.Button

	onStop   func(taskID string)
	onOpen   func(filePath string)
	onReveal func(filePath string)
}

// NewDownloadRow creates an empty row
func NewDownloadRow(localization *Localization) *DownloadRow {
	r := &DownloadRow{localization: localization}
	r.ExtendBaseWidget(r)
	r.createUI()
	return r
}

// SetCallbacks sets the action callbacks
func (r *DownloadRow) SetCallbacks(onStop func(taskID string), onOpen, onReveal func(filePath string)) {
	r.onStop = onStop
	r.onOpen = onOpen
	r.onReveal = onReveal
}

// UpdateTask shows task in the row
func (r *DownloadRow) UpdateTask(task model.DownloadTask) {
	r.task = task
	r.updateFromTask()
}

func (r *DownloadRow) createUI() {
	r.titleLabel = widget.NewLabel("")
	r.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	r.titleLabel.Truncation = fyne.TextTruncateEllipsis

	r.statusLabel = widget.NewLabel("")
	r.statusLabel.Alignment = fyne.TextAlignTrailing
	r.progressLabel = widget.NewLabel("")
	r.progressLabel.Alignment = fyne.TextAlignTrailing
	r.speedLabel = widget.NewLabel("")

	r.stopBtn = widget.NewButton(r.localization.GetText(KeyStop), func() {
		if r.onStop != nil {
			r.onStop(r.task.ID)
		}
	})
	r.openBtn = widget.NewButton(r.localization.GetText(KeyOpen), func() {
		if r.onOpen != nil && r.task.OutputPath != "" {
			r.onOpen(r.task.OutputPath)
		}
	})
	r.revealBtn = widget.NewButton(IconFolder, func() {
		if r.onReveal != nil && r.task.OutputPath != "" {
			r.onReveal(r.task.OutputPath)
		}
	})
	r.revealBtn.Importance = widget.LowImportance
}

func (r *DownloadRow) updateFromTask() {
	r.titleLabel.SetText(r.task.GetDisplayTitle())

	switch r.task.Status {
	case model.TaskStatusError:
		r.statusLabel.Importance = widget.DangerImportance
		r.statusLabel.SetText(IconError + " " + r.task.Status.String())
	case model.TaskStatusCompleted:
		r.statusLabel.Importance = widget.SuccessImportance
		r.statusLabel.SetText(r.task.Status.String())
	case model.TaskStatusTransferring:
		r.statusLabel.Importance = widget.HighImportance
		r.statusLabel.SetText(IconDownloads + " " + r.task.Status.String())
	default:
		r.statusLabel.Importance = widget.MediumImportance
		r.statusLabel.SetText(r.task.Status.String())
	}

	r.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, r.effectivePercent()))
	if r.task.Speed != "" && r.task.Status == model.TaskStatusTransferring {
		r.speedLabel.SetText(r.task.Speed)
	} else {
		r.speedLabel.SetText(DashPlaceholder)
	}

	if r.task.Status.IsFinished() {
		r.stopBtn.Disable()
	} else {
		r.stopBtn.Enable()
	}
	if r.task.Status == model.TaskStatusCompleted && r.task.OutputPath != "" {
		r.openBtn.Enable()
		r.revealBtn.Enable()
	} else {
		r.openBtn.Disable()
		r.revealBtn.Disable()
	}
}

// effectivePercent shows 100 for completed tasks whatever the last report
func (r *DownloadRow) effectivePercent() int {
	if r.task.Status == model.TaskStatusCompleted {
		return model.MaxPercent
	}
	return min(max(r.task.Percent, model.MinPercent), model.MaxPercent)
}

// CreateRenderer lays the row out: title on the left, status cluster and
// actions pinned right.
func (r *DownloadRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewHBox(
		fixedWidth(StatusLabelWidth, r.statusLabel),
		fixedWidth(SpeedLabelWidth, r.speedLabel),
		fixedWidth(PercentLabelWidth, r.progressLabel),
	)
	actions := container.NewHBox(r.stopBtn, r.openBtn, r.revealBtn)
	right := container.NewHBox(info, actions)

	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, right, r.titleLabel))
}

// MinSize keeps rows readable in narrow windows
func (r *DownloadRow) MinSize() fyne.Size {
	size := r.BaseWidget.MinSize()
	return fyne.NewSize(max(size.Width, DownloadRowMinWidth), size.Height)
}
