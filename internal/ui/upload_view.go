package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/terminal-archive/internal/model"
	"github.com/ytget/terminal-archive/internal/platform"
	"github.com/ytget/terminal-archive/internal/upload"
)

// Uploader sends one document at a time to the archive
type Uploader interface {
	SetUpdateCallback(callback func(*model.UploadTask))
	Start(f *upload.File, fields upload.Fields) (*model.UploadTask, error)
	Cancel() error
}

var _ Uploader = (*upload.Service)(nil)

// AcceptedExtensions filters the file picker
var AcceptedExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

// UploadView is the form that submits a paper to the archive with a
// progress bar. Outcomes are reported in an alert; success returns to the
// terminal after UploadRedirectDelay.
type UploadView struct {
	window       fyne.Window
	localization *Localization
	uploader     Uploader
	logger       *slog.Logger
	onDone       func()

	// alert shows a message to the user; replaced in tests
	alert func(message string)
	// after schedules f; replaced in tests
	after func(d time.Duration, f func())

	file *upload.File

	title         *widget.Label
	fileLabel     *widget.Label
	summaryLabel  *widget.Label
	metadataLabel *widget.Label
	statusLabel   *widget.Label
	form          *widget.Form
	entries       map[string]*widget.Entry
	chooseBtn     *widget.Button
	uploadBtn     *widget.Button
	cancelBtn     *widget.Button
	backBtn       *widget.Button
	progress      *widget.ProgressBar
	progressLabel *widget.Label
	progressBox   *fyne.Container
	root          *fyne.Container
}

// NewUploadView creates the form. onDone is called on the UI goroutine
// when the view should be left.
func NewUploadView(window fyne.Window, localization *Localization, uploader Uploader, logger *slog.Logger, onDone func()) *UploadView {
	if logger == nil {
		logger = slog.Default()
	}
	v := &UploadView{
		window:       window,
		localization: localization,
		uploader:     uploader,
		logger:       logger,
		onDone:       onDone,
		entries:      make(map[string]*widget.Entry),
	}
	v.alert = func(message string) {
		dialog.ShowInformation(v.localization.GetText(KeyUploadTitle), message, v.window)
	}
	v.after = func(d time.Duration, f func()) {
		time.AfterFunc(d, func() { fyne.Do(f) })
	}

	v.createUI()
	uploader.SetUpdateCallback(v.onTaskUpdate)
	return v
}

// Container returns the view canvas object
func (v *UploadView) Container() fyne.CanvasObject {
	return v.root
}

func (v *UploadView) createUI() {
	v.title = widget.NewLabel("")
	v.title.TextStyle = fyne.TextStyle{Bold: true}

	v.fileLabel = widget.NewLabel("")
	v.fileLabel.Truncation = fyne.TextTruncateEllipsis
	v.summaryLabel = widget.NewLabel("")
	v.summaryLabel.Importance = widget.LowImportance
	v.metadataLabel = widget.NewLabel("")
	v.statusLabel = widget.NewLabel("")
	v.statusLabel.Importance = widget.SuccessImportance
	v.statusLabel.Hide()

	v.chooseBtn = widget.NewButton("", v.onChoose)
	v.uploadBtn = widget.NewButton("", v.onSubmit)
	v.uploadBtn.Importance = widget.HighImportance
	v.cancelBtn = widget.NewButton("", v.onCancel)
	v.cancelBtn.Disable()
	v.backBtn = widget.NewButton("", v.onBack)
	v.backBtn.Importance = widget.LowImportance

	v.form = widget.NewForm()
	for _, field := range upload.MetadataFields {
		entry := widget.NewEntry()
		v.entries[field] = entry
		v.form.Append(field, entry)
	}

	v.progress = widget.NewProgressBar()
	v.progress.TextFormatter = func() string { return "" }
	v.progressLabel = widget.NewLabel(fmt.Sprintf(ProgressLabelFormat, 0))
	v.progressBox = container.NewBorder(nil, nil, nil, v.progressLabel, v.progress)
	v.progressBox.Hide()

	fileRow := container.NewBorder(nil, nil, v.chooseBtn, nil, v.fileLabel)
	actions := container.NewHBox(v.uploadBtn, v.cancelBtn, v.backBtn)

	body := container.NewVBox(
		v.title,
		widget.NewSeparator(),
		fileRow,
		v.summaryLabel,
		v.metadataLabel,
		v.form,
		v.progressBox,
		v.statusLabel,
		actions,
	)
	v.root = container.NewCenter(container.NewGridWrap(fyne.NewSize(UploadFormWidth, body.MinSize().Height), body))
	v.SetLocalization(v.localization)
}

// SetLocalization refreshes the form texts
func (v *UploadView) SetLocalization(localization *Localization) {
	v.localization = localization
	v.title.SetText(localization.GetText(KeyUploadTitle))
	v.metadataLabel.SetText(localization.GetText(KeyMetadata))
	v.chooseBtn.SetText(localization.GetText(KeyChooseFile))
	v.uploadBtn.SetText(localization.GetText(KeyUpload))
	v.cancelBtn.SetText(localization.GetText(KeyUploadCancel))
	v.backBtn.SetText(localization.GetText(KeyBack))

	labels := map[string]string{
		"class":     KeyClass,
		"subject":   KeySubject,
		"year":      KeyYear,
		"semester":  KeySemester,
		"exam_type": KeyExamType,
		"medium":    KeyMedium,
	}
	for i, field := range upload.MetadataFields {
		if i < len(v.form.Items) {
			v.form.Items[i].Text = localization.GetText(labels[field])
		}
	}
	v.form.Refresh()

	if v.file == nil {
		v.fileLabel.SetText(localization.GetText(KeyNoFileChosen))
	}
}

// Reset clears the selection, the metadata and the progress indicator
func (v *UploadView) Reset() {
	v.clearSelection()
	for _, entry := range v.entries {
		entry.SetText("")
	}
	v.resetProgress()
	v.statusLabel.Hide()
	v.setBusy(false)
}

func (v *UploadView) onChoose() {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			v.logger.Error("file picker failed", "error", err)
			v.alert(v.localization.GetText(KeyErrorReadingFile))
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		f, err := upload.Load(reader.URI().Name(), reader)
		if err != nil {
			v.logger.Error("failed to read picked file", "uri", reader.URI().String(), "error", err)
			v.alert(v.localization.GetText(KeyErrorReadingFile))
			v.clearSelection()
			return
		}
		v.SelectFile(f)
	}, v.window)
	picker.SetFilter(storage.NewExtensionFileFilter(AcceptedExtensions))
	picker.Show()
}

// SelectFile validates a picked document. An invalid one is reported and
// the selection cleared; a valid one is inspected in the background.
func (v *UploadView) SelectFile(f *upload.File) {
	if err := upload.Validate(f); err != nil {
		v.logger.Info("picked file rejected", "error", err)
		v.alert(v.validationMessage(err))
		v.clearSelection()
		return
	}

	v.file = f
	v.fileLabel.SetText(fmt.Sprintf("%s (%s)", f.Name, platform.FormatBytes(uint64(f.Size))))
	v.summaryLabel.SetText(f.MIMEType)
	v.statusLabel.Hide()

	go func() {
		summary, err := upload.Inspect(f)
		if err != nil {
			v.logger.Debug("document not inspected", "file", f.Name, "error", err)
			return
		}
		text := v.summaryText(summary)
		fyne.Do(func() {
			if v.file == f {
				v.summaryLabel.SetText(text)
			}
		})
	}()
}

// DropFiles selects the first local document dropped on the window.
// Drops are ignored while an upload is running.
func (v *UploadView) DropFiles(uris []fyne.URI) {
	if v.uploadBtn.Disabled() {
		return
	}
	for _, u := range uris {
		if u == nil || u.Scheme() != "file" {
			continue
		}
		f, err := upload.LoadFile(u.Path())
		if err != nil {
			v.logger.Error("failed to read dropped file", "path", u.Path(), "error", err)
			v.alert(v.localization.GetText(KeyErrorReadingFile))
			v.clearSelection()
			return
		}
		v.SelectFile(f)
		return
	}
}

// Selected returns the picked document, or nil
func (v *UploadView) Selected() *upload.File {
	return v.file
}

func (v *UploadView) onSubmit() {
	if err := upload.Validate(v.file); err != nil {
		v.alert(v.validationMessage(err))
		v.clearSelection()
		return
	}

	fields := upload.Fields{}
	for name, entry := range v.entries {
		if value := strings.TrimSpace(entry.Text); value != "" {
			fields[name] = value
		}
	}

	task, err := v.uploader.Start(v.file, fields)
	if err != nil {
		if errors.Is(err, upload.ErrUploadInFlight) {
			v.alert(v.localization.GetText(KeyUploadInFlight))
			return
		}
		v.alert(v.validationMessage(err))
		v.clearSelection()
		return
	}
	v.logger.Info("upload submitted", "task_id", task.ID, "file", task.FileName, "fields", len(fields))
}

func (v *UploadView) onCancel() {
	if err := v.uploader.Cancel(); err != nil {
		v.logger.Debug("nothing to cancel", "error", err)
	}
}

func (v *UploadView) onBack() {
	v.onCancel()
	v.Reset()
	if v.onDone != nil {
		v.onDone()
	}
}

// onTaskUpdate receives upload snapshots on the service goroutine
func (v *UploadView) onTaskUpdate(task *model.UploadTask) {
	if task == nil {
		return
	}
	snapshot := *task
	fyne.Do(func() { v.ApplyTask(snapshot) })
}

// ApplyTask reflects an upload snapshot in the form. UI goroutine only.
func (v *UploadView) ApplyTask(task model.UploadTask) {
	switch task.Status {
	case model.TaskStatusStarting, model.TaskStatusTransferring, model.TaskStatusStopping:
		v.setBusy(true)
		v.progressBox.Show()
		v.setProgress(task)
	case model.TaskStatusCompleted:
		task.Percent = model.MaxPercent
		v.setProgress(task)
		v.cancelBtn.Disable()
		v.statusLabel.SetText(v.localization.GetText(KeyUploadComplete))
		v.statusLabel.Show()
		v.after(UploadRedirectDelay, func() {
			v.Reset()
			if v.onDone != nil {
				v.onDone()
			}
		})
	case model.TaskStatusStopped, model.TaskStatusError:
		v.resetProgress()
		v.setBusy(false)
		v.alert(v.failureMessage(task.Failure))
	}
}

func (v *UploadView) setBusy(busy bool) {
	if busy {
		v.chooseBtn.Disable()
		v.uploadBtn.Disable()
		v.cancelBtn.Enable()
		return
	}
	v.chooseBtn.Enable()
	v.uploadBtn.Enable()
	v.cancelBtn.Disable()
}

func (v *UploadView) setProgress(task model.UploadTask) {
	v.progress.SetValue(float64(task.Percent) / model.MaxPercent)
	v.progressLabel.SetText(task.GetProgressLabel())
}

func (v *UploadView) resetProgress() {
	v.setProgress(model.UploadTask{Percent: model.MinPercent})
	v.progressBox.Hide()
}

func (v *UploadView) clearSelection() {
	v.file = nil
	v.fileLabel.SetText(v.localization.GetText(KeyNoFileChosen))
	v.summaryLabel.SetText("")
}

// validationMessage returns the alert text for a rejected document
func (v *UploadView) validationMessage(err error) string {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		return v.localization.GetText(KeyFileTooLarge)
	case errors.Is(err, upload.ErrUnsupportedType):
		return v.localization.GetText(KeyInvalidFileType)
	case errors.Is(err, upload.ErrNoFile):
		return v.localization.GetText(KeySelectFile)
	default:
		return v.localization.GetText(KeyUploadFailed)
	}
}

// failureMessage returns the alert text for a failed transfer
func (v *UploadView) failureMessage(kind model.FailureKind) string {
	switch kind {
	case model.FailureNetwork:
		return v.localization.GetText(KeyUploadNetworkFail)
	case model.FailureAborted:
		return v.localization.GetText(KeyUploadCancelled)
	default:
		return v.localization.GetText(KeyUploadFailed)
	}
}

// summaryText describes an inspected document, e.g. "application/pdf · 3 pages"
func (v *UploadView) summaryText(s upload.Summary) string {
	var count string
	switch {
	case s.Pages > 0:
		count = fmt.Sprintf("%d %s", s.Pages, v.localization.GetText(KeyPages))
	case s.Words > 0:
		count = fmt.Sprintf("%d %s", s.Words, v.localization.GetText(KeyWords))
	case s.Lines > 0:
		count = fmt.Sprintf("%d %s", s.Lines, v.localization.GetText(KeyLines))
	default:
		return s.MIMEType
	}
	return s.MIMEType + MiddleDotSeparator + count
}
