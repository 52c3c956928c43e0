package ui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"

	"github.com/ytget/terminal-archive/internal/model"
	"github.com/ytget/terminal-archive/internal/upload"
)

type uploadHarness struct {
	view     *UploadView
	uploader *fakeUploader
	alerts   []string
	done     int
}

func newUploadHarness(t *testing.T) *uploadHarness {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	window := app.NewWindow("upload")

	h := &uploadHarness{uploader: &fakeUploader{}}
	h.view = NewUploadView(window, NewLocalization(), h.uploader, nil, func() { h.done++ })
	h.view.alert = func(message string) { h.alerts = append(h.alerts, message) }
	h.view.after = func(_ time.Duration, f func()) { f() }
	return h
}

func (h *uploadHarness) lastAlert() string {
	if len(h.alerts) == 0 {
		return ""
	}
	return h.alerts[len(h.alerts)-1]
}

func textFile(t *testing.T, name, content string) *upload.File {
	t.Helper()
	f, err := upload.Load(name, strings.NewReader(content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return f
}

func TestSelectFileAcceptsDocument(t *testing.T) {
	h := newUploadHarness(t)

	f := textFile(t, "notes.txt", "line one\nline two\n")
	h.view.SelectFile(f)

	if h.view.Selected() != f {
		t.Fatal("Expected the file to be selected")
	}
	if !strings.HasPrefix(h.view.fileLabel.Text, "notes.txt") {
		t.Errorf("Expected file name in label, got %q", h.view.fileLabel.Text)
	}
	if len(h.alerts) != 0 {
		t.Errorf("Expected no alert, got %v", h.alerts)
	}
}

func TestSelectFileAcceptsStructuredText(t *testing.T) {
	files := map[string]string{
		"notes.txt": "{\"a\": 1}\n",
		"page.txt":  "<html><body>hi</body></html>\n",
		"marks.txt": "name,math,phys\nann,90,80\nbob,70,85\n",
	}
	for name, content := range files {
		h := newUploadHarness(t)
		f := textFile(t, name, content)
		h.view.SelectFile(f)

		if h.view.Selected() != f {
			t.Errorf("%s: expected the file to be selected", name)
		}
		if len(h.alerts) != 0 {
			t.Errorf("%s: expected no alert, got %v", name, h.alerts)
		}
	}
}

func TestDropFilesSelectsLocalDocument(t *testing.T) {
	h := newUploadHarness(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("line one\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	remote, err := storage.ParseURI("https://example.org/x.pdf")
	if err != nil {
		t.Fatalf("ParseURI failed: %v", err)
	}

	h.view.DropFiles([]fyne.URI{remote, storage.NewFileURI(path)})

	if h.view.Selected() == nil || h.view.Selected().Name != "notes.txt" {
		t.Fatalf("Expected dropped file to be selected, got %+v", h.view.Selected())
	}
}

func TestDropFilesReportsUnreadable(t *testing.T) {
	h := newUploadHarness(t)

	h.view.DropFiles([]fyne.URI{storage.NewFileURI(filepath.Join(t.TempDir(), "missing.pdf"))})

	if h.view.Selected() != nil {
		t.Error("Expected no selection")
	}
	if got := h.lastAlert(); got != h.view.localization.GetText(KeyErrorReadingFile) {
		t.Errorf("Unexpected alert %q", got)
	}
}

func TestDropFilesIgnoredWhileSending(t *testing.T) {
	h := newUploadHarness(t)
	h.view.ApplyTask(model.UploadTask{Status: model.TaskStatusTransferring, Percent: 10})
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	h.view.DropFiles([]fyne.URI{storage.NewFileURI(path)})

	if h.view.Selected() != nil {
		t.Error("Expected the drop to be ignored during an upload")
	}
}

func TestSelectFileRejectsOversized(t *testing.T) {
	h := newUploadHarness(t)

	content := bytes.Repeat([]byte("a"), upload.MaxFileSize+1)
	f, err := upload.Load("big.txt", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	h.view.SelectFile(f)

	if h.view.Selected() != nil {
		t.Error("Expected selection to be cleared")
	}
	if got := h.lastAlert(); got != "File size exceeds 16MB limit" {
		t.Errorf("Unexpected alert %q", got)
	}
	if got := h.view.fileLabel.Text; got != h.view.localization.GetText(KeyNoFileChosen) {
		t.Errorf("Expected empty selection label, got %q", got)
	}
}

func TestSelectFileRejectsImage(t *testing.T) {
	h := newUploadHarness(t)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	f, err := upload.Load("scan.png", bytes.NewReader(png))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	h.view.SelectFile(f)

	if h.view.Selected() != nil {
		t.Error("Expected selection to be cleared")
	}
	if got := h.lastAlert(); got != "Invalid file type. Please upload PDF, DOC, DOCX, or TXT files only." {
		t.Errorf("Unexpected alert %q", got)
	}
}

func TestSubmitWithoutFile(t *testing.T) {
	h := newUploadHarness(t)

	h.view.onSubmit()

	if got := h.lastAlert(); got != "Please select a file to upload" {
		t.Errorf("Unexpected alert %q", got)
	}
	if len(h.uploader.started) != 0 {
		t.Error("Expected no upload to start")
	}
}

func TestSubmitSendsTrimmedMetadata(t *testing.T) {
	h := newUploadHarness(t)
	h.view.SelectFile(textFile(t, "notes.txt", "hello"))
	h.view.entries["class"].SetText(" 10 ")
	h.view.entries["subject"].SetText("Math")

	h.view.onSubmit()

	if len(h.uploader.started) != 1 {
		t.Fatalf("Expected one upload, got %d", len(h.uploader.started))
	}
	fields := h.uploader.fields[0]
	if fields["class"] != "10" || fields["subject"] != "Math" {
		t.Errorf("Unexpected fields %v", fields)
	}
	if _, ok := fields["year"]; ok {
		t.Error("Expected empty fields to be left out")
	}
}

func TestSubmitWhileInFlight(t *testing.T) {
	h := newUploadHarness(t)
	h.uploader.startErr = upload.ErrUploadInFlight
	h.view.SelectFile(textFile(t, "notes.txt", "hello"))

	h.view.onSubmit()

	if got := h.lastAlert(); got != "An upload is already in progress." {
		t.Errorf("Unexpected alert %q", got)
	}
	if h.view.Selected() == nil {
		t.Error("Expected selection to be kept")
	}
}

func TestApplyTaskShowsProgress(t *testing.T) {
	h := newUploadHarness(t)

	h.view.ApplyTask(model.UploadTask{Status: model.TaskStatusTransferring, Percent: 40})

	if !h.view.progressBox.Visible() {
		t.Error("Expected progress to be visible")
	}
	if h.view.progress.Value != 0.4 {
		t.Errorf("Expected progress 0.4, got %v", h.view.progress.Value)
	}
	if h.view.progressLabel.Text != "40%" {
		t.Errorf("Expected 40%% label, got %q", h.view.progressLabel.Text)
	}
	if !h.view.uploadBtn.Disabled() || h.view.cancelBtn.Disabled() {
		t.Error("Expected upload disabled and cancel enabled while sending")
	}
}

func TestApplyTaskCompletedReturnsHome(t *testing.T) {
	h := newUploadHarness(t)
	h.view.SelectFile(textFile(t, "notes.txt", "hello"))

	h.view.ApplyTask(model.UploadTask{Status: model.TaskStatusCompleted, Percent: 100})

	if h.done != 1 {
		t.Errorf("Expected one return to the terminal, got %d", h.done)
	}
	if h.view.progressBox.Visible() || h.view.progress.Value != 0 {
		t.Error("Expected the form to be reset after returning")
	}
	if h.view.Selected() != nil {
		t.Error("Expected selection cleared after success")
	}
	if len(h.alerts) != 0 {
		t.Errorf("Expected no alert on success, got %v", h.alerts)
	}
}

func TestApplyTaskFailures(t *testing.T) {
	tests := []struct {
		kind model.FailureKind
		want string
	}{
		{model.FailureRejected, "Upload failed. Please try again."},
		{model.FailureNetwork, "Upload failed due to network error."},
		{model.FailureAborted, "Upload cancelled."},
	}

	for _, tt := range tests {
		h := newUploadHarness(t)
		h.view.ApplyTask(model.UploadTask{Status: model.TaskStatusTransferring, Percent: 70})

		status := model.TaskStatusError
		if tt.kind == model.FailureAborted {
			status = model.TaskStatusStopped
		}
		h.view.ApplyTask(model.UploadTask{Status: status, Percent: 70, Failure: tt.kind})

		if got := h.lastAlert(); got != tt.want {
			t.Errorf("%s: expected alert %q, got %q", tt.kind, tt.want, got)
		}
		if h.view.progressBox.Visible() {
			t.Errorf("%s: expected progress hidden", tt.kind)
		}
		if h.view.progress.Value != 0 || h.view.progressLabel.Text != "0%" {
			t.Errorf("%s: expected progress reset to 0, got %v %q", tt.kind, h.view.progress.Value, h.view.progressLabel.Text)
		}
		if h.view.uploadBtn.Disabled() {
			t.Errorf("%s: expected upload button enabled again", tt.kind)
		}
	}
}

func TestBackCancelsAndLeaves(t *testing.T) {
	h := newUploadHarness(t)

	h.view.onBack()

	if h.uploader.cancels != 1 {
		t.Errorf("Expected one cancel, got %d", h.uploader.cancels)
	}
	if h.done != 1 {
		t.Errorf("Expected to leave the view, got %d", h.done)
	}
}

func TestValidationMessage(t *testing.T) {
	h := newUploadHarness(t)

	tests := []struct {
		err  error
		want string
	}{
		{upload.ErrNoFile, "Please select a file to upload"},
		{upload.ErrTooLarge, "File size exceeds 16MB limit"},
		{upload.ErrUnsupportedType, "Invalid file type. Please upload PDF, DOC, DOCX, or TXT files only."},
		{errors.New("boom"), "Upload failed. Please try again."},
	}
	for _, tt := range tests {
		if got := h.view.validationMessage(tt.err); got != tt.want {
			t.Errorf("validationMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSummaryText(t *testing.T) {
	h := newUploadHarness(t)

	tests := []struct {
		summary upload.Summary
		want    string
	}{
		{upload.Summary{MIMEType: upload.TypePDF, Pages: 3}, "application/pdf · 3 pages"},
		{upload.Summary{MIMEType: upload.TypeDOCX, Words: 120}, upload.TypeDOCX + " · 120 words"},
		{upload.Summary{MIMEType: upload.TypeTXT, Lines: 2}, "text/plain · 2 lines"},
		{upload.Summary{MIMEType: upload.TypeTXT}, "text/plain"},
	}
	for _, tt := range tests {
		if got := h.view.summaryText(tt.summary); got != tt.want {
			t.Errorf("summaryText(%+v) = %q, want %q", tt.summary, got, tt.want)
		}
	}
}
