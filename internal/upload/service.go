package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/terminal-archive/internal/model"
)

// FileField is the multipart field carrying the document
const FileField = "file"

// MetadataFields are the optional form fields sent with a document, in
// wire order.
var MetadataFields = []string{"class", "subject", "year", "semester", "exam_type", "medium"}

// Fields holds metadata values keyed by MetadataFields names
type Fields map[string]string

// Service errors
var (
	ErrUploadInFlight = errors.New("an upload is already in progress")
	ErrNoActiveUpload = errors.New("no upload in progress")
)

// RejectedError is returned when the archive answers with anything but 200
type RejectedError struct {
	StatusCode int
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("upload rejected: status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Classify maps the outcome of an upload to a failure kind
func Classify(err error) model.FailureKind {
	var rejected *RejectedError
	switch {
	case err == nil:
		return model.FailureNone
	case errors.As(err, &rejected):
		return model.FailureRejected
	case errors.Is(err, context.Canceled):
		return model.FailureAborted
	default:
		return model.FailureNetwork
	}
}

// Service submits documents to the archive, one at a time
type Service struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger

	mu       sync.Mutex
	current  *model.UploadTask
	cancel   context.CancelFunc
	onUpdate func(*model.UploadTask) // callback for UI updates

	// serializes snapshots so observers see them in order
	notifyMu sync.Mutex
}

// NewService creates an upload service posting to endpoint
func NewService(endpoint string, client *http.Client, logger *slog.Logger) *Service {
	if client == nil {
		// no overall timeout: large uploads on slow links are cancelled by the user
		client = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{endpoint: endpoint, client: client, logger: logger}
}

// SetUpdateCallback sets the callback receiving task snapshots. The
// callback must not call back into the service synchronously.
func (s *Service) SetUpdateCallback(callback func(*model.UploadTask)) {
	s.mu.Lock()
	s.onUpdate = callback
	s.mu.Unlock()
}

// Current returns a snapshot of the latest upload, if any
func (s *Service) Current() (model.UploadTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.UploadTask{}, false
	}
	return *s.current, true
}

// Start validates the file and begins uploading it in the background.
// Nothing is sent when validation fails.
func (s *Service) Start(f *File, fields Fields) (*model.UploadTask, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}

	body, contentType, err := newBody(f, fields)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.current != nil && s.current.Status.IsActive() {
		s.mu.Unlock()
		return nil, ErrUploadInFlight
	}

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		s.mu.Unlock()
		cancel()
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = body.total

	task := &model.UploadTask{
		ID:         "upload-" + uuid.NewString(),
		FileName:   f.Name,
		Status:     model.TaskStatusStarting,
		BytesTotal: body.total,
		StartedAt:  time.Now(),
	}
	task.ResetProgress()
	s.current = task
	s.cancel = cancel
	s.mu.Unlock()

	body.report = func(sent int64) {
		s.publish(task, func(t *model.UploadTask) bool {
			return t.Status == model.TaskStatusTransferring && t.Advance(sent, t.BytesTotal)
		})
	}

	s.logger.Info("upload started",
		"task", task.ID,
		"file", f.Name,
		"type", f.MIMEType,
		"bytes", body.total)

	s.publish(task, func(t *model.UploadTask) bool { return true })
	result := *task
	go s.run(ctx, cancel, task, req)

	return &result, nil
}

// Cancel aborts the upload in flight
func (s *Service) Cancel() error {
	s.mu.Lock()
	task, cancel := s.current, s.cancel
	if task == nil || !task.Status.IsActive() || task.Status == model.TaskStatusStopping {
		s.mu.Unlock()
		return ErrNoActiveUpload
	}
	s.mu.Unlock()

	s.publish(task, func(t *model.UploadTask) bool {
		t.Status = model.TaskStatusStopping
		return true
	})
	cancel()
	return nil
}

func (s *Service) run(ctx context.Context, cancel context.CancelFunc, task *model.UploadTask, req *http.Request) {
	defer cancel()

	s.publish(task, func(t *model.UploadTask) bool {
		if t.Status != model.TaskStatusStarting {
			return false
		}
		t.Status = model.TaskStatusTransferring
		return true
	})

	err := s.send(req)
	if err != nil && ctx.Err() != nil {
		err = fmt.Errorf("%w: %w", context.Canceled, err)
	}

	kind := Classify(err)
	s.publish(task, func(t *model.UploadTask) bool {
		if kind == model.FailureNone {
			t.Complete()
		} else {
			t.Fail(kind, err)
		}
		return true
	})

	if err != nil {
		s.logger.Warn("upload failed", "task", task.ID, "kind", kind, "error", err)
		return
	}
	s.logger.Info("upload completed", "task", task.ID, "elapsed", time.Since(task.StartedAt).Round(time.Millisecond))
}

func (s *Service) send(req *http.Request) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", req.URL.Redacted(), err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode != http.StatusOK {
		return &RejectedError{StatusCode: resp.StatusCode}
	}
	return nil
}

// publish applies mutate under the lock and hands a snapshot to the
// observer when it reports a change.
func (s *Service) publish(task *model.UploadTask, mutate func(*model.UploadTask) bool) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	changed := mutate(task)
	snapshot := *task
	callback := s.onUpdate
	s.mu.Unlock()

	if changed && callback != nil {
		callback(&snapshot)
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// body streams a multipart form whose size is known up front
type body struct {
	r      io.Reader
	sent   int64
	total  int64
	report func(sent int64)
}

func (b *body) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if n > 0 {
		b.sent += int64(n)
		if b.report != nil {
			b.report(b.sent)
		}
	}
	return n, err
}

// newBody lays out metadata fields followed by the file part. The file
// bytes are not copied; only the multipart framing is buffered.
func newBody(f *File, fields Fields) (*body, string, error) {
	var head bytes.Buffer
	mw := multipart.NewWriter(&head)

	for _, name := range MetadataFields {
		value := strings.TrimSpace(fields[name])
		if value == "" {
			continue
		}
		if err := mw.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FileField, quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", f.MIMEType)
	if _, err := mw.CreatePart(h); err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}

	prefix := bytes.Clone(head.Bytes())
	head.Reset()
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	suffix := bytes.Clone(head.Bytes())

	b := &body{
		r:     io.MultiReader(bytes.NewReader(prefix), bytes.NewReader(f.Content), bytes.NewReader(suffix)),
		total: int64(len(prefix) + len(f.Content) + len(suffix)),
	}
	return b, mw.FormDataContentType(), nil
}
