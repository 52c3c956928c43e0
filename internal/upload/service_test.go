package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/terminal-archive/internal/model"
)

const waitTimeout = 5 * time.Second

type recorder struct {
	updates chan model.UploadTask
}

func newRecorder(s *Service) *recorder {
	r := &recorder{updates: make(chan model.UploadTask, 4096)}
	s.SetUpdateCallback(func(t *model.UploadTask) {
		r.updates <- *t
	})
	return r
}

// waitFinal collects snapshots until the task finishes
func (r *recorder) waitFinal(t *testing.T) []model.UploadTask {
	t.Helper()
	var seen []model.UploadTask
	deadline := time.After(waitTimeout)
	for {
		select {
		case u := <-r.updates:
			seen = append(seen, u)
			if u.Status.IsFinished() {
				return seen
			}
		case <-deadline:
			t.Fatalf("upload did not finish, got %d updates", len(seen))
			return nil
		}
	}
}

func pdfFile(size int) *File {
	content := bytes.Repeat([]byte("x"), size)
	return &File{Name: "paper.pdf", Size: int64(size), MIMEType: TypePDF, Content: content}
}

type received struct {
	fileName, subject, year, class string
	content                        []byte
	contentLength                  int64
}

func TestUploadSuccess(t *testing.T) {
	gotCh := make(chan received, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, hdr, err := r.FormFile(FileField)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		content, _ := io.ReadAll(f)
		gotCh <- received{
			fileName:      hdr.Filename,
			subject:       r.FormValue("subject"),
			year:          r.FormValue("year"),
			class:         r.FormValue("class"),
			content:       content,
			contentLength: r.ContentLength,
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewService(srv.URL+"/upload", srv.Client(), nil)
	rec := newRecorder(svc)

	file := pdfFile(1 << 20)
	task, err := svc.Start(file, Fields{"subject": "Math", "year": "2024", "unknown": "dropped"})
	require.NoError(t, err)
	assert.Equal(t, "paper.pdf", task.FileName)
	assert.Zero(t, task.Percent)

	updates := rec.waitFinal(t)
	final := updates[len(updates)-1]
	require.Equal(t, model.TaskStatusCompleted, final.Status, final.LastError)
	assert.Equal(t, 100, final.Percent)
	assert.Equal(t, model.FailureNone, final.Failure)

	last := -1
	for _, u := range updates {
		assert.GreaterOrEqual(t, u.Percent, last, "progress went backwards")
		assert.True(t, u.Percent >= model.MinPercent && u.Percent <= model.MaxPercent)
		last = u.Percent
	}

	got := <-gotCh
	assert.Equal(t, "paper.pdf", got.fileName)
	assert.Equal(t, file.Content, got.content)
	assert.Equal(t, "Math", got.subject)
	assert.Equal(t, "2024", got.year)
	assert.Empty(t, got.class)
	assert.Equal(t, final.BytesTotal, got.contentLength)

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, model.TaskStatusCompleted, current.Status)
}

func TestUploadProgressOnlyOnChange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
	}))
	defer srv.Close()

	svc := NewService(srv.URL, srv.Client(), nil)
	rec := newRecorder(svc)

	_, err := svc.Start(pdfFile(4<<20), nil)
	require.NoError(t, err)

	seen := map[int]int{}
	for _, u := range rec.waitFinal(t) {
		if u.Status == model.TaskStatusTransferring {
			seen[u.Percent]++
		}
	}
	for percent, n := range seen {
		if percent == 0 {
			continue // the status change itself is announced at 0%
		}
		assert.Equal(t, 1, n, "percent %d announced more than once", percent)
	}
}

func TestUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewService(srv.URL, srv.Client(), nil)
	rec := newRecorder(svc)

	_, err := svc.Start(pdfFile(1024), nil)
	require.NoError(t, err)

	updates := rec.waitFinal(t)
	final := updates[len(updates)-1]
	assert.Equal(t, model.TaskStatusError, final.Status)
	assert.Equal(t, model.FailureRejected, final.Failure)
	assert.Zero(t, final.Percent)
	assert.Contains(t, final.LastError, "500")
}

func TestUploadNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	svc := NewService(endpoint, nil, nil)
	rec := newRecorder(svc)

	_, err := svc.Start(pdfFile(1024), nil)
	require.NoError(t, err)

	updates := rec.waitFinal(t)
	final := updates[len(updates)-1]
	assert.Equal(t, model.TaskStatusError, final.Status)
	assert.Equal(t, model.FailureNetwork, final.Failure)
	assert.Zero(t, final.Percent)
}

func blockingServer(t *testing.T) (srv *httptest.Server, started <-chan struct{}) {
	t.Helper()
	ch := make(chan struct{}, 1)
	release := make(chan struct{})
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case ch <- struct{}{}:
		default:
		}
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	return srv, ch
}

func waitStarted(t *testing.T, started <-chan struct{}) {
	t.Helper()
	select {
	case <-started:
	case <-time.After(waitTimeout):
		t.Fatal("request never reached the server")
	}
}

func TestUploadCancel(t *testing.T) {
	srv, started := blockingServer(t)

	svc := NewService(srv.URL, srv.Client(), nil)
	rec := newRecorder(svc)

	_, err := svc.Start(pdfFile(1024), nil)
	require.NoError(t, err)
	waitStarted(t, started)

	require.NoError(t, svc.Cancel())

	updates := rec.waitFinal(t)
	final := updates[len(updates)-1]
	assert.Equal(t, model.TaskStatusStopped, final.Status)
	assert.Equal(t, model.FailureAborted, final.Failure)
	assert.Zero(t, final.Percent)

	assert.ErrorIs(t, svc.Cancel(), ErrNoActiveUpload)
}

func TestUploadSingleFlight(t *testing.T) {
	srv, started := blockingServer(t)

	svc := NewService(srv.URL, srv.Client(), nil)
	rec := newRecorder(svc)

	first, err := svc.Start(pdfFile(1024), nil)
	require.NoError(t, err)
	waitStarted(t, started)

	_, err = svc.Start(pdfFile(10), nil)
	assert.ErrorIs(t, err, ErrUploadInFlight)

	require.NoError(t, svc.Cancel())
	final := rec.waitFinal(t)
	assert.Equal(t, first.ID, final[len(final)-1].ID)
}

func TestUploadNewAttemptStartsAtZero(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	svc := NewService(srv.URL, srv.Client(), nil)
	rec := newRecorder(svc)

	_, err := svc.Start(pdfFile(2048), nil)
	require.NoError(t, err)
	rec.waitFinal(t)

	second, err := svc.Start(pdfFile(2048), nil)
	require.NoError(t, err)
	assert.Zero(t, second.Percent)

	updates := rec.waitFinal(t)
	assert.Zero(t, updates[0].Percent)
	assert.Equal(t, model.TaskStatusCompleted, updates[len(updates)-1].Status)
}

func TestUploadValidatesBeforeRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	svc := NewService(srv.URL, srv.Client(), nil)

	_, err := svc.Start(&File{Name: "big.pdf", Size: MaxFileSize + 1, MIMEType: TypePDF}, nil)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = svc.Start(&File{Name: "pic.png", Size: 10, MIMEType: "image/png", Content: []byte("0123456789")}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = svc.Start(nil, nil)
	assert.ErrorIs(t, err, ErrNoFile)

	assert.Zero(t, hits.Load())
	_, ok := svc.Current()
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, model.FailureNone, Classify(nil))
	assert.Equal(t, model.FailureRejected, Classify(fmt.Errorf("wrap: %w", &RejectedError{StatusCode: 413})))
	assert.Equal(t, model.FailureAborted, Classify(fmt.Errorf("post: %w", errors.Join(errors.New("x"), context.Canceled))))
	assert.Equal(t, model.FailureNetwork, Classify(errors.New("connection refused")))
}

func TestNewBodyLength(t *testing.T) {
	f := pdfFile(333)
	b, contentType, err := newBody(f, Fields{"medium": "English"})
	require.NoError(t, err)
	assert.Contains(t, contentType, "multipart/form-data; boundary=")

	data, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.EqualValues(t, len(data), b.total)
	assert.Equal(t, b.total, b.sent)
	assert.Contains(t, string(data), `name="file"; filename="paper.pdf"`)
	assert.Contains(t, string(data), "Content-Type: application/pdf")
}
