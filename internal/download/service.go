package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/terminal-archive/internal/model"
	"github.com/ytget/terminal-archive/internal/platform"
)

// Parallelism bounds
const (
	MinParallel = 1
	MaxParallel = 10
)

// partSuffix marks files that are still being written
const partSuffix = ".part"

// Service handles download operations
type Service struct {
	tasks       map[string]*model.DownloadTask
	order       []string // task IDs in the order they were added
	cancels     map[string]context.CancelFunc
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	downloadDir string
	client      *http.Client
	logger      *slog.Logger
	onUpdate    func(*model.DownloadTask) // callback for UI updates
}

// NewService creates a new download service
func NewService(downloadDir string, maxParallel int, client *http.Client, logger *slog.Logger) *Service {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tasks:       make(map[string]*model.DownloadTask),
		cancels:     make(map[string]context.CancelFunc),
		maxParallel: clampParallel(maxParallel),
		downloadDir: downloadDir,
		client:      client,
		logger:      logger,
	}
}

func clampParallel(n int) int {
	return max(MinParallel, min(MaxParallel, n))
}

// SetUpdateCallback sets the callback function for task updates. The
// callback receives a copy of the task.
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Service) SetMaxParallelDownloads(n int) {
	s.tasksMutex.Lock()
	s.maxParallel = clampParallel(n)
	s.tasksMutex.Unlock()

	s.startNextPendingTask()
}

// SetDownloadDirectory sets the directory used by tasks started from now on
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	s.downloadDir = dir
	s.tasksMutex.Unlock()
}

// AddTask queues a paper for download from its resolved URL
func (s *Service) AddTask(paper model.Paper, url string) (*model.DownloadTask, error) {
	if url == "" {
		return nil, errors.New("download URL is empty")
	}

	s.tasksMutex.Lock()

	// Check for duplicate URLs
	for _, task := range s.tasks {
		if task.URL == url && !task.Status.IsFinished() {
			s.tasksMutex.Unlock()
			return nil, fmt.Errorf("task already exists for URL: %s", url)
		}
	}

	task := &model.DownloadTask{
		ID:        "download-" + uuid.NewString(),
		Paper:     paper,
		URL:       url,
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}
	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)
	snapshot := *task
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	s.startNextPendingTask()

	return &snapshot, nil
}

// GetTask returns a copy of a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// GetAllTasks returns copies of all tasks in the order they were added
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.order))
	for _, id := range s.order {
		snapshot := *s.tasks[id]
		tasks = append(tasks, &snapshot)
	}
	return tasks
}

// StopTask stops a pending or running task
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()

	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}

	switch {
	case task.Status == model.TaskStatusPending:
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
	case task.Status.IsActive() && task.Status != model.TaskStatusStopping:
		// the task goroutine finishes the transition
		task.Status = model.TaskStatusStopping
		if cancel := s.cancels[id]; cancel != nil {
			cancel()
		}
	default:
		s.tasksMutex.Unlock()
		return fmt.Errorf("task is not active: %s", task.Status)
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return nil
}

// RemoveTask forgets a finished task
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}
	if !task.Status.IsFinished() {
		return fmt.Errorf("task is still running: %s", task.Status)
	}

	delete(s.tasks, id)
	for i, tid := range s.order {
		if tid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// startTask downloads a task that was moved to Starting by the caller
func (s *Service) startTask(ctx context.Context, task *model.DownloadTask, dir string) {
	defer func() {
		s.tasksMutex.Lock()
		s.activeCount--
		delete(s.cancels, task.ID)
		s.tasksMutex.Unlock()

		// Try to start next pending task
		s.startNextPendingTask()
	}()

	s.notifyUpdate(task)

	outputPath, size, err := s.fetch(ctx, task, dir)

	// Update final status
	s.tasksMutex.Lock()
	switch {
	case err != nil && ctx.Err() != nil:
		task.Status = model.TaskStatusStopped
		task.Progress = 0
		task.Percent = 0
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = model.MaxPercent
		task.OutputPath = outputPath
		task.FileSize = size
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	if err != nil {
		s.logger.Warn("download failed", "task", task.ID, "url", task.URL, "error", err)
	} else {
		s.logger.Info("download completed", "task", task.ID, "path", outputPath, "bytes", size)
	}
	s.notifyUpdate(task)
}

// fetch streams the paper into a .part file and renames it once complete
func (s *Service) fetch(ctx context.Context, task *model.DownloadTask, dir string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("get %s: %w", task.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("get %s: unexpected status %d", task.URL, resp.StatusCode)
	}

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", 0, fmt.Errorf("create download directory: %w", err)
	}
	outputPath, err := reservePath(dir, platform.SafeFileName(task.Paper.GetDisplayName()))
	if err != nil {
		return "", 0, err
	}

	partPath := outputPath + partSuffix
	out, err := os.Create(partPath)
	if err != nil {
		_ = os.Remove(outputPath)
		return "", 0, fmt.Errorf("create %s: %w", filepath.Base(partPath), err)
	}

	s.tasksMutex.Lock()
	if task.Status == model.TaskStatusStarting {
		task.Status = model.TaskStatusTransferring
	}
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	pw := &progressWriter{
		total:   resp.ContentLength,
		started: time.Now(),
		report:  func(done, total int64, speed float64) { s.updateTaskProgress(task, done, total, speed) },
	}
	size, copyErr := io.Copy(io.MultiWriter(out, pw), resp.Body)
	closeErr := out.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(partPath)
		_ = os.Remove(outputPath)
		return "", 0, fmt.Errorf("write %s: %w", filepath.Base(outputPath), err)
	}

	if err := os.Rename(partPath, outputPath); err != nil {
		_ = os.Remove(partPath)
		_ = os.Remove(outputPath)
		return "", 0, fmt.Errorf("finalize %s: %w", filepath.Base(outputPath), err)
	}
	return outputPath, size, nil
}

// reservePath claims a free file name in dir by creating it empty, so
// parallel downloads of same-named papers never share a path.
func reservePath(dir, name string) (string, error) {
	for range platform.MaxNameCollisions {
		path, err := platform.UniquePath(dir, name)
		if err != nil {
			return "", err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("reserve %s: %w", filepath.Base(path), err)
		}
		return path, f.Close()
	}
	return "", fmt.Errorf("too many files named %s in %s", name, dir)
}

// updateTaskProgress updates task progress and speed
func (s *Service) updateTaskProgress(task *model.DownloadTask, done, total int64, bytesPerSecond float64) {
	s.tasksMutex.Lock()
	if task.Status != model.TaskStatusTransferring {
		s.tasksMutex.Unlock()
		return
	}

	changed := false
	if percent, ok := model.Percent(done, total); ok && percent > task.Percent {
		task.Percent = percent
		task.Progress = float64(percent) / 100.0
		changed = true
	}
	speed := fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
	if speed != task.Speed {
		task.Speed = speed
		changed = true
	}
	s.tasksMutex.Unlock()

	if changed {
		s.notifyUpdate(task)
	}
}

// startNextPendingTask starts pending tasks while there is capacity
func (s *Service) startNextPendingTask() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, id := range s.order {
		if s.activeCount >= s.maxParallel {
			return
		}
		task := s.tasks[id]
		if task.Status != model.TaskStatusPending {
			continue
		}

		ctx, cancel := context.WithCancel(context.Background())
		s.cancels[id] = cancel
		s.activeCount++
		task.Status = model.TaskStatusStarting
		go s.startTask(ctx, task, s.downloadDir)
	}
}

// notifyUpdate calls the update callback with a copy of the task
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	snapshot := *task
	callback := s.onUpdate
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// progressWriter counts written bytes and reports at most every
// reportInterval, plus once at the end of a known-size body.
type progressWriter struct {
	done       int64
	total      int64
	started    time.Time
	lastReport time.Time
	report     func(done, total int64, bytesPerSecond float64)
}

const reportInterval = 200 * time.Millisecond

func (p *progressWriter) Write(b []byte) (int, error) {
	p.done += int64(len(b))
	now := time.Now()
	if now.Sub(p.lastReport) >= reportInterval || p.done == p.total {
		p.lastReport = now
		elapsed := now.Sub(p.started).Seconds()
		var rate float64
		if elapsed > 0 {
			rate = float64(p.done) / elapsed
		}
		p.report(p.done, p.total, rate)
	}
	return len(b), nil
}
