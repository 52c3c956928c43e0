package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Progress bounds
const (
	MinPercent = 0
	MaxPercent = 100
)

// UploadTask represents one attempt to submit a file to the archive
type UploadTask struct {
	ID         string
	FileName   string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	BytesSent  int64
	BytesTotal int64       // -1 if unknown
	Failure    FailureKind // set when Status is Stopped or Error
	LastError  string      // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// DownloadTask represents a single paper being saved locally
type DownloadTask struct {
	ID         string
	Paper      Paper
	URL        string
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2MB/s")
	LastError  string    // last error message if any
	OutputPath string    // path to downloaded file
	FileSize   int64     // file size in bytes
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
}

// Percent converts a byte count into a rounded percentage in [0,100].
// ok is false when the total is unknown.
func Percent(done, total int64) (percent int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	p := int(math.Round(float64(done) / float64(total) * 100))
	if p < MinPercent {
		p = MinPercent
	}
	if p > MaxPercent {
		p = MaxPercent
	}
	return p, true
}

// ResetProgress puts the task back to 0% for a new attempt
func (ut *UploadTask) ResetProgress() {
	ut.Progress = 0
	ut.Percent = 0
	ut.BytesSent = 0
}

// Advance records sent bytes and reports whether the visible percentage
// changed. The percentage never goes down within one attempt.
func (ut *UploadTask) Advance(sent, total int64) bool {
	ut.BytesSent = sent
	percent, ok := Percent(sent, total)
	if !ok || percent <= ut.Percent {
		return false
	}
	ut.Percent = percent
	ut.Progress = float64(percent) / 100.0
	return true
}

// Complete forces the task to 100%
func (ut *UploadTask) Complete() {
	ut.Status = TaskStatusCompleted
	ut.Percent = MaxPercent
	ut.Progress = 1.0
	if ut.BytesTotal > 0 {
		ut.BytesSent = ut.BytesTotal
	}
	ut.FinishedAt = time.Now()
}

// Fail marks the task as failed and resets its progress to 0%
func (ut *UploadTask) Fail(kind FailureKind, err error) {
	if kind == FailureAborted {
		ut.Status = TaskStatusStopped
	} else {
		ut.Status = TaskStatusError
	}
	ut.Failure = kind
	if err != nil {
		ut.LastError = err.Error()
	}
	ut.ResetProgress()
	ut.FinishedAt = time.Now()
}

// GetProgressLabel returns the numeric label shown next to the bar
func (ut *UploadTask) GetProgressLabel() string {
	return fmt.Sprintf("%d%%", ut.Percent)
}

// GetDisplayTitle returns paper name, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if name := dt.Paper.GetDisplayName(); name != "" {
		return name
	}

	// Filename from OutputPath (support both / and \ separators)
	if dt.OutputPath != "" {
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}

	return dt.URL
}
