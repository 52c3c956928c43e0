package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Scalar is a JSON value that the archive may send either as a string or as
// a number (e.g. year 2024 or "2024"). It is kept in its textual form.
type Scalar string

// UnmarshalJSON accepts strings, numbers and null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("scalar must be a string or a number, got %s", data)
	}
	*s = Scalar(num.String())
	return nil
}

// MarshalJSON writes the scalar back as a JSON string.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// String returns the textual value
func (s Scalar) String() string {
	return string(s)
}

// Paper is one archived exam paper as served by GET /api/papers
type Paper struct {
	Class        Scalar `json:"class"`
	Subject      string `json:"subject"`
	Year         Scalar `json:"year"`
	Semester     Scalar `json:"semester"`
	ExamType     string `json:"exam_type"`
	Medium       string `json:"medium"`
	OriginalName string `json:"original_name"`
	URL          string `json:"url"`
}

// GetDisplayName returns the original file name, or the last URL segment
// when the archive did not record one.
func (p Paper) GetDisplayName() string {
	if name := strings.TrimSpace(p.OriginalName); name != "" {
		return name
	}

	trimmed := strings.TrimRight(p.URL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
