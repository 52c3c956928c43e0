package terminal

import (
	"slices"
	"sync"

	"github.com/ytget/terminal-archive/internal/model"
	"github.com/ytget/terminal-archive/internal/platform"
	"github.com/ytget/terminal-archive/internal/search"
)

// Session is the state of one terminal page: the loaded papers, the last
// listed results and the presentation mode. Slices handed out are copies.
type Session struct {
	mu       sync.RWMutex
	papers   []model.Paper
	loaded   bool
	results  []search.Result
	modality platform.Modality
	operator string
}

// NewSession creates an empty session
func NewSession(modality platform.Modality) *Session {
	return &Session{modality: modality}
}

// SetPapers replaces the whole collection
func (s *Session) SetPapers(papers []model.Paper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.papers = slices.Clone(papers)
	s.loaded = true
}

// Papers returns the collection in archive order
func (s *Session) Papers() []model.Paper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.papers)
}

// Loaded reports whether a fetch has succeeded in this session
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// SetResults remembers the last listed results for get/open
func (s *Session) SetResults(results []search.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = slices.Clone(results)
}

// Result returns the 1-based n-th entry of the last listing
func (s *Session) Result(n int) (search.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n < 1 || n > len(s.results) {
		return search.Result{}, false
	}
	return s.results[n-1], true
}

// ResultCount returns the size of the last listing
func (s *Session) ResultCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// SetModality updates the presentation mode, e.g. after a resize
func (s *Session) SetModality(m platform.Modality) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modality = m
}

// Modality returns the current presentation mode
func (s *Session) Modality() platform.Modality {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modality
}

// SetOperator stores the sanitized name entered at the admin prompt
func (s *Session) SetOperator(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operator = name
}

// Operator returns the admin operator name, empty if none was entered
func (s *Session) Operator() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.operator
}
