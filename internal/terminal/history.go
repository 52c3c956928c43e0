package terminal

import "sync"

// MaxHistory bounds the number of remembered commands
const MaxHistory = 100

// History is the list of executed commands, browsed with Up and Down.
type History struct {
	mu      sync.Mutex
	entries []string
	cursor  int // len(entries) means "past the newest entry"
}

// Add appends a command and moves the cursor past it
func (h *History) Add(command string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if command == "" {
		return
	}
	h.entries = append(h.entries, command)
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[len(h.entries)-MaxHistory:]
	}
	h.cursor = len(h.entries)
}

// Prev steps back and returns the older command. At the oldest entry it
// keeps returning that entry.
func (h *History) Prev() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps forward. Moving past the newest entry returns "" so the
// input line is cleared.
func (h *History) Next() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor], true
}

// Len returns the number of remembered commands
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
