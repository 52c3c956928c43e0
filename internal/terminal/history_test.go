package terminal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryNavigation(t *testing.T) {
	var h History

	_, ok := h.Prev()
	assert.False(t, ok)

	h.Add("help")
	h.Add("")
	h.Add("list")

	cmd, _ := h.Prev()
	assert.Equal(t, "list", cmd)
	cmd, _ = h.Prev()
	assert.Equal(t, "help", cmd)
	cmd, _ = h.Prev()
	assert.Equal(t, "help", cmd, "stays at the oldest entry")

	cmd, _ = h.Next()
	assert.Equal(t, "list", cmd)
	cmd, ok = h.Next()
	assert.True(t, ok)
	assert.Empty(t, cmd)
	_, ok = h.Next()
	assert.False(t, ok)
}

func TestHistoryBounded(t *testing.T) {
	var h History
	for i := range MaxHistory + 5 {
		h.Add(fmt.Sprintf("cmd %d", i))
	}
	assert.Equal(t, MaxHistory, h.Len())

	oldest := ""
	for range MaxHistory {
		oldest, _ = h.Prev()
	}
	assert.Equal(t, "cmd 5", oldest)
}
