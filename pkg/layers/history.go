package layers

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Entry is one step recorded while a message moved through a layer.
type Entry struct {
	ID      uuid.UUID // transmission the step belongs to
	Time    time.Time
	Message string
}

type history struct {
	mu      sync.Mutex
	entries []Entry
}

func (h *history) record(id uuid.UUID, format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Entry{
		ID:      id,
		Time:    time.Now(),
		Message: fmt.Sprintf(format, args...),
	})
}

// History returns a copy of the recorded steps, oldest first.
func (h *history) History() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *history) ClearHistory() {
	h.mu.Lock()
	h.entries = nil
	h.mu.Unlock()
}

var discard = log.New(io.Discard)

func loggerOrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return discard
	}
	return l
}
