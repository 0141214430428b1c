package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"archeologist/internal/ports"
)

// frameInterval is the display refresh period, about 60 Hz
const frameInterval = time.Second / 60

// frameMsg is the display-refresh tick
type frameMsg time.Time

// FrameQueue implements ports.FrameScheduler on top of Bubble Tea ticks.
// Callbacks requested during a flush run on the following frame.
type FrameQueue struct {
	pending []func(time.Time)
	ticking bool
}

var _ ports.FrameScheduler = (*FrameQueue)(nil)

// RequestFrame queues fn for the next frame
func (q *FrameQueue) RequestFrame(fn func(now time.Time)) {
	q.pending = append(q.pending, fn)
}

// Pending reports whether any callback waits for a frame
func (q *FrameQueue) Pending() bool {
	return len(q.pending) > 0
}

// Flush runs the callbacks queued before the call
func (q *FrameQueue) Flush(now time.Time) {
	batch := q.pending
	q.pending = nil
	for _, fn := range batch {
		fn(now)
	}
}

// Tick returns the command for the next frame, or nil when one is
// already scheduled
func (q *FrameQueue) Tick() tea.Cmd {
	if q.ticking {
		return nil
	}
	q.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// delivered marks the scheduled tick as received
func (q *FrameQueue) delivered() {
	q.ticking = false
}
