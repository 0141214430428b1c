package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameQueue_FlushRunsQueuedOnly(t *testing.T) {
	q := &FrameQueue{}
	var ran []string

	q.RequestFrame(func(time.Time) {
		ran = append(ran, "first")
		q.RequestFrame(func(time.Time) { ran = append(ran, "rescheduled") })
	})
	assert.True(t, q.Pending())

	q.Flush(time.Now())
	assert.Equal(t, []string{"first"}, ran)
	assert.True(t, q.Pending(), "callback queued during flush waits for the next frame")

	q.Flush(time.Now())
	assert.Equal(t, []string{"first", "rescheduled"}, ran)
	assert.False(t, q.Pending())
}

func TestFrameQueue_PassesFrameTime(t *testing.T) {
	q := &FrameQueue{}
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var got time.Time
	q.RequestFrame(func(now time.Time) { got = now })

	q.Flush(at)
	assert.Equal(t, at, got)
}

func TestFrameQueue_SingleTickInFlight(t *testing.T) {
	q := &FrameQueue{}
	assert.NotNil(t, q.Tick())
	assert.Nil(t, q.Tick(), "second tick while one is scheduled")

	q.delivered()
	assert.NotNil(t, q.Tick())
}
