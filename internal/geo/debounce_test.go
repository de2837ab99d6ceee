package geo

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalescesRapidCalls(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var fired atomic.Int32
	var lastQuery atomic.Value

	// Two keystrokes inside the quiet window: only the second fires.
	d.Schedule(func() { fired.Add(1); lastQuery.Store("MG R") })
	d.Schedule(func() { fired.Add(1); lastQuery.Store("MG Road") })

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, "MG Road", lastQuery.Load())
}

func TestDebouncerFiresAfterQuietPeriod(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	done := make(chan struct{})
	d.Schedule(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled call never fired")
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Schedule(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebouncerSequentialSchedulesBothFire(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var fired atomic.Int32
	d.Schedule(func() { fired.Add(1) })
	time.Sleep(80 * time.Millisecond)
	d.Schedule(func() { fired.Add(1) })
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, int32(2), fired.Load())
}
