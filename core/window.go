package core

import (
	"math"
	"sync"
	"time"
)

// VisibleRange is the inclusive index range a list view should render.
type VisibleRange struct {
	First int
	Last  int
}

// ComputeVisibleRange returns the inclusive index range to render for a
// scroll-position-driven list window:
//
//	first = max(0, floor(scrollOffset/itemHeight) - overscan)
//	last  = min(itemCount-1, first + ceil(containerHeight/itemHeight) + 2*overscan)
//
// Degenerate inputs (no items, non-positive item height) yield an empty
// range with Last < First.
func ComputeVisibleRange(itemCount int, itemHeight, containerHeight, scrollOffset float64, overscan int) VisibleRange {
	if itemCount <= 0 || itemHeight <= 0 {
		return VisibleRange{First: 0, Last: -1}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	first := int(math.Floor(scrollOffset/itemHeight)) - overscan
	if first < 0 {
		first = 0
	}
	visible := int(math.Ceil(containerHeight / itemHeight))
	last := first + visible + 2*overscan
	if last > itemCount-1 {
		last = itemCount - 1
	}
	if first > last {
		first = last
	}
	return VisibleRange{First: first, Last: last}
}

// ScrollOffsetForIndex returns the target scroll offset that aligns the given
// item with the top of the container. Consumers request a smooth transition
// to the returned offset.
func ScrollOffsetForIndex(index int, itemHeight float64) float64 {
	if index < 0 || itemHeight <= 0 {
		return 0
	}
	return float64(index) * itemHeight
}

// FrameLimiter rate-limits window recomputation to roughly one pass per
// animation frame, so fast scrolling does not trigger redundant work. Safe
// for concurrent use.
type FrameLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time // injectable clock for tests
}

// NewFrameLimiter returns a limiter allowing one pass per interval. A
// non-positive interval defaults to ~60fps.
func NewFrameLimiter(interval time.Duration) *FrameLimiter {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &FrameLimiter{interval: interval, now: time.Now}
}

// Allow reports whether a recomputation may run now, and if so consumes the
// current frame slot.
func (f *FrameLimiter) Allow() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	if now.Sub(f.last) < f.interval {
		return false
	}
	f.last = now
	return true
}
