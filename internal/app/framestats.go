package app

import (
	"time"
)

// FrameReport summarizes the frames drawn during one stats interval.
type FrameReport struct {
	Frames       int
	Elapsed      time.Duration
	FPS          float64
	AverageFrame time.Duration
}

// FrameStats accumulates frame times and produces a report once per
// interval. now is a monotonic clock such as hrtime.Now.
type FrameStats struct {
	interval time.Duration
	now      func() time.Duration

	start  time.Duration
	frames int
	busy   time.Duration
}

// NewFrameStats starts counting at the current time. An interval of zero
// disables reporting.
func NewFrameStats(interval time.Duration, now func() time.Duration) *FrameStats {
	return &FrameStats{
		interval: interval,
		now:      now,
		start:    now(),
	}
}

// Record adds one frame that took frame to draw. It returns a report and
// resets the counters when the interval has elapsed.
func (s *FrameStats) Record(frame time.Duration) (FrameReport, bool) {
	if s.interval <= 0 {
		return FrameReport{}, false
	}

	s.frames++
	s.busy += frame

	now := s.now()
	elapsed := now - s.start
	if elapsed < s.interval {
		return FrameReport{}, false
	}

	report := FrameReport{
		Frames:       s.frames,
		Elapsed:      elapsed,
		FPS:          float64(s.frames) / elapsed.Seconds(),
		AverageFrame: s.busy / time.Duration(s.frames),
	}

	s.start = now
	s.frames = 0
	s.busy = 0
	return report, true
}

// Reset restarts the interval, dropping any frames counted so far.
func (s *FrameStats) Reset() {
	s.start = s.now()
	s.frames = 0
	s.busy = 0
}
