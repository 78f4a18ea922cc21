package timed

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrOverlap - two windows share an instant
	ErrOverlap = errors.New("schedule windows overlap")
	// ErrInvalidWindow - a window has no duration or no message
	ErrInvalidWindow = errors.New("invalid schedule window")
)

// Window - messages shown from Start (inclusive) to Start+Duration (exclusive)
type Window struct {
	Start    time.Time
	Duration time.Duration
	Messages []string
}

// End of the window, exclusive
func (w Window) End() time.Time {
	return w.Start.Add(w.Duration)
}

// Contains reports whether t falls in [Start, End)
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End())
}

func (w Window) overlaps(o Window) bool {
	return w.Start.Before(o.End()) && o.Start.Before(w.End())
}

// Schedule - an ordered list of non overlapping windows
type Schedule []Window

// NewSchedule validates the configured windows
func NewSchedule(windows []WindowConfiguration) (Schedule, error) {
	result := make(Schedule, 0, len(windows))
	for idx, wc := range windows {
		start, err := time.Parse(time.RFC3339, wc.Start)
		if err != nil {
			return nil, fmt.Errorf("schedule window %d: %w", idx, err)
		}
		if wc.Duration <= 0 {
			return nil, fmt.Errorf("schedule window %d: duration must be positive: %w", idx, ErrInvalidWindow)
		}
		if len(wc.Messages) == 0 {
			return nil, fmt.Errorf("schedule window %d: no message: %w", idx, ErrInvalidWindow)
		}
		w := Window{
			Start:    start,
			Duration: time.Duration(wc.Duration) * time.Second,
			Messages: append([]string(nil), wc.Messages...),
		}
		for prev, other := range result {
			if w.overlaps(other) {
				return nil, fmt.Errorf("schedule windows %d and %d: %w", prev, idx, ErrOverlap)
			}
		}
		result = append(result, w)
	}
	return result, nil
}

// Active returns the window containing t
func (s Schedule) Active(t time.Time) (Window, bool) {
	for _, w := range s {
		if w.Contains(t) {
			return w, true
		}
	}
	return Window{}, false
}
