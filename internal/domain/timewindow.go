package domain

import "fmt"

// TimeWindow represents a half-open interval [StartMinute, EndMinute)
// of wall-clock minutes since local midnight (0-1440 scale).
// Immutable value type used by slot generation and layout packing.
type TimeWindow struct {
	StartMinute int
	EndMinute   int
}

// NewTimeWindow creates a validated TimeWindow
func NewTimeWindow(startMinute, endMinute int) (TimeWindow, error) {
	w := TimeWindow{StartMinute: startMinute, EndMinute: endMinute}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

// Validate checks the 0 <= start < end <= 1440 invariant
func (w TimeWindow) Validate() error {
	if w.StartMinute < 0 || w.EndMinute > MinutesPerDay || w.StartMinute >= w.EndMinute {
		return fmt.Errorf("%w: time window [%d, %d) is out of day range", ErrInvalidTimeWindow, w.StartMinute, w.EndMinute)
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect.
// Boundary touch is not an overlap: a window ending exactly where
// another starts does not conflict (back-to-back bookings are legal).
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.StartMinute < other.EndMinute && other.StartMinute < w.EndMinute
}

// Contains reports whether other lies entirely within w
func (w TimeWindow) Contains(other TimeWindow) bool {
	return w.StartMinute <= other.StartMinute && other.EndMinute <= w.EndMinute
}

// DurationMinutes returns the window length in minutes
func (w TimeWindow) DurationMinutes() int {
	return w.EndMinute - w.StartMinute
}

// ClampToDay clips the window to the [0, 1440) day scale.
// Used for bookings that spill over local midnight.
func (w TimeWindow) ClampToDay() TimeWindow {
	clamped := w
	if clamped.StartMinute < 0 {
		clamped.StartMinute = 0
	}
	if clamped.EndMinute > MinutesPerDay {
		clamped.EndMinute = MinutesPerDay
	}
	return clamped
}

// IsEmpty reports whether the window covers no time at all
func (w TimeWindow) IsEmpty() bool {
	return w.StartMinute >= w.EndMinute
}
