package domain

// SlotReason explains why a slot is not available for booking
type SlotReason string

const (
	ReasonOK            SlotReason = "ok"
	ReasonInBreak       SlotReason = "in_break"
	ReasonAlreadyPassed SlotReason = "already_passed"
	ReasonConflict      SlotReason = "conflict"
)

// SlotVerdict represents a candidate reservable start time with its
// availability verdict. Derived on every query, never persisted.
type SlotVerdict struct {
	Window    TimeWindow // [start, start+duration) в локальных минутах
	Available bool
	Reason    SlotReason
}

// StartMinute returns the slot start in minutes since local midnight
func (v SlotVerdict) StartMinute() int {
	return v.Window.StartMinute
}
