package schedule

import (
	"errors"
	"time"
)

var ErrInvalidSlot = errors.New("slot start must be before end")

// Slot is a half-open interval [Start, End) within one calendar day.
type Slot struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewSlot(start, end TimeOfDay) (Slot, error) {
	if start >= end || !start.Valid() || !end.Valid() {
		return Slot{}, ErrInvalidSlot
	}
	return Slot{Start: start, End: end}, nil
}

func SlotStarting(start TimeOfDay, d time.Duration) (Slot, error) {
	return NewSlot(start, start.Add(d))
}

func (s Slot) Duration() time.Duration {
	return (s.End - s.Start).Duration()
}

// Overlaps treats both slots as half-open, so touching slots do not overlap.
func (s Slot) Overlaps(o Slot) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Slot) Within(outer Slot) bool {
	return s.Start >= outer.Start && s.End <= outer.End
}

// GenerateSlots steps through the window in increments of d. A slot that would
// cross the window end is dropped, not truncated. Inactive or missing windows
// yield no slots.
func GenerateSlots(window *WeeklyAvailability, d time.Duration) []Slot {
	if window == nil || !window.IsActive() || d < time.Second {
		return []Slot{}
	}
	slots := []Slot{}
	step := TimeOfDayFromDuration(d)
	for start := window.Start(); start+step <= window.End(); start += step {
		slots = append(slots, Slot{Start: start, End: start + step})
	}
	return slots
}
