package schedule

import (
	"sort"

	"github.com/google/uuid"
)

// Occupant identifies who holds a booked interval. Only the id and display name are exposed.
type Occupant struct {
	CustomerID  uuid.UUID
	DisplayName string
}

// Occupied is an existing appointment interval on the day being checked.
type Occupied struct {
	AppointmentID uuid.UUID
	Slot          Slot
	Cancelled     bool
	BookedBy      *Occupant
}

type BookedSlot struct {
	Slot     Slot
	BookedBy *Occupant
}

// Partition splits candidates into those free of any non-cancelled occupied
// interval, preserving order, and the list of booked intervals sorted by start.
func Partition(candidates []Slot, occupied []Occupied) ([]Slot, []BookedSlot) {
	active := activeIntervals(occupied)

	free := make([]Slot, 0, len(candidates))
	for _, c := range candidates {
		if !overlapsAny(c, active) {
			free = append(free, c)
		}
	}

	booked := make([]BookedSlot, 0, len(active))
	for _, o := range active {
		booked = append(booked, BookedSlot{Slot: o.Slot, BookedBy: o.BookedBy})
	}
	return free, booked
}

// IsFree reports whether slot overlaps no non-cancelled occupied interval.
func IsFree(slot Slot, occupied []Occupied) bool {
	return !overlapsAny(slot, activeIntervals(occupied))
}

func activeIntervals(occupied []Occupied) []Occupied {
	active := make([]Occupied, 0, len(occupied))
	for _, o := range occupied {
		if !o.Cancelled {
			active = append(active, o)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Slot.Start < active[j].Slot.Start })
	return active
}

func overlapsAny(s Slot, occupied []Occupied) bool {
	for _, o := range occupied {
		if s.Overlaps(o.Slot) {
			return true
		}
	}
	return false
}
