package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidWindow = errors.New("availability start time must be before end time")

// WeeklyAvailability is the recurring working window of a staff member for one day of the week.
type WeeklyAvailability struct {
	id        uuid.UUID
	staffID   uuid.UUID
	day       DayOfWeek
	window    Slot
	isActive  bool
	updatedAt time.Time
}

func NewWeeklyAvailability(staffID uuid.UUID, day int, start, end TimeOfDay, isActive bool) (*WeeklyAvailability, error) {
	dow, err := NewDayOfWeek(day)
	if err != nil {
		return nil, err
	}
	window, err := NewSlot(start, end)
	if err != nil {
		return nil, ErrInvalidWindow
	}
	return &WeeklyAvailability{
		id:       uuid.New(),
		staffID:  staffID,
		day:      dow,
		window:   window,
		isActive: isActive,
	}, nil
}

func ReconstructWeeklyAvailability(
	id, staffID uuid.UUID,
	day DayOfWeek,
	start, end TimeOfDay,
	isActive bool,
	updatedAt time.Time,
) *WeeklyAvailability {
	return &WeeklyAvailability{
		id:        id,
		staffID:   staffID,
		day:       day,
		window:    Slot{Start: start, End: end},
		isActive:  isActive,
		updatedAt: updatedAt,
	}
}

// Contains reports whether the slot lies entirely inside an active window.
func (w *WeeklyAvailability) Contains(s Slot) bool {
	return w != nil && w.isActive && s.Within(w.window)
}

func (w *WeeklyAvailability) ID() uuid.UUID        { return w.id }
func (w *WeeklyAvailability) StaffID() uuid.UUID   { return w.staffID }
func (w *WeeklyAvailability) Day() DayOfWeek       { return w.day }
func (w *WeeklyAvailability) Start() TimeOfDay     { return w.window.Start }
func (w *WeeklyAvailability) End() TimeOfDay       { return w.window.End }
func (w *WeeklyAvailability) Window() Slot         { return w.window }
func (w *WeeklyAvailability) IsActive() bool       { return w.isActive }
func (w *WeeklyAvailability) UpdatedAt() time.Time { return w.updatedAt }
