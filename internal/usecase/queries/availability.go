package queries

import (
	"context"
	"time"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	GetAvailableSlots(ctx context.Context, staffID, serviceID uuid.UUID, date time.Time) (*AvailableSlotsView, error)
	ListWeeklyAvailability(ctx context.Context, staffID uuid.UUID) ([]AvailabilityWindowView, error)
}

type availabilityQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAvailabilityQueries(uow shared.UnitOfWork) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow}
}

// GetAvailableSlots never fails because nothing is bookable: no window, an
// inactive window or a missing assignment all yield an empty list.
func (q *availabilityQueriesImpl) GetAvailableSlots(ctx context.Context, staffID, serviceID uuid.UUID, date time.Time) (*AvailableSlotsView, error) {
	date = appointment.CalendarDate(date)
	view := &AvailableSlotsView{
		Date:        date.Format(time.DateOnly),
		Slots:       []SlotView{},
		BookedSlots: []BookedSlotView{},
	}

	err := q.uow.Read(ctx, func(ctx context.Context, r shared.Reads) error {
		staff, err := r.StaffByID(ctx, staffID)
		if err != nil {
			return shared.OrNotFound(err, shared.ErrStaffNotFound)
		}
		if !staff.IsBookableStaff() {
			return shared.ErrStaffNotFound
		}
		svc, err := r.ServiceByID(ctx, serviceID)
		if err != nil {
			return shared.OrNotFound(err, shared.ErrServiceNotFound)
		}

		asg, err := r.Assignment(ctx, staffID, serviceID)
		if err != nil {
			return err
		}
		if !asg.Bookable() || !svc.IsActive() {
			return nil
		}

		window, err := r.ActiveWindow(ctx, staffID, schedule.DayOfWeekOf(date))
		if err != nil {
			return err
		}
		candidates := schedule.GenerateSlots(window, asg.EffectiveDuration(svc))
		if len(candidates) == 0 {
			return nil
		}

		occupied, err := r.OccupiedSlots(ctx, staffID, date, nil)
		if err != nil {
			return err
		}
		free, booked := schedule.Partition(candidates, occupied)

		for _, s := range free {
			view.Slots = append(view.Slots, ToSlotView(s))
		}
		for _, b := range booked {
			bv := BookedSlotView{StartTime: b.Slot.Start.String(), EndTime: b.Slot.End.String()}
			if b.BookedBy != nil {
				id := b.BookedBy.CustomerID
				bv.CustomerID = &id
				bv.CustomerName = b.BookedBy.DisplayName
			}
			view.BookedSlots = append(view.BookedSlots, bv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *availabilityQueriesImpl) ListWeeklyAvailability(ctx context.Context, staffID uuid.UUID) ([]AvailabilityWindowView, error) {
	views := []AvailabilityWindowView{}
	err := q.uow.Read(ctx, func(ctx context.Context, r shared.Reads) error {
		if _, err := r.StaffByID(ctx, staffID); err != nil {
			return shared.OrNotFound(err, shared.ErrStaffNotFound)
		}
		windows, err := r.WindowsByStaff(ctx, staffID)
		if err != nil {
			return err
		}
		views = views[:0]
		for _, w := range windows {
			if w.IsActive() {
				views = append(views, ToWindowView(w))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
