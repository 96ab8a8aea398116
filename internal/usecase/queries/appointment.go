package queries

import (
	"context"

	"salon-booking/internal/domain/user"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor user.Principal) (*AppointmentView, error)
	// ListByCustomer lists the actor's own appointments newest first; admins see every customer's.
	ListByCustomer(ctx context.Context, actor user.Principal, cursor *Cursor, limit int) ([]*AppointmentView, *Cursor, error)
}

type appointmentQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAppointmentQueries(uow shared.UnitOfWork) AppointmentQueries {
	return &appointmentQueriesImpl{uow: uow}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor user.Principal) (*AppointmentView, error) {
	var view *AppointmentView
	err := q.uow.Read(ctx, func(ctx context.Context, r shared.Reads) error {
		appt, err := r.AppointmentByID(ctx, id)
		if err != nil {
			return shared.OrNotFound(err, shared.ErrAppointmentNotFound)
		}
		if !appt.CanView(actor) {
			return shared.ErrNotAllowed
		}
		pay, err := r.PaymentByAppointmentID(ctx, id)
		if err != nil {
			return shared.OrNotFound(err, shared.ErrPaymentNotFound)
		}
		view = ToAppointmentView(appt, pay)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *appointmentQueriesImpl) ListByCustomer(ctx context.Context, actor user.Principal, cursor *Cursor, limit int) ([]*AppointmentView, *Cursor, error) {
	limit = ValidateLimit(limit)
	f := shared.AppointmentFilter{Limit: limit + 1}
	if !actor.IsAdmin() {
		customerID := actor.ID
		f.CustomerID = &customerID
	}
	if cursor != nil && cursor.After != "" {
		after, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, errs.Mark(err, ErrInvalidCursor)
		}
		f.After = &after
	}

	var views []*AppointmentView
	var next *Cursor
	err := q.uow.Read(ctx, func(ctx context.Context, r shared.Reads) error {
		appts, err := r.ListAppointments(ctx, f)
		if err != nil {
			return err
		}
		next = nil
		if len(appts) > limit {
			last := appts[limit-1]
			next = &Cursor{After: EncodeAfterCursor(shared.AppointmentPosition{Date: last.Date(), Start: last.Slot().Start, ID: last.ID()})}
			appts = appts[:limit]
		}

		ids := make([]uuid.UUID, len(appts))
		for i, a := range appts {
			ids[i] = a.ID()
		}
		pays, err := r.PaymentsByAppointmentIDs(ctx, ids)
		if err != nil {
			return err
		}
		views = make([]*AppointmentView, len(appts))
		for i, a := range appts {
			views[i] = ToAppointmentView(a, pays[a.ID()])
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return views, next, nil
}
