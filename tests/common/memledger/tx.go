//go:build unit

package memledger

import (
	"bytes"
	"context"
	"sort"
	"time"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/domain/payment"
	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/infra"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type tx struct {
	l  *Ledger
	st *state
}

// LockSchedule is a no-op; transactions already run one at a time.
func (t *tx) LockSchedule(ctx context.Context, _ uuid.UUID, _ time.Time) error {
	return ctx.Err()
}

func (t *tx) Appointments() shared.AppointmentRepository { return &appointments{t} }
func (t *tx) Payments() shared.PaymentRepository         { return &payments{t} }
func (t *tx) Idempotency() shared.IdempotencyRepository  { return &idempotency{t} }
func (t *tx) Schedule() shared.ScheduleRepository        { return &scheduleRepo{t} }
func (t *tx) Reads() shared.Reads                        { return &reads{l: t.l, st: t.st} }

// ---- appointments

type appointments struct{ *tx }

// overlapping mirrors the exclusion constraint on (staff, date, time range).
func (r *appointments) overlapping(a *appointment.Appointment) bool {
	if a.Status() == appointment.StatusCancelled {
		return false
	}
	for _, other := range r.st.appointments {
		if other.ID() == a.ID() || other.StaffID() != a.StaffID() ||
			other.Status() == appointment.StatusCancelled || !other.Date().Equal(a.Date()) {
			continue
		}
		if other.Slot().Overlaps(a.Slot()) {
			return true
		}
	}
	return false
}

func (r *appointments) Create(_ context.Context, a *appointment.Appointment) error {
	if r.overlapping(a) {
		return infra.WrapRepoErr(r.l.logger, infra.KindExclusionViolation, "appointment overlaps an existing booking", nil)
	}
	r.st.appointments[a.ID()] = cloneAppointment(a)
	return nil
}

func (r *appointments) Update(_ context.Context, a *appointment.Appointment) error {
	if _, ok := r.st.appointments[a.ID()]; !ok {
		return r.l.notFound("appointment to update not found")
	}
	if r.overlapping(a) {
		return infra.WrapRepoErr(r.l.logger, infra.KindExclusionViolation, "appointment overlaps an existing booking", nil)
	}
	r.st.appointments[a.ID()] = cloneAppointment(a)
	return nil
}

func (r *appointments) GetForUpdate(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.st.appointments[id]
	if !ok {
		return nil, r.l.notFound("failed to lock appointment")
	}
	return cloneAppointment(a), nil
}

// ---- payments

type payments struct{ *tx }

func (r *payments) Create(_ context.Context, p *payment.Payment) error {
	for _, existing := range r.st.payments {
		if existing.AppointmentID() == p.AppointmentID() || existing.OrderID() == p.OrderID() {
			return infra.WrapRepoErr(r.l.logger, infra.KindDuplicateKey, "payment already exists", nil)
		}
	}
	r.st.payments[p.ID()] = clonePayment(p)
	return nil
}

func (r *payments) GetForUpdate(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, ok := r.st.payments[id]
	if !ok {
		return nil, r.l.notFound("failed to lock payment")
	}
	return clonePayment(p), nil
}

func (r *payments) UpdateCapture(_ context.Context, p *payment.Payment, expectedPrior payment.Status) error {
	stored, ok := r.st.payments[p.ID()]
	if !ok || stored.Status() != expectedPrior {
		return infra.WrapRepoErr(r.l.logger, infra.KindStaleState, "payment status changed concurrently", nil)
	}
	r.st.payments[p.ID()] = clonePayment(p)
	return nil
}

// ---- idempotency

type idempotency struct{ *tx }

func (r *idempotency) Claim(_ context.Context, key, customerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idempotencyKey{key, customerID}
	if existing, ok := r.st.idempotency[k]; ok && existing.ExpiresAt.After(r.l.now()) {
		return false, nil
	}
	r.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		CustomerID:  customerID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *idempotency) Get(_ context.Context, key, customerID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.idempotency[idempotencyKey{key, customerID}]
	if !ok {
		return nil, r.l.notFound("idempotency key not found")
	}
	return &rec, nil
}

func (r *idempotency) Complete(_ context.Context, key, customerID, appointmentID uuid.UUID) error {
	k := idempotencyKey{key, customerID}
	rec, ok := r.st.idempotency[k]
	if !ok {
		return r.l.notFound("idempotency key not found")
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultAppointmentID = &appointmentID
	r.st.idempotency[k] = rec
	return nil
}

// ---- schedule

type scheduleRepo struct{ *tx }

func (r *scheduleRepo) UpsertWindow(_ context.Context, w *schedule.WeeklyAvailability) (*schedule.WeeklyAvailability, error) {
	k := windowKey{w.StaffID(), w.Day()}
	id := w.ID()
	if existing, ok := r.st.windows[k]; ok {
		id = existing.ID()
	}
	stored := schedule.ReconstructWeeklyAvailability(id, w.StaffID(), w.Day(), w.Start(), w.End(), w.IsActive(), r.l.now())
	r.st.windows[k] = stored
	return stored, nil
}

func (r *scheduleRepo) UpsertAssignment(_ context.Context, a *catalog.Assignment) error {
	r.st.assignments[assignmentKey{a.StaffID(), a.ServiceID()}] = a
	return nil
}

// ---- reads

type reads struct {
	l  *Ledger
	st *state
}

func (r *reads) StaffByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, r.l.notFound("failed to find staff member")
	}
	return u, nil
}

func (r *reads) ServiceByID(_ context.Context, id uuid.UUID) (*catalog.Service, error) {
	s, ok := r.st.services[id]
	if !ok {
		return nil, r.l.notFound("failed to find service")
	}
	return s, nil
}

func (r *reads) Assignment(_ context.Context, staffID, serviceID uuid.UUID) (*catalog.Assignment, error) {
	return r.st.assignments[assignmentKey{staffID, serviceID}], nil
}

func (r *reads) ActiveWindow(_ context.Context, staffID uuid.UUID, day schedule.DayOfWeek) (*schedule.WeeklyAvailability, error) {
	w, ok := r.st.windows[windowKey{staffID, day}]
	if !ok || !w.IsActive() {
		return nil, nil
	}
	return w, nil
}

func (r *reads) WindowsByStaff(_ context.Context, staffID uuid.UUID) ([]*schedule.WeeklyAvailability, error) {
	out := []*schedule.WeeklyAvailability{}
	for k, w := range r.st.windows {
		if k.staffID == staffID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day() < out[j].Day() })
	return out, nil
}

func (r *reads) OccupiedSlots(_ context.Context, staffID uuid.UUID, date time.Time, exclude *uuid.UUID) ([]schedule.Occupied, error) {
	day := appointment.CalendarDate(date)
	out := []schedule.Occupied{}
	for _, a := range r.st.appointments {
		if a.StaffID() != staffID || !a.Date().Equal(day) || a.Status() == appointment.StatusCancelled {
			continue
		}
		if exclude != nil && a.ID() == *exclude {
			continue
		}
		occ := schedule.Occupied{AppointmentID: a.ID(), Slot: a.Slot()}
		if u, ok := r.st.users[a.CustomerID()]; ok {
			occ.BookedBy = &schedule.Occupant{CustomerID: u.ID(), DisplayName: u.Name()}
		}
		out = append(out, occ)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot.Start < out[j].Slot.Start })
	return out, nil
}

func (r *reads) AppointmentByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.st.appointments[id]
	if !ok {
		return nil, r.l.notFound("failed to find appointment")
	}
	return cloneAppointment(a), nil
}

func (r *reads) PaymentByID(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, ok := r.st.payments[id]
	if !ok {
		return nil, r.l.notFound("failed to find payment")
	}
	return clonePayment(p), nil
}

func (r *reads) PaymentByAppointmentID(_ context.Context, appointmentID uuid.UUID) (*payment.Payment, error) {
	for _, p := range r.st.payments {
		if p.AppointmentID() == appointmentID {
			return clonePayment(p), nil
		}
	}
	return nil, r.l.notFound("failed to find payment for appointment")
}

func (r *reads) ListAppointments(_ context.Context, f shared.AppointmentFilter) ([]*appointment.Appointment, error) {
	all := []*appointment.Appointment{}
	for _, a := range r.st.appointments {
		if f.CustomerID != nil && a.CustomerID() != *f.CustomerID {
			continue
		}
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return sortsBefore(position(all[i]), position(all[j])) })

	out := []*appointment.Appointment{}
	for _, a := range all {
		if f.After != nil && !sortsBefore(*f.After, position(a)) {
			continue
		}
		if len(out) == f.Limit {
			break
		}
		out = append(out, cloneAppointment(a))
	}
	return out, nil
}

func (r *reads) PaymentsByAppointmentIDs(_ context.Context, appointmentIDs []uuid.UUID) (map[uuid.UUID]*payment.Payment, error) {
	want := make(map[uuid.UUID]bool, len(appointmentIDs))
	for _, id := range appointmentIDs {
		want[id] = true
	}
	out := map[uuid.UUID]*payment.Payment{}
	for _, p := range r.st.payments {
		if want[p.AppointmentID()] {
			out[p.AppointmentID()] = clonePayment(p)
		}
	}
	return out, nil
}

func position(a *appointment.Appointment) shared.AppointmentPosition {
	return shared.AppointmentPosition{Date: a.Date(), Start: a.Slot().Start, ID: a.ID()}
}

// sortsBefore reports whether a comes first in the newest-first listing. Ids compare bytewise like Postgres uuids.
func sortsBefore(a, b shared.AppointmentPosition) bool {
	ad, bd := appointment.CalendarDate(a.Date), appointment.CalendarDate(b.Date)
	if !ad.Equal(bd) {
		return ad.After(bd)
	}
	if a.Start != b.Start {
		return a.Start > b.Start
	}
	return bytes.Compare(a.ID[:], b.ID[:]) > 0
}
