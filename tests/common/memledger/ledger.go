//go:build unit

// Package memledger is an in-memory implementation of the usecase ports.
// Each transaction works on a copy of the state that replaces the shared
// state only on commit, and transactions run one at a time.
package memledger

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/domain/payment"
	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/infra"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type assignmentKey struct {
	staffID   uuid.UUID
	serviceID uuid.UUID
}

type windowKey struct {
	staffID uuid.UUID
	day     schedule.DayOfWeek
}

type idempotencyKey struct {
	key        uuid.UUID
	customerID uuid.UUID
}

type state struct {
	users        map[uuid.UUID]*user.User
	services     map[uuid.UUID]*catalog.Service
	assignments  map[assignmentKey]*catalog.Assignment
	windows      map[windowKey]*schedule.WeeklyAvailability
	appointments map[uuid.UUID]*appointment.Appointment
	payments     map[uuid.UUID]*payment.Payment
	idempotency  map[idempotencyKey]shared.IdempotencyRecord
}

func newState() *state {
	return &state{
		users:        map[uuid.UUID]*user.User{},
		services:     map[uuid.UUID]*catalog.Service{},
		assignments:  map[assignmentKey]*catalog.Assignment{},
		windows:      map[windowKey]*schedule.WeeklyAvailability{},
		appointments: map[uuid.UUID]*appointment.Appointment{},
		payments:     map[uuid.UUID]*payment.Payment{},
		idempotency:  map[idempotencyKey]shared.IdempotencyRecord{},
	}
}

// clone copies the mutable entities; catalog data is never modified in place.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.services {
		c.services[k] = v
	}
	for k, v := range s.assignments {
		c.assignments[k] = v
	}
	for k, v := range s.windows {
		c.windows[k] = v
	}
	for k, v := range s.appointments {
		c.appointments[k] = cloneAppointment(v)
	}
	for k, v := range s.payments {
		c.payments[k] = clonePayment(v)
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	return c
}

func cloneAppointment(a *appointment.Appointment) *appointment.Appointment {
	return appointment.Reconstruct(
		a.ID(), a.StaffID(), a.CustomerID(), a.ServiceID(),
		a.Date(), a.Slot(), a.Status(), a.PaymentStatus(),
		a.RescheduledFromID(), a.CreatedAt(), a.UpdatedAt(),
	)
}

func clonePayment(p *payment.Payment) *payment.Payment {
	return payment.Reconstruct(
		p.ID(), p.AppointmentID(), p.OrderID(),
		p.ExternalPaymentID(), p.Signature(), p.Status(), p.Amount(),
		p.PaidAt(), p.CreatedAt(), p.UpdatedAt(),
	)
}

type Ledger struct {
	mu     sync.Mutex
	st     *state
	logger *slog.Logger
	now    func() time.Time

	failCommit error
}

var _ shared.UnitOfWork = (*Ledger)(nil)

func New() *Ledger {
	return &Ledger{
		st:     newState(),
		logger: slog.Default(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NewWithClock expires idempotency keys against c instead of wall time.
func NewWithClock(c clock.Clock) *Ledger {
	l := New()
	l.now = c.Now
	return l
}

// FailNextCommit makes the next write transaction fail after fn has run.
func (l *Ledger) FailNextCommit(err error) {
	l.mu.Lock()
	l.failCommit = err
	l.mu.Unlock()
}

func (l *Ledger) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errs.Mark(err, errs.ErrTransient)
	}

	staged := l.st.clone()
	if err := fn(ctx, &tx{l: l, st: staged}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errs.Mark(err, errs.ErrTransient)
	}
	if l.failCommit != nil {
		err := l.failCommit
		l.failCommit = nil
		return errs.Mark(err, errs.ErrTransient)
	}
	l.st = staged
	return nil
}

func (l *Ledger) Read(ctx context.Context, fn func(ctx context.Context, r shared.Reads) error) error {
	l.mu.Lock()
	snapshot := l.st.clone()
	l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errs.Mark(err, errs.ErrTransient)
	}
	return fn(ctx, &reads{l: l, st: snapshot})
}

func (l *Ledger) notFound(msg string) error {
	return infra.WrapRepoErr(l.logger, infra.KindNotFound, msg, nil)
}

// Appointments returns committed appointments ordered by date and start.
func (l *Ledger) Appointments() []*appointment.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*appointment.Appointment, 0, len(l.st.appointments))
	for _, a := range l.st.appointments {
		out = append(out, cloneAppointment(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date().Equal(out[j].Date()) {
			return out[i].Date().Before(out[j].Date())
		}
		return out[i].Slot().Start < out[j].Slot().Start
	})
	return out
}

func (l *Ledger) Appointment(id uuid.UUID) *appointment.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.st.appointments[id]
	if !ok {
		return nil
	}
	return cloneAppointment(a)
}

func (l *Ledger) Payment(id uuid.UUID) *payment.Payment {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.st.payments[id]
	if !ok {
		return nil
	}
	return clonePayment(p)
}

func (l *Ledger) PaymentCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.st.payments)
}
