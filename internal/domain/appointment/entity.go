package appointment

import (
	"errors"
	"time"

	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNotReschedulable = errors.New("appointment can no longer be rescheduled")
	ErrInvalidDate      = errors.New("appointment date is required")
)

type Appointment struct {
	id                uuid.UUID
	staffID           uuid.UUID
	customerID        uuid.UUID
	serviceID         uuid.UUID
	date              time.Time
	slot              schedule.Slot
	status            Status
	paymentStatus     PaymentStatus
	rescheduledFromID *uuid.UUID
	createdAt         time.Time
	updatedAt         time.Time
}

// NewDraft creates an appointment awaiting payment. The date is truncated to a calendar day.
func NewDraft(staffID, customerID, serviceID uuid.UUID, date time.Time, slot schedule.Slot) (*Appointment, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	if _, err := schedule.NewSlot(slot.Start, slot.End); err != nil {
		return nil, err
	}
	return &Appointment{
		id:            uuid.New(),
		staffID:       staffID,
		customerID:    customerID,
		serviceID:     serviceID,
		date:          CalendarDate(date),
		slot:          slot,
		status:        StatusPending,
		paymentStatus: PaymentPending,
	}, nil
}

func Reconstruct(
	id, staffID, customerID, serviceID uuid.UUID,
	date time.Time,
	slot schedule.Slot,
	status Status,
	paymentStatus PaymentStatus,
	rescheduledFromID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:                id,
		staffID:           staffID,
		customerID:        customerID,
		serviceID:         serviceID,
		date:              CalendarDate(date),
		slot:              slot,
		status:            status,
		paymentStatus:     paymentStatus,
		rescheduledFromID: rescheduledFromID,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// CalendarDate strips the clock and zone so dates compare by day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ApplyCapture records a captured payment. A pending appointment becomes
// confirmed; a cancelled one stays cancelled.
func (a *Appointment) ApplyCapture() {
	a.paymentStatus = PaymentPaid
	if a.status == StatusPending {
		a.status = StatusConfirmed
	}
}

// Reschedule relocates the appointment. It stays confirmed only when the payment was captured.
func (a *Appointment) Reschedule(date time.Time, slot schedule.Slot) error {
	if a.status.IsTerminal() {
		return ErrNotReschedulable
	}
	if date.IsZero() {
		return ErrInvalidDate
	}
	if _, err := schedule.NewSlot(slot.Start, slot.End); err != nil {
		return err
	}
	a.date = CalendarDate(date)
	a.slot = slot
	if a.paymentStatus == PaymentPaid {
		a.status = StatusConfirmed
	} else {
		a.status = StatusPending
	}
	return nil
}

// Cancel never touches the payment; refunds happen outside the engine.
func (a *Appointment) Cancel() {
	a.status = StatusCancelled
}

func (a *Appointment) IsOwnedBy(customerID uuid.UUID) bool {
	return a.customerID == customerID
}

func (a *Appointment) CanReschedule(p user.Principal) bool {
	return p.IsAdmin() || a.IsOwnedBy(p.ID)
}

func (a *Appointment) CanCancel(p user.Principal) bool {
	return p.IsAdmin() || a.IsOwnedBy(p.ID) || (p.Role == user.RoleStaff && a.staffID == p.ID)
}

func (a *Appointment) CanView(p user.Principal) bool {
	return a.CanCancel(p)
}

func (a *Appointment) ID() uuid.UUID                 { return a.id }
func (a *Appointment) StaffID() uuid.UUID            { return a.staffID }
func (a *Appointment) CustomerID() uuid.UUID         { return a.customerID }
func (a *Appointment) ServiceID() uuid.UUID          { return a.serviceID }
func (a *Appointment) Date() time.Time               { return a.date }
func (a *Appointment) Slot() schedule.Slot           { return a.slot }
func (a *Appointment) Status() Status                { return a.status }
func (a *Appointment) PaymentStatus() PaymentStatus  { return a.paymentStatus }
func (a *Appointment) RescheduledFromID() *uuid.UUID { return a.rescheduledFromID }
func (a *Appointment) CreatedAt() time.Time          { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time          { return a.updatedAt }
