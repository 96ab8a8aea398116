package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/domain/payment"
	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/infra"
	"salon-booking/internal/pkg/clock"
	"salon-booking/internal/pkg/config"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/pkg/patch"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const createBookingEndpoint = "POST /api/appointments"

var (
	ErrServiceInactive       = errs.Mark(errs.New("service is not offered"), errs.ErrForbidden)
	ErrAssignmentInactive    = errs.Mark(errs.New("staff member does not offer this service"), errs.ErrForbidden)
	ErrSlotConflict          = errs.Mark(errs.New("requested slot is no longer free"), errs.ErrConflict)
	ErrOutsideAvailability   = errs.Mark(errs.New("requested slot is outside staff availability"), errs.ErrConflict)
	ErrNotReschedulable      = errs.Mark(errs.New("appointment is closed for rescheduling"), errs.ErrConflict)
	ErrPaymentNotCapturable  = errs.Mark(errs.New("payment cannot be captured in its current state"), errs.ErrConflict)
	ErrIdempotencyKeyReused  = errs.Mark(errs.New("idempotency key reused with a different request"), errs.ErrConflict)
	ErrIdempotencyInProgress = errs.Mark(errs.New("idempotent request still in progress"), errs.ErrConflict)
	ErrSignatureMismatch     = errs.Mark(errs.New("payment signature mismatch"), errs.ErrVerificationFailed)
	ErrInvalidBooking        = errs.Mark(errs.New("invalid booking request"), errs.ErrValidation)
	ErrOrderIssueFailed      = errs.New("failed to issue payment order")
)

type CreateBookingInput struct {
	StaffID        uuid.UUID
	ServiceID      uuid.UUID
	Date           time.Time
	StartTime      schedule.TimeOfDay
	Customer       user.Principal
	IdempotencyKey *uuid.UUID
}

type ConfirmPaymentInput struct {
	PaymentID         uuid.UUID
	OrderID           string
	ExternalPaymentID string
	Signature         string
}

type RescheduleInput struct {
	AppointmentID uuid.UUID
	NewDate       *time.Time
	NewStartTime  *schedule.TimeOfDay
	Actor         user.Principal
}

type BookingResult struct {
	Appointment *appointment.Appointment
	Payment     *payment.Payment
	IsReplayed  bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*BookingResult, error)
	ConfirmPayment(ctx context.Context, in ConfirmPaymentInput) (*BookingResult, error)
	Reschedule(ctx context.Context, in RescheduleInput) (*appointment.Appointment, error)
	Cancel(ctx context.Context, appointmentID uuid.UUID, actor user.Principal) (*appointment.Appointment, error)
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	orders   shared.OrderIssuer
	verifier *payment.Verifier
	clock    clock.Clock
	currency string
	ttl      time.Duration
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	orders shared.OrderIssuer,
	verifier *payment.Verifier,
	clock clock.Clock,
	cfg config.Config,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		orders:   orders,
		verifier: verifier,
		clock:    clock,
		currency: cfg.Payment.Currency,
		ttl:      cfg.Ledger.IdempotencyTTL,
	}
}

// quote is what the read phase of CreateBooking settles before the write transaction.
type quote struct {
	slot   schedule.Slot
	amount payment.Money
}

func (b *bookingCommandsImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*BookingResult, error) {
	if in.Date.IsZero() {
		return nil, ErrInvalidBooking
	}
	date := appointment.CalendarDate(in.Date)

	q, err := b.quote(ctx, in)
	if err != nil {
		return nil, err
	}

	orderID, err := b.orders.IssueOrder(ctx, q.amount, "receipt_"+uuid.NewString())
	if err != nil {
		return nil, errs.Mark(err, ErrOrderIssueFailed)
	}

	var result *BookingResult
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil
		if err := tx.LockSchedule(ctx, in.StaffID, date); err != nil {
			return err
		}

		if in.IdempotencyKey != nil {
			replay, err := b.claimIdempotency(ctx, tx, *in.IdempotencyKey, in)
			if err != nil {
				return err
			}
			if replay != nil {
				result = replay
				return nil
			}
		}

		asg, err := tx.Reads().Assignment(ctx, in.StaffID, in.ServiceID)
		if err != nil {
			return err
		}
		if !asg.Bookable() {
			return ErrAssignmentInactive
		}

		if err := b.ensureSlotFree(ctx, tx, in.StaffID, date, q.slot, nil); err != nil {
			return err
		}

		appt, err := appointment.NewDraft(in.StaffID, in.Customer.ID, in.ServiceID, date, q.slot)
		if err != nil {
			return errs.Mark(err, ErrInvalidBooking)
		}
		if err := tx.Appointments().Create(ctx, appt); err != nil {
			if infra.IsKind(err, infra.KindExclusionViolation) {
				return ErrSlotConflict
			}
			return err
		}

		pay, err := payment.New(appt.ID(), orderID, q.amount)
		if err != nil {
			return errs.Mark(err, ErrInvalidBooking)
		}
		if err := tx.Payments().Create(ctx, pay); err != nil {
			return err
		}

		if in.IdempotencyKey != nil {
			if err := tx.Idempotency().Complete(ctx, *in.IdempotencyKey, in.Customer.ID, appt.ID()); err != nil {
				return err
			}
		}

		result = &BookingResult{Appointment: appt, Payment: pay}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.IsReplayed {
		slog.Info("appointment booked",
			"appointment_id", result.Appointment.ID(),
			"staff_id", in.StaffID,
			"date", date.Format(time.DateOnly),
			"start", q.slot.Start.String())
	}
	return result, nil
}

func (b *bookingCommandsImpl) quote(ctx context.Context, in CreateBookingInput) (*quote, error) {
	var q *quote
	err := b.uow.Read(ctx, func(ctx context.Context, r shared.Reads) error {
		svc, asg, err := loadOffering(ctx, r, in.StaffID, in.ServiceID)
		if err != nil {
			return err
		}
		if !svc.IsActive() {
			return ErrServiceInactive
		}
		if !asg.Bookable() {
			return ErrAssignmentInactive
		}

		slot, err := schedule.SlotStarting(in.StartTime, asg.EffectiveDuration(svc))
		if err != nil {
			return ErrOutsideAvailability
		}
		amount, err := payment.NewMoney(asg.EffectivePriceCents(svc), b.currency)
		if err != nil {
			return errs.Mark(err, ErrInvalidBooking)
		}
		q = &quote{slot: slot, amount: amount}
		return nil
	})
	return q, err
}

func loadOffering(ctx context.Context, r shared.Reads, staffID, serviceID uuid.UUID) (*catalog.Service, *catalog.Assignment, error) {
	staff, err := r.StaffByID(ctx, staffID)
	if err != nil {
		return nil, nil, shared.OrNotFound(err, shared.ErrStaffNotFound)
	}
	if !staff.IsBookableStaff() {
		return nil, nil, shared.ErrStaffNotFound
	}
	svc, err := r.ServiceByID(ctx, serviceID)
	if err != nil {
		return nil, nil, shared.OrNotFound(err, shared.ErrServiceNotFound)
	}
	asg, err := r.Assignment(ctx, staffID, serviceID)
	if err != nil {
		return nil, nil, err
	}
	return svc, asg, nil
}

// ensureSlotFree must run after LockSchedule for the same staff and date.
func (b *bookingCommandsImpl) ensureSlotFree(
	ctx context.Context,
	tx shared.Tx,
	staffID uuid.UUID,
	date time.Time,
	slot schedule.Slot,
	exclude *uuid.UUID,
) error {
	window, err := tx.Reads().ActiveWindow(ctx, staffID, schedule.DayOfWeekOf(date))
	if err != nil {
		return err
	}
	if !window.Contains(slot) {
		return ErrOutsideAvailability
	}

	occupied, err := tx.Reads().OccupiedSlots(ctx, staffID, date, exclude)
	if err != nil {
		return err
	}
	if !schedule.IsFree(slot, occupied) {
		return ErrSlotConflict
	}
	return nil
}

func (b *bookingCommandsImpl) claimIdempotency(
	ctx context.Context,
	tx shared.Tx,
	key uuid.UUID,
	in CreateBookingInput,
) (*BookingResult, error) {
	requestHash := calculateRequestHash(in)
	expiresAt := b.clock.Now().Add(b.ttl)

	claimed, err := tx.Idempotency().Claim(ctx, key, in.Customer.ID, createBookingEndpoint, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, nil
	}

	existing, err := tx.Idempotency().Get(ctx, key, in.Customer.ID)
	if err != nil {
		return nil, err
	}
	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultAppointmentID == nil {
			return nil, errs.New("completed request missing result appointment ID")
		}
		appt, err := tx.Reads().AppointmentByID(ctx, *existing.ResultAppointmentID)
		if err != nil {
			return nil, shared.OrNotFound(err, shared.ErrAppointmentNotFound)
		}
		pay, err := tx.Reads().PaymentByAppointmentID(ctx, appt.ID())
		if err != nil {
			return nil, shared.OrNotFound(err, shared.ErrPaymentNotFound)
		}
		return &BookingResult{Appointment: appt, Payment: pay, IsReplayed: true}, nil
	case shared.IdempotencyStatusProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (b *bookingCommandsImpl) ConfirmPayment(ctx context.Context, in ConfirmPaymentInput) (*BookingResult, error) {
	var result *BookingResult
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil
		pay, err := tx.Payments().GetForUpdate(ctx, in.PaymentID)
		if err != nil {
			return shared.OrNotFound(err, shared.ErrPaymentNotFound)
		}

		if in.OrderID != pay.OrderID() || !b.verifier.Verify(pay.OrderID(), in.ExternalPaymentID, in.Signature) {
			slog.Warn("payment signature verification failed",
				"payment_id", in.PaymentID,
				"signature_len", len(in.Signature))
			return ErrSignatureMismatch
		}

		// Gateways retry callbacks; a captured payment is reported as is.
		if pay.IsCaptured() {
			appt, err := tx.Reads().AppointmentByID(ctx, pay.AppointmentID())
			if err != nil {
				return shared.OrNotFound(err, shared.ErrAppointmentNotFound)
			}
			result = &BookingResult{Appointment: appt, Payment: pay, IsReplayed: true}
			return nil
		}

		appt, err := tx.Appointments().GetForUpdate(ctx, pay.AppointmentID())
		if err != nil {
			return shared.OrNotFound(err, shared.ErrAppointmentNotFound)
		}

		prior := pay.Status()
		if _, err := pay.Capture(in.ExternalPaymentID, in.Signature, b.clock.Now()); err != nil {
			return errs.Mark(err, ErrPaymentNotCapturable)
		}
		if err := tx.Payments().UpdateCapture(ctx, pay, prior); err != nil {
			if infra.IsKind(err, infra.KindStaleState) {
				return ErrPaymentNotCapturable
			}
			return err
		}

		appt.ApplyCapture()
		if err := tx.Appointments().Update(ctx, appt); err != nil {
			return err
		}

		result = &BookingResult{Appointment: appt, Payment: pay}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.IsReplayed {
		slog.Info("payment captured", "payment_id", in.PaymentID, "appointment_id", result.Appointment.ID())
	}
	return result, nil
}

func (b *bookingCommandsImpl) Reschedule(ctx context.Context, in RescheduleInput) (*appointment.Appointment, error) {
	var current *appointment.Appointment
	err := b.uow.Read(ctx, func(ctx context.Context, r shared.Reads) error {
		a, err := r.AppointmentByID(ctx, in.AppointmentID)
		if err != nil {
			return shared.OrNotFound(err, shared.ErrAppointmentNotFound)
		}
		current = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !current.CanReschedule(in.Actor) {
		return nil, shared.ErrNotAllowed
	}

	lockedDate := appointment.CalendarDate(patch.Coalesce(in.NewDate, current.Date()))

	var moved *appointment.Appointment
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		moved = nil
		if err := tx.LockSchedule(ctx, current.StaffID(), lockedDate); err != nil {
			return err
		}

		appt, err := tx.Appointments().GetForUpdate(ctx, in.AppointmentID)
		if err != nil {
			return shared.OrNotFound(err, shared.ErrAppointmentNotFound)
		}
		if !appt.CanReschedule(in.Actor) {
			return shared.ErrNotAllowed
		}
		if appt.Status().IsTerminal() {
			return ErrNotReschedulable
		}

		date := appointment.CalendarDate(patch.Coalesce(in.NewDate, appt.Date()))
		if !date.Equal(lockedDate) {
			// moved by a concurrent reschedule since the pre-read
			if err := tx.LockSchedule(ctx, appt.StaffID(), date); err != nil {
				return err
			}
		}
		start := patch.Coalesce(in.NewStartTime, appt.Slot().Start)
		slot, err := schedule.SlotStarting(start, appt.Slot().Duration())
		if err != nil {
			return ErrOutsideAvailability
		}

		id := appt.ID()
		if err := b.ensureSlotFree(ctx, tx, appt.StaffID(), date, slot, &id); err != nil {
			return err
		}

		if err := appt.Reschedule(date, slot); err != nil {
			return errs.Mark(err, ErrNotReschedulable)
		}
		if err := tx.Appointments().Update(ctx, appt); err != nil {
			if infra.IsKind(err, infra.KindExclusionViolation) {
				return ErrSlotConflict
			}
			return err
		}
		moved = appt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

func (b *bookingCommandsImpl) Cancel(ctx context.Context, appointmentID uuid.UUID, actor user.Principal) (*appointment.Appointment, error) {
	var cancelled *appointment.Appointment
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cancelled = nil
		appt, err := tx.Appointments().GetForUpdate(ctx, appointmentID)
		if err != nil {
			return shared.OrNotFound(err, shared.ErrAppointmentNotFound)
		}
		if !appt.CanCancel(actor) {
			return shared.ErrNotAllowed
		}
		if appt.Status() != appointment.StatusCancelled {
			appt.Cancel()
			if err := tx.Appointments().Update(ctx, appt); err != nil {
				return err
			}
		}
		cancelled = appt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func calculateRequestHash(in CreateBookingInput) string {
	data, _ := json.Marshal(struct {
		StaffID   uuid.UUID `json:"staffId"`
		ServiceID uuid.UUID `json:"serviceId"`
		Date      string    `json:"date"`
		StartTime string    `json:"startTime"`
	}{
		StaffID:   in.StaffID,
		ServiceID: in.ServiceID,
		Date:      in.Date.Format(time.DateOnly),
		StartTime: in.StartTime.String(),
	})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
