package shared

import (
	"context"
	"time"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/domain/payment"
	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: read committed transaction for write operations, retried on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Read: read-only access outside a write transaction, retried once on transient failures
	Read(ctx context.Context, fn func(ctx context.Context, r Reads) error) error
}

type Tx interface {
	// LockSchedule serializes writers on one staff member's calendar day until the transaction ends.
	LockSchedule(ctx context.Context, staffID uuid.UUID, date time.Time) error
	Appointments() AppointmentRepository
	Payments() PaymentRepository
	Idempotency() IdempotencyRepository
	Schedule() ScheduleRepository
	Reads() Reads
}

// Reads returns an infra NOT_FOUND error for missing staff, services,
// appointments and payments. Assignment and ActiveWindow return nil, nil
// when nothing is configured.
type Reads interface {
	StaffByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
	Assignment(ctx context.Context, staffID, serviceID uuid.UUID) (*catalog.Assignment, error)
	ActiveWindow(ctx context.Context, staffID uuid.UUID, day schedule.DayOfWeek) (*schedule.WeeklyAvailability, error)
	WindowsByStaff(ctx context.Context, staffID uuid.UUID) ([]*schedule.WeeklyAvailability, error)
	OccupiedSlots(ctx context.Context, staffID uuid.UUID, date time.Time, exclude *uuid.UUID) ([]schedule.Occupied, error)
	AppointmentByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	PaymentByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	PaymentByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*payment.Payment, error)
	ListAppointments(ctx context.Context, f AppointmentFilter) ([]*appointment.Appointment, error)
	// PaymentsByAppointmentIDs skips appointments without a payment.
	PaymentsByAppointmentIDs(ctx context.Context, appointmentIDs []uuid.UUID) (map[uuid.UUID]*payment.Payment, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *appointment.Appointment) error
	Update(ctx context.Context, a *appointment.Appointment) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	// UpdateCapture fails with a STALE_STATE error when the stored status is no longer expectedPrior.
	UpdateCapture(ctx context.Context, p *payment.Payment, expectedPrior payment.Status) error
}

type IdempotencyRepository interface {
	// Claim inserts the key, or takes over an expired one. claimed is false when a live record already exists.
	Claim(ctx context.Context, key, customerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (claimed bool, err error)
	Get(ctx context.Context, key, customerID uuid.UUID) (*IdempotencyRecord, error)
	Complete(ctx context.Context, key, customerID, appointmentID uuid.UUID) error
}

type ScheduleRepository interface {
	UpsertWindow(ctx context.Context, w *schedule.WeeklyAvailability) (*schedule.WeeklyAvailability, error)
	UpsertAssignment(ctx context.Context, a *catalog.Assignment) error
}

// OrderIssuer creates the gateway order a payment is settled against.
type OrderIssuer interface {
	IssueOrder(ctx context.Context, amount payment.Money, receipt string) (string, error)
}
