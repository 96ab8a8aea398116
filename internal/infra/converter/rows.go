package converter

import (
	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/domain/payment"
	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	UserColumns        = "id, name, email, role, bio, average_rating, is_active, created_at"
	ServiceColumns     = "id, name, duration_min, price_cents, is_active"
	AssignmentColumns  = "staff_id, service_id, duration_override, price_override, is_active"
	WindowColumns      = "id, staff_id, day_of_week, start_time, end_time, is_active, updated_at"
	AppointmentColumns = "id, staff_id, customer_id, service_id, appointment_date, start_time, end_time, status, payment_status, rescheduled_from_id, created_at, updated_at"
	PaymentColumns     = "id, appointment_id, order_id, external_payment_id, signature, status, amount_minor, currency, paid_at, created_at, updated_at"
)

func ScanUser(row pgx.Row) (*user.User, error) {
	var (
		id                     uuid.UUID
		name, email, role, bio string
		rating                 float64
		isActive               bool
		createdAt              pgtype.Timestamptz
	)
	if err := row.Scan(&id, &name, &email, &role, &bio, &rating, &isActive, &createdAt); err != nil {
		return nil, err
	}
	r, err := user.NewRole(role)
	if err != nil {
		return nil, err
	}
	e, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	return user.Reconstruct(id, name, e, r, bio, rating, isActive, pgconv.TimeFromPgtype(createdAt)), nil
}

func ScanService(row pgx.Row) (*catalog.Service, error) {
	var (
		id          uuid.UUID
		name        string
		durationMin int32
		priceCents  int64
		isActive    bool
	)
	if err := row.Scan(&id, &name, &durationMin, &priceCents, &isActive); err != nil {
		return nil, err
	}
	return catalog.ReconstructService(id, name, int(durationMin), priceCents, isActive), nil
}

func ScanAssignment(row pgx.Row) (*catalog.Assignment, error) {
	var (
		staffID, serviceID uuid.UUID
		durationOverride   pgtype.Int4
		priceOverride      pgtype.Int8
		isActive           bool
	)
	if err := row.Scan(&staffID, &serviceID, &durationOverride, &priceOverride, &isActive); err != nil {
		return nil, err
	}
	var duration *int
	if d := pgconv.Int32PtrFromPgtype(durationOverride); d != nil {
		v := int(*d)
		duration = &v
	}
	return catalog.ReconstructAssignment(staffID, serviceID, duration, pgconv.Int64PtrFromPgtype(priceOverride), isActive), nil
}

func ScanWindow(row pgx.Row) (*schedule.WeeklyAvailability, error) {
	var (
		id, staffID uuid.UUID
		day         int16
		start, end  pgtype.Time
		isActive    bool
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &staffID, &day, &start, &end, &isActive, &updatedAt); err != nil {
		return nil, err
	}
	return schedule.ReconstructWeeklyAvailability(
		id, staffID,
		schedule.DayOfWeek(day),
		pgconv.TimeOfDayFromPgtype(start), pgconv.TimeOfDayFromPgtype(end),
		isActive,
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func ScanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var (
		id, staffID, customerID, serviceID uuid.UUID
		date                               pgtype.Date
		start, end                         pgtype.Time
		status, paymentStatus              string
		rescheduledFrom                    pgtype.UUID
		createdAt, updatedAt               pgtype.Timestamptz
	)
	if err := row.Scan(&id, &staffID, &customerID, &serviceID, &date, &start, &end,
		&status, &paymentStatus, &rescheduledFrom, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	st, err := appointment.NewStatus(status)
	if err != nil {
		return nil, err
	}
	ps, err := appointment.NewPaymentStatus(paymentStatus)
	if err != nil {
		return nil, err
	}
	return appointment.Reconstruct(
		id, staffID, customerID, serviceID,
		pgconv.DateFromPgtype(date),
		schedule.Slot{Start: pgconv.TimeOfDayFromPgtype(start), End: pgconv.TimeOfDayFromPgtype(end)},
		st, ps,
		pgconv.UUIDPtrFromPgtype(rescheduledFrom),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func ScanPayment(row pgx.Row) (*payment.Payment, error) {
	var (
		id, appointmentID    uuid.UUID
		orderID              string
		externalID, sig      pgtype.Text
		status               string
		amountMinor          int64
		currency             string
		paidAt               pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &appointmentID, &orderID, &externalID, &sig, &status,
		&amountMinor, &currency, &paidAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	st, err := payment.NewStatus(status)
	if err != nil {
		return nil, err
	}
	amount, err := payment.NewMoney(amountMinor, currency)
	if err != nil {
		return nil, err
	}
	return payment.Reconstruct(
		id, appointmentID, orderID,
		pgconv.StringPtrFromPgtype(externalID), pgconv.StringPtrFromPgtype(sig),
		st, amount,
		pgconv.TimePtrFromPgtype(paidAt),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
