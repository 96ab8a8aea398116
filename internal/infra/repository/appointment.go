package repository

import (
	"context"
	"log/slog"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/infra"
	"salon-booking/internal/infra/converter"
	"salon-booking/internal/infra/db"
	"salon-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AppointmentRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewAppointmentRepository(dbtx db.DBTX, logger *slog.Logger) *AppointmentRepository {
	return &AppointmentRepository{db: dbtx, logger: logger}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointments (
			id, staff_id, customer_id, service_id, appointment_date, start_time, end_time,
			status, payment_status, rescheduled_from_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID(), a.StaffID(), a.CustomerID(), a.ServiceID(),
		pgconv.DateToPgtype(a.Date()),
		pgconv.TimeOfDayToPgtype(a.Slot().Start),
		pgconv.TimeOfDayToPgtype(a.Slot().End),
		a.Status().String(), a.PaymentStatus().String(),
		pgconv.UUIDPtrToPgtype(a.RescheduledFromID()),
	)
	if err != nil {
		return infra.WrapDBErr(r.logger, "failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *appointment.Appointment) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE appointments
		SET appointment_date = $2, start_time = $3, end_time = $4,
			status = $5, payment_status = $6, updated_at = now()
		WHERE id = $1`,
		a.ID(),
		pgconv.DateToPgtype(a.Date()),
		pgconv.TimeOfDayToPgtype(a.Slot().Start),
		pgconv.TimeOfDayToPgtype(a.Slot().End),
		a.Status().String(), a.PaymentStatus().String(),
	)
	if err != nil {
		return infra.WrapDBErr(r.logger, "failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "appointment not found", nil)
	}
	return nil
}

func (r *AppointmentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+converter.AppointmentColumns+` FROM appointments WHERE id = $1 FOR UPDATE`, id)
	a, err := converter.ScanAppointment(row)
	if err != nil {
		return nil, infra.WrapDBErr(r.logger, "failed to lock appointment", err)
	}
	return a, nil
}
