package readstore

import (
	"context"
	"log/slog"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/payment"
	"salon-booking/internal/infra"
	"salon-booking/internal/infra/converter"
	"salon-booking/internal/infra/db"
	"salon-booking/internal/pkg/pgconv"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewAppointmentReadStore(dbtx db.DBTX, logger *slog.Logger) *AppointmentReadStore {
	return &AppointmentReadStore{db: dbtx, logger: logger}
}

func (s *AppointmentReadStore) AppointmentByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row := s.db.QueryRow(ctx, `SELECT `+converter.AppointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := converter.ScanAppointment(row)
	if err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to find appointment", err)
	}
	return a, nil
}

func (s *AppointmentReadStore) PaymentByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	row := s.db.QueryRow(ctx, `SELECT `+converter.PaymentColumns+` FROM payments WHERE id = $1`, id)
	p, err := converter.ScanPayment(row)
	if err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to find payment", err)
	}
	return p, nil
}

func (s *AppointmentReadStore) PaymentByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*payment.Payment, error) {
	row := s.db.QueryRow(ctx, `SELECT `+converter.PaymentColumns+` FROM payments WHERE appointment_id = $1`, appointmentID)
	p, err := converter.ScanPayment(row)
	if err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to find payment for appointment", err)
	}
	return p, nil
}

// ListAppointments pages with a keyset on (appointment_date, start_time, id) so new bookings never shift a page.
func (s *AppointmentReadStore) ListAppointments(ctx context.Context, f shared.AppointmentFilter) ([]*appointment.Appointment, error) {
	args := []any{pgconv.UUIDPtrToPgtype(f.CustomerID), f.Limit}
	keyset := ""
	if f.After != nil {
		keyset = ` AND (appointment_date, start_time, id) < ($3, $4, $5)`
		args = append(args, pgconv.DateToPgtype(f.After.Date), pgconv.TimeOfDayToPgtype(f.After.Start), f.After.ID)
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+converter.AppointmentColumns+`
		FROM appointments
		WHERE ($1::uuid IS NULL OR customer_id = $1::uuid)`+keyset+`
		ORDER BY appointment_date DESC, start_time DESC, id DESC
		LIMIT $2`, args...)
	if err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to list appointments", err)
	}
	defer rows.Close()

	out := []*appointment.Appointment{}
	for rows.Next() {
		a, err := converter.ScanAppointment(rows)
		if err != nil {
			return nil, infra.WrapDBErr(s.logger, "failed to scan appointment", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to list appointments", err)
	}
	return out, nil
}

func (s *AppointmentReadStore) PaymentsByAppointmentIDs(ctx context.Context, appointmentIDs []uuid.UUID) (map[uuid.UUID]*payment.Payment, error) {
	out := make(map[uuid.UUID]*payment.Payment, len(appointmentIDs))
	if len(appointmentIDs) == 0 {
		return out, nil
	}
	ids := make([]string, len(appointmentIDs))
	for i, id := range appointmentIDs {
		ids[i] = id.String()
	}
	rows, err := s.db.Query(ctx, `SELECT `+converter.PaymentColumns+` FROM payments WHERE appointment_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to list payments", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := converter.ScanPayment(rows)
		if err != nil {
			return nil, infra.WrapDBErr(s.logger, "failed to scan payment", err)
		}
		out[p.AppointmentID()] = p
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to list payments", err)
	}
	return out, nil
}
