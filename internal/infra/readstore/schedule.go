package readstore

import (
	"context"
	"log/slog"
	"time"

	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/infra"
	"salon-booking/internal/infra/converter"
	"salon-booking/internal/infra/db"
	"salon-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ScheduleReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewScheduleReadStore(dbtx db.DBTX, logger *slog.Logger) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx, logger: logger}
}

// ActiveWindow returns nil, nil when the staff member has no active window that day.
func (s *ScheduleReadStore) ActiveWindow(ctx context.Context, staffID uuid.UUID, day schedule.DayOfWeek) (*schedule.WeeklyAvailability, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+converter.WindowColumns+`
		FROM weekly_availabilities
		WHERE staff_id = $1 AND day_of_week = $2 AND is_active`,
		staffID, int16(day.Int()))
	w, err := converter.ScanWindow(row)
	if err != nil {
		if infra.Classify(err) == infra.KindNotFound {
			return nil, nil
		}
		return nil, infra.WrapDBErr(s.logger, "failed to find availability window", err)
	}
	return w, nil
}

func (s *ScheduleReadStore) WindowsByStaff(ctx context.Context, staffID uuid.UUID) ([]*schedule.WeeklyAvailability, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+converter.WindowColumns+`
		FROM weekly_availabilities
		WHERE staff_id = $1
		ORDER BY day_of_week`,
		staffID)
	if err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to list availability windows", err)
	}
	defer rows.Close()

	windows := []*schedule.WeeklyAvailability{}
	for rows.Next() {
		w, err := converter.ScanWindow(rows)
		if err != nil {
			return nil, infra.WrapDBErr(s.logger, "failed to scan availability window", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to list availability windows", err)
	}
	return windows, nil
}

// OccupiedSlots lists non-cancelled appointments of the staff member on date with the customer's display name.
func (s *ScheduleReadStore) OccupiedSlots(ctx context.Context, staffID uuid.UUID, date time.Time, exclude *uuid.UUID) ([]schedule.Occupied, error) {
	rows, err := s.db.Query(ctx, `
		SELECT a.id, a.start_time, a.end_time, a.customer_id, u.name
		FROM appointments a
		JOIN users u ON u.id = a.customer_id
		WHERE a.staff_id = $1
			AND a.appointment_date = $2
			AND a.status <> 'cancelled'
			AND ($3::uuid IS NULL OR a.id <> $3::uuid)
		ORDER BY a.start_time`,
		staffID, pgconv.DateToPgtype(date), pgconv.UUIDPtrToPgtype(exclude))
	if err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to list occupied slots", err)
	}
	defer rows.Close()

	occupied := []schedule.Occupied{}
	for rows.Next() {
		var (
			id, customerID uuid.UUID
			start, end     pgtype.Time
			name           string
		)
		if err := rows.Scan(&id, &start, &end, &customerID, &name); err != nil {
			return nil, infra.WrapDBErr(s.logger, "failed to scan occupied slot", err)
		}
		occupied = append(occupied, schedule.Occupied{
			AppointmentID: id,
			Slot:          schedule.Slot{Start: pgconv.TimeOfDayFromPgtype(start), End: pgconv.TimeOfDayFromPgtype(end)},
			BookedBy:      &schedule.Occupant{CustomerID: customerID, DisplayName: name},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to list occupied slots", err)
	}
	return occupied, nil
}
