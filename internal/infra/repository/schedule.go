package repository

import (
	"context"
	"log/slog"
	"time"

	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/infra"
	"salon-booking/internal/infra/converter"
	"salon-booking/internal/infra/db"
	"salon-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ScheduleRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewScheduleRepository(dbtx db.DBTX, logger *slog.Logger) *ScheduleRepository {
	return &ScheduleRepository{db: dbtx, logger: logger}
}

// UpsertWindow keeps one row per (staff, day); a second write updates it in place.
func (r *ScheduleRepository) UpsertWindow(ctx context.Context, w *schedule.WeeklyAvailability) (*schedule.WeeklyAvailability, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO weekly_availabilities (id, staff_id, day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (staff_id, day_of_week) DO UPDATE
		SET start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_active = EXCLUDED.is_active,
			updated_at = now()
		RETURNING `+converter.WindowColumns,
		w.ID(), w.StaffID(), int16(w.Day().Int()),
		pgconv.TimeOfDayToPgtype(w.Start()), pgconv.TimeOfDayToPgtype(w.End()),
		w.IsActive(),
	)
	saved, err := converter.ScanWindow(row)
	if err != nil {
		return nil, infra.WrapDBErr(r.logger, "failed to upsert weekly availability", err)
	}
	return saved, nil
}

func (r *ScheduleRepository) UpsertAssignment(ctx context.Context, a *catalog.Assignment) error {
	var duration *int32
	if d := a.DurationOverride(); d != nil {
		v := int32(*d) // #nosec G115 -- durations are minutes, bounded by a day
		duration = &v
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO staff_services (staff_id, service_id, duration_override, price_override, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (staff_id, service_id) DO UPDATE
		SET duration_override = EXCLUDED.duration_override,
			price_override = EXCLUDED.price_override,
			is_active = EXCLUDED.is_active,
			updated_at = now()`,
		a.StaffID(), a.ServiceID(),
		pgconv.Int32PtrToPgtype(duration), pgconv.Int64PtrToPgtype(a.PriceOverride()),
		a.IsActive(),
	)
	if err != nil {
		return infra.WrapDBErr(r.logger, "failed to upsert staff service assignment", err)
	}
	return nil
}

// LockStaffDay takes a transaction-scoped advisory lock on (staff, date).
func LockStaffDay(ctx context.Context, dbtx db.DBTX, logger *slog.Logger, staffID uuid.UUID, date time.Time) error {
	_, err := dbtx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2::text, 0))`,
		staffID.String(), date.Format(time.DateOnly),
	)
	if err != nil {
		return infra.WrapDBErr(logger, "failed to lock staff schedule", err)
	}
	return nil
}
