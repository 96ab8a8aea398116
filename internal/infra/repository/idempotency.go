package repository

import (
	"context"
	"log/slog"
	"time"

	"salon-booking/internal/infra"
	"salon-booking/internal/infra/db"
	"salon-booking/internal/pkg/pgconv"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewIdempotencyRepository(dbtx db.DBTX, logger *slog.Logger) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx, logger: logger}
}

// Claim waits on a concurrent claim of the same key until that transaction ends.
func (r *IdempotencyRepository) Claim(ctx context.Context, key, customerID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO idempotency_keys (key, customer_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, customer_id) DO UPDATE
		SET endpoint = EXCLUDED.endpoint,
			request_hash = EXCLUDED.request_hash,
			status = 'processing',
			result_appointment_id = NULL,
			expires_at = EXCLUDED.expires_at,
			updated_at = now()
		WHERE idempotency_keys.expires_at < now()`,
		key, customerID, endpoint, requestHash, pgconv.TimePtrToPgtype(&expiresAt),
	)
	if err != nil {
		return false, infra.WrapDBErr(r.logger, "failed to claim idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, customerID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		rec       shared.IdempotencyRecord
		result    pgtype.UUID
		expiresAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT key, customer_id, endpoint, status, request_hash, result_appointment_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND customer_id = $2`,
		key, customerID,
	).Scan(&rec.Key, &rec.CustomerID, &rec.Endpoint, &rec.Status, &rec.RequestHash, &result, &expiresAt)
	if err != nil {
		return nil, infra.WrapDBErr(r.logger, "failed to get idempotency key", err)
	}
	rec.ResultAppointmentID = pgconv.UUIDPtrFromPgtype(result)
	rec.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	return &rec, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key, customerID, appointmentID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'completed', result_appointment_id = $3, updated_at = now()
		WHERE key = $1 AND customer_id = $2`,
		key, customerID, appointmentID,
	)
	if err != nil {
		return infra.WrapDBErr(r.logger, "failed to update idempotency key status", err)
	}
	return nil
}
