package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"salon-booking/internal/infra"
	"salon-booking/internal/infra/db"
	"salon-booking/internal/infra/readstore"
	"salon-booking/internal/infra/repository"
	"salon-booking/internal/pkg/config"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool       *pgxpool.Pool
	logger     *slog.Logger
	timeout    time.Duration
	maxRetries int
}

func NewPostgresUoW(pool *pgxpool.Pool, cfg config.Config, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:       pool,
		logger:     logger,
		timeout:    cfg.Ledger.OperationTimeout,
		maxRetries: cfg.Ledger.MaxTxRetries,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes;
// overlapping bookings are excluded by the schedule lock and the exclusion constraint
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	err := u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
	return markTransient(err)
}

// Read runs fn in a read-only transaction and retries once on a transient failure
func (u *PostgresUoW) Read(ctx context.Context, fn func(ctx context.Context, r shared.Reads) error) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = u.readOnce(ctx, fn)
		if err == nil || !infra.IsTransient(err) || ctx.Err() != nil {
			break
		}
		u.logger.Warn("retrying read after transient failure", "error", err.Error())
	}
	return markTransient(err)
}

func (u *PostgresUoW) readOnce(ctx context.Context, fn func(ctx context.Context, r shared.Reads) error) error {
	ctx, cancel := u.bounded(ctx)
	defer cancel()

	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(ctx context.Context, dbtx db.DBTX) error {
		return fn(ctx, newReads(dbtx, u.logger))
	})
}

func (u *PostgresUoW) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, u.timeout)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	maxRetries := u.maxRetries
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx:   pgxTx,
			logger: u.logger,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		// rollback must not inherit an expired operation context
		rollbackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		if rollbackErr := pgxTx.Rollback(rollbackCtx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}
		cancel()

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				u.logger.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		u.logger.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

// markTransient tags untyped driver and timeout failures so handlers can report them as retryable.
func markTransient(err error) error {
	if err == nil || errs.KindOf(err) != nil {
		return err
	}
	if infra.IsTransient(err) || isRetryableError(err) {
		return errs.Mark(err, errs.ErrTransient)
	}
	return err
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked to a non-negative value above
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx   db.DBTX
	logger *slog.Logger

	// Lazy-initialized repositories
	appointmentRepo shared.AppointmentRepository
	paymentRepo     shared.PaymentRepository
	idempotencyRepo shared.IdempotencyRepository
	scheduleRepo    shared.ScheduleRepository
	reads           shared.Reads
}

func (t *pgTx) LockSchedule(ctx context.Context, staffID uuid.UUID, date time.Time) error {
	return repository.LockStaffDay(ctx, t.dbtx, t.logger, staffID, date)
}

func (t *pgTx) Appointments() shared.AppointmentRepository {
	if t.appointmentRepo == nil {
		t.appointmentRepo = repository.NewAppointmentRepository(t.dbtx, t.logger)
	}
	return t.appointmentRepo
}

func (t *pgTx) Payments() shared.PaymentRepository {
	if t.paymentRepo == nil {
		t.paymentRepo = repository.NewPaymentRepository(t.dbtx, t.logger)
	}
	return t.paymentRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.dbtx, t.logger)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Schedule() shared.ScheduleRepository {
	if t.scheduleRepo == nil {
		t.scheduleRepo = repository.NewScheduleRepository(t.dbtx, t.logger)
	}
	return t.scheduleRepo
}

func (t *pgTx) Reads() shared.Reads {
	if t.reads == nil {
		t.reads = newReads(t.dbtx, t.logger)
	}
	return t.reads
}

// reads composes the read stores over one connection or transaction.
type reads struct {
	*readstore.CatalogReadStore
	*readstore.ScheduleReadStore
	*readstore.AppointmentReadStore
}

func newReads(dbtx db.DBTX, logger *slog.Logger) shared.Reads {
	return &reads{
		CatalogReadStore:     readstore.NewCatalogReadStore(dbtx, logger),
		ScheduleReadStore:    readstore.NewScheduleReadStore(dbtx, logger),
		AppointmentReadStore: readstore.NewAppointmentReadStore(dbtx, logger),
	}
}
