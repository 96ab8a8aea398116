package infra

import (
	"context"
	"errors"
	"log/slog"

	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}

	switch kind {
	case KindNotFound, KindExclusionViolation, KindStaleState:
		// expected outcomes of concurrent or invalid requests
		slogger.Debug("Repository error: "+msg, logArgs...)
	default:
		slogger.Error("Repository error: "+msg, logArgs...)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

// WrapDBErr classifies a pgx error before wrapping it.
func WrapDBErr(slogger *slog.Logger, msg string, err error) error {
	return WrapRepoErr(slogger, Classify(err), msg, err)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Classify maps driver errors onto repository error kinds.
func Classify(err error) RepositoryErrorKind {
	if pgconv.IsNoRows(err) {
		return KindNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindTimeout
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return KindDuplicateKey
		case pgErrExclusionViolation:
			return KindExclusionViolation
		case pgErrForeignKeyViolation:
			return KindForeignKeyViolated
		case pgErrQueryCanceled:
			return KindTimeout
		}
		return KindDBFailure
	}
	if pgconn.Timeout(err) {
		return KindTimeout
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.SafeToRetry(err) {
		return KindUnavailable
	}
	return KindDBFailure
}

// IsTransient reports failures that leave no state behind and may succeed on retry.
func IsTransient(err error) bool {
	if IsKind(err, KindTimeout) || IsKind(err, KindUnavailable) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) ||
		pgconn.SafeToRetry(err) || errors.As(err, &connErr)
}

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrExclusionViolation  = "23P01"
	pgErrQueryCanceled       = "57014"
)

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindExclusionViolation RepositoryErrorKind = "EXCLUSION_VIOLATION"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindStaleState         RepositoryErrorKind = "STALE_STATE"
	KindTimeout            RepositoryErrorKind = "TIMEOUT"
	KindUnavailable        RepositoryErrorKind = "UNAVAILABLE"
)
