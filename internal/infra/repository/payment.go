package repository

import (
	"context"
	"log/slog"

	"salon-booking/internal/domain/payment"
	"salon-booking/internal/infra"
	"salon-booking/internal/infra/converter"
	"salon-booking/internal/infra/db"
	"salon-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPaymentRepository(dbtx db.DBTX, logger *slog.Logger) *PaymentRepository {
	return &PaymentRepository{db: dbtx, logger: logger}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (id, appointment_id, order_id, status, amount_minor, currency)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID(), p.AppointmentID(), p.OrderID(), p.Status().String(),
		p.Amount().Minor(), p.Amount().Currency(),
	)
	if err != nil {
		return infra.WrapDBErr(r.logger, "failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+converter.PaymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id)
	p, err := converter.ScanPayment(row)
	if err != nil {
		return nil, infra.WrapDBErr(r.logger, "failed to lock payment", err)
	}
	return p, nil
}

// UpdateCapture is a compare-and-set on status.
func (r *PaymentRepository) UpdateCapture(ctx context.Context, p *payment.Payment, expectedPrior payment.Status) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments
		SET status = $2, external_payment_id = $3, signature = $4, paid_at = $5, updated_at = now()
		WHERE id = $1 AND status = $6`,
		p.ID(), p.Status().String(),
		pgconv.StringPtrToPgtype(p.ExternalPaymentID()),
		pgconv.StringPtrToPgtype(p.Signature()),
		pgconv.TimePtrToPgtype(p.PaidAt()),
		expectedPrior.String(),
	)
	if err != nil {
		return infra.WrapDBErr(r.logger, "failed to capture payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindStaleState, "payment status changed concurrently", nil)
	}
	return nil
}
