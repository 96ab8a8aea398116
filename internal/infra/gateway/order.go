package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"salon-booking/internal/domain/payment"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/shared"
)

// LocalOrderIssuer mints gateway-style order ids without calling out.
// Settlement happens against the id through the signed confirmation callback.
type LocalOrderIssuer struct {
	logger *slog.Logger
}

func NewLocalOrderIssuer(logger *slog.Logger) shared.OrderIssuer {
	return &LocalOrderIssuer{logger: logger}
}

func (g *LocalOrderIssuer) IssueOrder(ctx context.Context, amount payment.Money, receipt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf [12]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", errs.Wrap(err, "failed to generate order id")
	}
	orderID := "order_" + hex.EncodeToString(buf[:])

	g.logger.Debug("order issued",
		slog.String("order_id", orderID),
		slog.String("receipt", receipt),
		slog.Int64("amount_minor", amount.Minor()),
		slog.String("currency", amount.Currency()))
	return orderID, nil
}
