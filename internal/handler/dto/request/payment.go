package request

import (
	"salon-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

// ConfirmPaymentRequest carries the gateway's signed checkout callback.
type ConfirmPaymentRequest struct {
	OrderID           string `json:"orderId" binding:"required"`
	ExternalPaymentID string `json:"externalPaymentId" binding:"required"`
	Signature         string `json:"signature" binding:"required,hexadecimal"`
}

func (r ConfirmPaymentRequest) ToInput(paymentID uuid.UUID) commands.ConfirmPaymentInput {
	return commands.ConfirmPaymentInput{
		PaymentID:         paymentID,
		OrderID:           r.OrderID,
		ExternalPaymentID: r.ExternalPaymentID,
		Signature:         r.Signature,
	}
}
