package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderIDRequired  = errors.New("order id is required")
	ErrAlreadyFinalized = errors.New("payment is no longer awaiting capture")
)

// Payment is the one-to-one payment record of an appointment.
type Payment struct {
	id                uuid.UUID
	appointmentID     uuid.UUID
	orderID           string
	externalPaymentID *string
	signature         *string
	status            Status
	amount            Money
	paidAt            *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

func New(appointmentID uuid.UUID, orderID string, amount Money) (*Payment, error) {
	if orderID == "" {
		return nil, ErrOrderIDRequired
	}
	return &Payment{
		id:            uuid.New(),
		appointmentID: appointmentID,
		orderID:       orderID,
		status:        StatusCreated,
		amount:        amount,
	}, nil
}

func Reconstruct(
	id, appointmentID uuid.UUID,
	orderID string,
	externalPaymentID, signature *string,
	status Status,
	amount Money,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:                id,
		appointmentID:     appointmentID,
		orderID:           orderID,
		externalPaymentID: externalPaymentID,
		signature:         signature,
		status:            status,
		amount:            amount,
		paidAt:            paidAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// Capture moves created to captured. An already captured payment is left as
// is and reports changed=false so callers can replay safely.
func (p *Payment) Capture(externalPaymentID, signature string, at time.Time) (bool, error) {
	if p.status == StatusCaptured {
		return false, nil
	}
	if !p.status.CanTransitionTo(StatusCaptured) {
		return false, ErrAlreadyFinalized
	}
	p.externalPaymentID = &externalPaymentID
	p.signature = &signature
	p.status = StatusCaptured
	p.paidAt = &at
	return true, nil
}

func (p *Payment) IsCaptured() bool { return p.status == StatusCaptured }

func (p *Payment) ID() uuid.UUID              { return p.id }
func (p *Payment) AppointmentID() uuid.UUID   { return p.appointmentID }
func (p *Payment) OrderID() string            { return p.orderID }
func (p *Payment) ExternalPaymentID() *string { return p.externalPaymentID }
func (p *Payment) Signature() *string         { return p.signature }
func (p *Payment) Status() Status             { return p.status }
func (p *Payment) Amount() Money              { return p.amount }
func (p *Payment) PaidAt() *time.Time         { return p.paidAt }
func (p *Payment) CreatedAt() time.Time       { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time       { return p.updatedAt }
