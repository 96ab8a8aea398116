package appointment

import "errors"

var (
	ErrInvalidStatus        = errors.New("invalid appointment status")
	ErrInvalidPaymentStatus = errors.New("invalid appointment payment status")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

func NewStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return st, nil
	}
	return "", ErrInvalidStatus
}

func (s Status) String() string { return string(s) }

// Terminal statuses cannot be moved to another slot.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// PaymentStatus mirrors the linked payment from the appointment's point of view.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func NewPaymentStatus(s string) (PaymentStatus, error) {
	ps := PaymentStatus(s)
	switch ps {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return ps, nil
	}
	return "", ErrInvalidPaymentStatus
}

func (s PaymentStatus) String() string { return string(s) }
