//go:build unit || e2e

package builder

import (
	"time"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/payment"
	"salon-booking/internal/domain/schedule"
	reqdto "salon-booking/internal/handler/dto/request"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	StaffID    uuid.UUID
	CustomerID uuid.UUID
	ServiceID  uuid.UUID
	Date       time.Time
	StartTime  string
	EndTime    string
	Status     appointment.Status
	OrderID    string
	AmountMin  int64
	Currency   string
	CreatedAt  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC()
	return &BookingBuilder{
		StaffID:    uuid.New(),
		CustomerID: uuid.New(),
		ServiceID:  uuid.New(),
		Date:       time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:00",
		EndTime:    "10:00",
		Status:     appointment.StatusPending,
		OrderID:    "order_" + uuid.NewString()[:12],
		AmountMin:  50000,
		Currency:   "INR",
		CreatedAt:  now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) slot() schedule.Slot {
	slot, err := schedule.NewSlot(schedule.MustParseTimeOfDay(b.StartTime), schedule.MustParseTimeOfDay(b.EndTime))
	if err != nil {
		panic(err)
	}
	return slot
}

// Build methods
func (b *BookingBuilder) BuildAppointment() *appointment.Appointment {
	paid := appointment.PaymentPending
	if b.Status == appointment.StatusConfirmed {
		paid = appointment.PaymentPaid
	}
	return appointment.Reconstruct(uuid.New(), b.StaffID, b.CustomerID, b.ServiceID, b.Date, b.slot(),
		b.Status, paid, nil, b.CreatedAt, b.CreatedAt)
}

func (b *BookingBuilder) BuildPayment(appointmentID uuid.UUID) *payment.Payment {
	amount, err := payment.NewMoney(b.AmountMin, b.Currency)
	if err != nil {
		panic(err)
	}
	p, err := payment.New(appointmentID, b.OrderID, amount)
	if err != nil {
		panic(err)
	}
	return p
}

func (b *BookingBuilder) BuildResult() *commands.BookingResult {
	appt := b.BuildAppointment()
	return &commands.BookingResult{Appointment: appt, Payment: b.BuildPayment(appt.ID())}
}

func (b *BookingBuilder) BuildView() *queries.AppointmentView {
	appt := b.BuildAppointment()
	return queries.ToAppointmentView(appt, b.BuildPayment(appt.ID()))
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateAppointmentRequest {
	return reqdto.CreateAppointmentRequest{
		StaffID:   b.StaffID,
		ServiceID: b.ServiceID,
		Date:      b.Date.Format(time.DateOnly),
		StartTime: b.StartTime,
	}
}

func (b *BookingBuilder) BuildRescheduleRequestDTO() reqdto.RescheduleAppointmentRequest {
	date := b.Date.Format(time.DateOnly)
	start := b.StartTime
	return reqdto.RescheduleAppointmentRequest{Date: &date, StartTime: &start}
}

// BuildConfirmRequestDTO signs the callback with secret the way the gateway does.
func (b *BookingBuilder) BuildConfirmRequestDTO(externalPaymentID, secret string) reqdto.ConfirmPaymentRequest {
	return reqdto.ConfirmPaymentRequest{
		OrderID:           b.OrderID,
		ExternalPaymentID: externalPaymentID,
		Signature:         payment.Sign(b.OrderID, externalPaymentID, []byte(secret)),
	}
}
