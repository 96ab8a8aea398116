package queries

import (
	"time"

	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/domain/payment"
	"salon-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

type SlotView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BookedSlotView exposes only non-sensitive fields of the occupying customer.
type BookedSlotView struct {
	StartTime    string     `json:"startTime"`
	EndTime      string     `json:"endTime"`
	CustomerID   *uuid.UUID `json:"customerId,omitempty"`
	CustomerName string     `json:"customerName,omitempty"`
}

type AvailableSlotsView struct {
	Date        string           `json:"date"`
	Slots       []SlotView       `json:"slots"`
	BookedSlots []BookedSlotView `json:"bookedSlots"`
}

type AvailabilityWindowView struct {
	ID        uuid.UUID `json:"id"`
	StaffID   uuid.UUID `json:"staffId"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	IsActive  bool      `json:"isActive"`
}

type PaymentView struct {
	ID                uuid.UUID  `json:"id"`
	OrderID           string     `json:"orderId"`
	ExternalPaymentID *string    `json:"externalPaymentId,omitempty"`
	Status            string     `json:"status"`
	AmountMinor       int64      `json:"amountMinor"`
	Currency          string     `json:"currency"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
}

type AppointmentView struct {
	ID                uuid.UUID    `json:"id"`
	StaffID           uuid.UUID    `json:"staffId"`
	CustomerID        uuid.UUID    `json:"customerId"`
	ServiceID         uuid.UUID    `json:"serviceId"`
	Date              string       `json:"date"`
	StartTime         string       `json:"startTime"`
	EndTime           string       `json:"endTime"`
	Status            string       `json:"status"`
	PaymentStatus     string       `json:"paymentStatus"`
	RescheduledFromID *uuid.UUID   `json:"rescheduledFromId,omitempty"`
	Payment           *PaymentView `json:"payment,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

func ToSlotView(s schedule.Slot) SlotView {
	return SlotView{StartTime: s.Start.String(), EndTime: s.End.String()}
}

func ToWindowView(w *schedule.WeeklyAvailability) AvailabilityWindowView {
	return AvailabilityWindowView{
		ID:        w.ID(),
		StaffID:   w.StaffID(),
		DayOfWeek: w.Day().Int(),
		StartTime: w.Start().String(),
		EndTime:   w.End().String(),
		IsActive:  w.IsActive(),
	}
}

func ToPaymentView(p *payment.Payment) *PaymentView {
	if p == nil {
		return nil
	}
	return &PaymentView{
		ID:                p.ID(),
		OrderID:           p.OrderID(),
		ExternalPaymentID: p.ExternalPaymentID(),
		Status:            p.Status().String(),
		AmountMinor:       p.Amount().Minor(),
		Currency:          p.Amount().Currency(),
		PaidAt:            p.PaidAt(),
	}
}

// ToAppointmentView never exposes the payment signature.
func ToAppointmentView(a *appointment.Appointment, p *payment.Payment) *AppointmentView {
	return &AppointmentView{
		ID:                a.ID(),
		StaffID:           a.StaffID(),
		CustomerID:        a.CustomerID(),
		ServiceID:         a.ServiceID(),
		Date:              a.Date().Format(time.DateOnly),
		StartTime:         a.Slot().Start.String(),
		EndTime:           a.Slot().End.String(),
		Status:            a.Status().String(),
		PaymentStatus:     a.PaymentStatus().String(),
		RescheduledFromID: a.RescheduledFromID(),
		Payment:           ToPaymentView(p),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
	}
}
