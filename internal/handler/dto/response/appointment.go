package response

import (
	"salon-booking/internal/domain/appointment"
	"salon-booking/internal/usecase/commands"
	"salon-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	AppointmentID uuid.UUID                `json:"appointmentId"`
	PaymentID     uuid.UUID                `json:"paymentId"`
	OrderID       string                   `json:"orderId"`
	Appointment   *queries.AppointmentView `json:"appointment"`
}

func FromBookingResult(r *commands.BookingResult) *BookingResponse {
	return &BookingResponse{
		AppointmentID: r.Appointment.ID(),
		PaymentID:     r.Payment.ID(),
		OrderID:       r.Payment.OrderID(),
		Appointment:   queries.ToAppointmentView(r.Appointment, r.Payment),
	}
}

type AppointmentResponse struct {
	Appointment *queries.AppointmentView `json:"appointment"`
}

func FromAppointment(a *appointment.Appointment) *AppointmentResponse {
	return &AppointmentResponse{Appointment: queries.ToAppointmentView(a, nil)}
}

func FromAppointmentView(v *queries.AppointmentView) *AppointmentResponse {
	return &AppointmentResponse{Appointment: v}
}

type AppointmentListResponse struct {
	Appointments []*queries.AppointmentView `json:"appointments"`
	NextCursor   string                     `json:"nextCursor,omitempty"`
}

func FromAppointmentList(items []*queries.AppointmentView, next *queries.Cursor) *AppointmentListResponse {
	resp := &AppointmentListResponse{Appointments: items}
	if resp.Appointments == nil {
		resp.Appointments = []*queries.AppointmentView{}
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}

type PaymentConfirmationResponse struct {
	Appointment *queries.AppointmentView `json:"appointment"`
	Payment     *queries.PaymentView     `json:"payment"`
}

func FromConfirmation(r *commands.BookingResult) *PaymentConfirmationResponse {
	return &PaymentConfirmationResponse{
		Appointment: queries.ToAppointmentView(r.Appointment, nil),
		Payment:     queries.ToPaymentView(r.Payment),
	}
}
