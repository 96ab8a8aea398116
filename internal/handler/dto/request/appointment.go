package request

import (
	"time"

	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	StaffID   uuid.UUID `json:"staffId" binding:"required"`
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Date      string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string    `json:"startTime" binding:"required"`
}

func (r CreateAppointmentRequest) ToInput(customer user.Principal, idempotencyKey *uuid.UUID) (commands.CreateBookingInput, error) {
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	start, err := schedule.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	return commands.CreateBookingInput{
		StaffID:        r.StaffID,
		ServiceID:      r.ServiceID,
		Date:           date,
		StartTime:      start,
		Customer:       customer,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// RescheduleAppointmentRequest moves an appointment; omitted fields keep their current value.
type RescheduleAppointmentRequest struct {
	Date      *string `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime,omitempty"`
}

func (r RescheduleAppointmentRequest) ToInput(id uuid.UUID, actor user.Principal) (commands.RescheduleInput, error) {
	in := commands.RescheduleInput{AppointmentID: id, Actor: actor}
	if r.Date != nil {
		date, err := time.Parse(time.DateOnly, *r.Date)
		if err != nil {
			return commands.RescheduleInput{}, err
		}
		in.NewDate = &date
	}
	if r.StartTime != nil {
		start, err := schedule.ParseTimeOfDay(*r.StartTime)
		if err != nil {
			return commands.RescheduleInput{}, err
		}
		in.NewStartTime = &start
	}
	return in, nil
}
