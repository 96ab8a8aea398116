package request

import (
	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type SetAvailabilityRequest struct {
	// StaffID defaults to the caller when omitted
	StaffID   *uuid.UUID `json:"staffId,omitempty"`
	DayOfWeek *int       `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime string     `json:"startTime" binding:"required"`
	EndTime   string     `json:"endTime" binding:"required"`
	IsActive  *bool      `json:"isActive,omitempty"`
}

func (r SetAvailabilityRequest) ToInput(actor user.Principal) (commands.SetAvailabilityInput, error) {
	start, err := schedule.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.SetAvailabilityInput{}, err
	}
	end, err := schedule.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return commands.SetAvailabilityInput{}, err
	}
	staffID := actor.ID
	if r.StaffID != nil {
		staffID = *r.StaffID
	}
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return commands.SetAvailabilityInput{
		StaffID:   staffID,
		DayOfWeek: *r.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		IsActive:  isActive,
		Actor:     actor,
	}, nil
}

type AssignServiceRequest struct {
	DurationOverride *int   `json:"durationOverride,omitempty" binding:"omitempty,min=1"`
	PriceOverride    *int64 `json:"priceOverride,omitempty" binding:"omitempty,min=0"`
	IsActive         *bool  `json:"isActive,omitempty"`
}

func (r AssignServiceRequest) ToInput(staffID, serviceID uuid.UUID, actor user.Principal) commands.AssignServiceInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return commands.AssignServiceInput{
		StaffID:          staffID,
		ServiceID:        serviceID,
		DurationOverride: r.DurationOverride,
		PriceOverride:    r.PriceOverride,
		IsActive:         isActive,
		Actor:            actor,
	}
}
