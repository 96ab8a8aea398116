package response

import (
	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AvailabilityWindowResponse struct {
	ID        uuid.UUID `json:"id"`
	StaffID   uuid.UUID `json:"staffId"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	IsActive  bool      `json:"isActive"`
}

func FromWindowView(v queries.AvailabilityWindowView) (*AvailabilityWindowResponse, error) {
	var resp AvailabilityWindowResponse
	if err := copier.Copy(&resp, &v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromWindowViews(vs []queries.AvailabilityWindowView) ([]AvailabilityWindowResponse, error) {
	resp := make([]AvailabilityWindowResponse, 0, len(vs))
	if err := copier.Copy(&resp, &vs); err != nil {
		return nil, err
	}
	return resp, nil
}

type AssignmentResponse struct {
	StaffID          uuid.UUID `json:"staffId"`
	ServiceID        uuid.UUID `json:"serviceId"`
	DurationOverride *int      `json:"durationOverride,omitempty"`
	PriceOverride    *int64    `json:"priceOverride,omitempty"`
	IsActive         bool      `json:"isActive"`
}

func FromAssignment(a *catalog.Assignment) *AssignmentResponse {
	return &AssignmentResponse{
		StaffID:          a.StaffID(),
		ServiceID:        a.ServiceID(),
		DurationOverride: a.DurationOverride(),
		PriceOverride:    a.PriceOverride(),
		IsActive:         a.IsActive(),
	}
}
