//go:build unit || e2e

package builder

import (
	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/domain/schedule"
	reqdto "salon-booking/internal/handler/dto/request"
	"salon-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityBuilder struct {
	StaffID   uuid.UUID
	DayOfWeek int
	StartTime string
	EndTime   string
	IsActive  bool
}

func NewAvailabilityBuilder() *AvailabilityBuilder {
	return &AvailabilityBuilder{
		StaffID:   uuid.New(),
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
		IsActive:  true,
	}
}

func (b *AvailabilityBuilder) With(mutate func(*AvailabilityBuilder)) *AvailabilityBuilder {
	mutate(b)
	return b
}

func (b *AvailabilityBuilder) BuildDomain() *schedule.WeeklyAvailability {
	w, err := schedule.NewWeeklyAvailability(b.StaffID, b.DayOfWeek,
		schedule.MustParseTimeOfDay(b.StartTime), schedule.MustParseTimeOfDay(b.EndTime), b.IsActive)
	if err != nil {
		panic(err)
	}
	return w
}

func (b *AvailabilityBuilder) BuildView() queries.AvailabilityWindowView {
	return queries.ToWindowView(b.BuildDomain())
}

func (b *AvailabilityBuilder) BuildSetRequestDTO() reqdto.SetAvailabilityRequest {
	staffID := b.StaffID
	day := b.DayOfWeek
	active := b.IsActive
	return reqdto.SetAvailabilityRequest{
		StaffID:   &staffID,
		DayOfWeek: &day,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		IsActive:  &active,
	}
}

func BuildAssignment(staffID, serviceID uuid.UUID, durationOverride *int, priceOverride *int64) *catalog.Assignment {
	asg, err := catalog.NewAssignment(staffID, serviceID, durationOverride, priceOverride, true)
	if err != nil {
		panic(err)
	}
	return asg
}
