package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrNegativePrice   = errors.New("price cannot be negative")
)

type Service struct {
	id          uuid.UUID
	name        string
	durationMin int
	priceCents  int64
	isActive    bool
}

func ReconstructService(id uuid.UUID, name string, durationMin int, priceCents int64, isActive bool) *Service {
	return &Service{
		id:          id,
		name:        name,
		durationMin: durationMin,
		priceCents:  priceCents,
		isActive:    isActive,
	}
}

func (s *Service) ID() uuid.UUID     { return s.id }
func (s *Service) Name() string      { return s.name }
func (s *Service) DurationMin() int  { return s.durationMin }
func (s *Service) PriceCents() int64 { return s.priceCents }
func (s *Service) IsActive() bool    { return s.isActive }

// Assignment links a staff member to a service they perform, with optional overrides.
type Assignment struct {
	staffID          uuid.UUID
	serviceID        uuid.UUID
	durationOverride *int
	priceOverride    *int64
	isActive         bool
}

func NewAssignment(staffID, serviceID uuid.UUID, durationOverride *int, priceOverride *int64, isActive bool) (*Assignment, error) {
	if durationOverride != nil && *durationOverride <= 0 {
		return nil, ErrInvalidDuration
	}
	if priceOverride != nil && *priceOverride < 0 {
		return nil, ErrNegativePrice
	}
	return &Assignment{
		staffID:          staffID,
		serviceID:        serviceID,
		durationOverride: durationOverride,
		priceOverride:    priceOverride,
		isActive:         isActive,
	}, nil
}

func ReconstructAssignment(staffID, serviceID uuid.UUID, durationOverride *int, priceOverride *int64, isActive bool) *Assignment {
	return &Assignment{
		staffID:          staffID,
		serviceID:        serviceID,
		durationOverride: durationOverride,
		priceOverride:    priceOverride,
		isActive:         isActive,
	}
}

func (a *Assignment) StaffID() uuid.UUID     { return a.staffID }
func (a *Assignment) ServiceID() uuid.UUID   { return a.serviceID }
func (a *Assignment) DurationOverride() *int { return a.durationOverride }
func (a *Assignment) PriceOverride() *int64  { return a.priceOverride }
func (a *Assignment) IsActive() bool         { return a.isActive }

// Bookable is true only when the assignment exists and is active.
func (a *Assignment) Bookable() bool {
	return a != nil && a.isActive
}

// EffectiveDuration prefers the staff override over the service default.
func (a *Assignment) EffectiveDuration(svc *Service) time.Duration {
	minutes := svc.durationMin
	if a != nil && a.durationOverride != nil {
		minutes = *a.durationOverride
	}
	return time.Duration(minutes) * time.Minute
}

func (a *Assignment) EffectivePriceCents(svc *Service) int64 {
	if a != nil && a.priceOverride != nil {
		return *a.priceOverride
	}
	return svc.priceCents
}
