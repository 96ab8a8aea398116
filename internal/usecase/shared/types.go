package shared

import (
	"time"

	"salon-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key                 uuid.UUID
	CustomerID          uuid.UUID
	Endpoint            string
	Status              string
	RequestHash         string
	ResultAppointmentID *uuid.UUID
	ExpiresAt           time.Time
}

// AppointmentPosition is the keyset position of an appointment in the newest-first listing.
type AppointmentPosition struct {
	Date  time.Time
	Start schedule.TimeOfDay
	ID    uuid.UUID
}

// AppointmentFilter selects appointments ordered by date, start time and id, all descending.
// A nil CustomerID lists every customer's appointments.
type AppointmentFilter struct {
	CustomerID *uuid.UUID
	After      *AppointmentPosition
	Limit      int
}
