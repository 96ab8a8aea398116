package queries

import (
	"encoding/base64"
	"strings"
	"time"

	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.Mark(errs.New("invalid cursor"), errs.ErrValidation)

type Cursor struct {
	After string `json:"after,omitempty"`
}

// EncodeAfterCursor packs an appointment's position as base64url("v1:<date>_<start>_<id>").
func EncodeAfterCursor(p shared.AppointmentPosition) string {
	payload := CursorVersionV1 + ":" + p.Date.Format(time.DateOnly) + "_" + p.Start.String() + "_" + p.ID.String()
	return base64.URLEncoding.EncodeToString([]byte(payload))
}

func DecodeAfterCursor(cursor string) (shared.AppointmentPosition, error) {
	if cursor == "" {
		return shared.AppointmentPosition{}, errs.New("cursor cannot be empty")
	}
	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return shared.AppointmentPosition{}, errs.Wrap(err, "cursor is not base64url")
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return shared.AppointmentPosition{}, errs.New("unsupported cursor version")
	}

	parts := strings.SplitN(payload, "_", 3)
	if len(parts) != 3 {
		return shared.AppointmentPosition{}, errs.New("invalid cursor format: expected '<date>_<start>_<uuid>'")
	}
	date, err := time.Parse(time.DateOnly, parts[0])
	if err != nil {
		return shared.AppointmentPosition{}, errs.Wrap(err, "invalid date")
	}
	start, err := schedule.ParseTimeOfDay(parts[1])
	if err != nil {
		return shared.AppointmentPosition{}, errs.Wrap(err, "invalid start time")
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return shared.AppointmentPosition{}, errs.Wrap(err, "invalid UUID")
	}
	return shared.AppointmentPosition{Date: date, Start: start, ID: id}, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
