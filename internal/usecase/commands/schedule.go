package commands

import (
	"context"

	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/domain/schedule"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/pkg/errs"
	"salon-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrScheduleForbidden   = errs.Mark(errs.New("only the staff member or an admin may change this schedule"), errs.ErrForbidden)
	ErrAssignmentForbidden = errs.Mark(errs.New("only admins may assign services"), errs.ErrForbidden)
	ErrInvalidAvailability = errs.Mark(errs.New("invalid availability window"), errs.ErrValidation)
	ErrInvalidAssignment   = errs.Mark(errs.New("invalid service assignment"), errs.ErrValidation)
)

type SetAvailabilityInput struct {
	StaffID   uuid.UUID
	DayOfWeek int
	StartTime schedule.TimeOfDay
	EndTime   schedule.TimeOfDay
	IsActive  bool
	Actor     user.Principal
}

type AssignServiceInput struct {
	StaffID          uuid.UUID
	ServiceID        uuid.UUID
	DurationOverride *int
	PriceOverride    *int64
	IsActive         bool
	Actor            user.Principal
}

type ScheduleCommands interface {
	SetWeeklyAvailability(ctx context.Context, in SetAvailabilityInput) (*schedule.WeeklyAvailability, error)
	AssignService(ctx context.Context, in AssignServiceInput) (*catalog.Assignment, error)
}

type scheduleCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewScheduleCommands(uow shared.UnitOfWork) ScheduleCommands {
	return &scheduleCommandsImpl{uow: uow}
}

// SetWeeklyAvailability upserts the window for (staff, day). Staff may only edit their own schedule.
func (s *scheduleCommandsImpl) SetWeeklyAvailability(ctx context.Context, in SetAvailabilityInput) (*schedule.WeeklyAvailability, error) {
	switch in.Actor.Role {
	case user.RoleAdmin:
	case user.RoleStaff:
		if in.Actor.ID != in.StaffID {
			return nil, ErrScheduleForbidden
		}
	default:
		return nil, ErrScheduleForbidden
	}

	window, err := schedule.NewWeeklyAvailability(in.StaffID, in.DayOfWeek, in.StartTime, in.EndTime, in.IsActive)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAvailability)
	}

	var saved *schedule.WeeklyAvailability
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		staff, err := tx.Reads().StaffByID(ctx, in.StaffID)
		if err != nil {
			return shared.OrNotFound(err, shared.ErrStaffNotFound)
		}
		if staff.Role() != user.RoleStaff {
			return shared.ErrStaffNotFound
		}
		saved, err = tx.Schedule().UpsertWindow(ctx, window)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *scheduleCommandsImpl) AssignService(ctx context.Context, in AssignServiceInput) (*catalog.Assignment, error) {
	if !in.Actor.IsAdmin() {
		return nil, ErrAssignmentForbidden
	}

	asg, err := catalog.NewAssignment(in.StaffID, in.ServiceID, in.DurationOverride, in.PriceOverride, in.IsActive)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAssignment)
	}

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		staff, err := tx.Reads().StaffByID(ctx, in.StaffID)
		if err != nil {
			return shared.OrNotFound(err, shared.ErrStaffNotFound)
		}
		if staff.Role() != user.RoleStaff {
			return shared.ErrStaffNotFound
		}
		if _, err := tx.Reads().ServiceByID(ctx, in.ServiceID); err != nil {
			return shared.OrNotFound(err, shared.ErrServiceNotFound)
		}
		return tx.Schedule().UpsertAssignment(ctx, asg)
	})
	if err != nil {
		return nil, err
	}
	return asg, nil
}
