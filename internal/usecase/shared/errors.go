package shared

import (
	"salon-booking/internal/infra"
	"salon-booking/internal/pkg/errs"
)

var (
	ErrStaffNotFound       = errs.Mark(errs.New("staff member not found"), errs.ErrNotFound)
	ErrServiceNotFound     = errs.Mark(errs.New("service not found"), errs.ErrNotFound)
	ErrAppointmentNotFound = errs.Mark(errs.New("appointment not found"), errs.ErrNotFound)
	ErrPaymentNotFound     = errs.Mark(errs.New("payment not found"), errs.ErrNotFound)
	ErrNotAllowed          = errs.Mark(errs.New("actor may not access this appointment"), errs.ErrForbidden)
)

// OrNotFound replaces an infra NOT_FOUND error with the given sentinel.
func OrNotFound(err, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return sentinel
	}
	return err
}
