package readstore

import (
	"context"
	"log/slog"

	"salon-booking/internal/domain/catalog"
	"salon-booking/internal/domain/user"
	"salon-booking/internal/infra"
	"salon-booking/internal/infra/converter"
	"salon-booking/internal/infra/db"

	"github.com/google/uuid"
)

type CatalogReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCatalogReadStore(dbtx db.DBTX, logger *slog.Logger) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx, logger: logger}
}

func (s *CatalogReadStore) StaffByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+converter.UserColumns+` FROM users WHERE id = $1`, id)
	u, err := converter.ScanUser(row)
	if err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to find staff member", err)
	}
	return u, nil
}

func (s *CatalogReadStore) ServiceByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	row := s.db.QueryRow(ctx, `SELECT `+converter.ServiceColumns+` FROM services WHERE id = $1`, id)
	svc, err := converter.ScanService(row)
	if err != nil {
		return nil, infra.WrapDBErr(s.logger, "failed to find service", err)
	}
	return svc, nil
}

// Assignment returns nil, nil when the staff member was never assigned the service.
func (s *CatalogReadStore) Assignment(ctx context.Context, staffID, serviceID uuid.UUID) (*catalog.Assignment, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+converter.AssignmentColumns+` FROM staff_services WHERE staff_id = $1 AND service_id = $2`,
		staffID, serviceID)
	a, err := converter.ScanAssignment(row)
	if err != nil {
		if infra.Classify(err) == infra.KindNotFound {
			return nil, nil
		}
		return nil, infra.WrapDBErr(s.logger, "failed to find staff service assignment", err)
	}
	return a, nil
}
