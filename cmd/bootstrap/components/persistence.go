package components

import (
	"salon-booking/internal/infra/gateway"
	"salon-booking/internal/infra/uow"

	"go.uber.org/fx"
)

// Repositories and read stores are created per transaction inside the unit of work.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		uow.NewPostgresUoW,
		gateway.NewLocalOrderIssuer,
	),
)
