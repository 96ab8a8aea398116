package components

import (
	"log/slog"

	"salon-booking/internal/handler"
	"salon-booking/internal/handler/api"
	"salon-booking/internal/handler/middleware"
	"salon-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewAppointmentHandler,
		api.NewPaymentHandler,
		api.NewAssignmentHandler,
		middleware.NewAuthMiddleware,
		newRateLimiter,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Availability *api.AvailabilityHandler
	Appointment  *api.AppointmentHandler
	Payment      *api.PaymentHandler
	Assignment   *api.AssignmentHandler
}

func newHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Availability: p.Availability,
		Appointment:  p.Appointment,
		Payment:      p.Payment,
		Assignment:   p.Assignment,
	}
}

func newRateLimiter(rdb *redis.Client, cfg config.Config, logger *slog.Logger) *middleware.RateLimiter {
	return middleware.NewRateLimiter(rdb, cfg.Redis, logger)
}
