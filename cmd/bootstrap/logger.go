package bootstrap

import (
	"log/slog"

	"salon-booking/internal/handler/middleware"
	"salon-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		logConfig,
		middleware.NewLogger,
		NewSlogLogger,
	),
)

func NewSlogLogger(l *middleware.Logger) *slog.Logger {
	return l.GetSlogLogger()
}

func logConfig(cfg config.Config) config.LogConfig {
	return cfg.Log
}
