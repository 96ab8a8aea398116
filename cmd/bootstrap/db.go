package bootstrap

import (
	"context"
	"log/slog"

	"salon-booking/internal/infra/db"
	"salon-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// the booking ledger relies on the exclusion constraint; refuse to start without it
			var present bool
			if err := pool.QueryRow(ctx,
				"SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap')",
			).Scan(&present); err != nil {
				return err
			}
			if !present {
				logger.Error("appointments_no_overlap 制約が見つかりません。マイグレーションを適用してください")
				return db.ErrSchemaNotMigrated
			}
			logger.Info("データベースに接続しました", "host", cfg.DB.Host, "db", cfg.DB.DBName, "max_conns", cfg.DB.MaxConns)
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
