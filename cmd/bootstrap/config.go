package bootstrap

import (
	"fmt"

	"salon-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		loadConfig,
	),
)

func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if err := validateConfig(cfg); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg config.Config) error {
	if len(cfg.Payment.SigningSecret) < 16 {
		return fmt.Errorf("PAYMENT_SIGNING_SECRET must be at least 16 bytes")
	}
	if len(cfg.Payment.Currency) != 3 {
		return fmt.Errorf("PAYMENT_CURRENCY must be an ISO 4217 code, got %q", cfg.Payment.Currency)
	}
	if cfg.Ledger.OperationTimeout <= 0 {
		return fmt.Errorf("LEDGER_OPERATION_TIMEOUT must be positive")
	}
	if cfg.Ledger.MaxTxRetries < 1 {
		return fmt.Errorf("LEDGER_MAX_TX_RETRIES must be at least 1")
	}
	if cfg.DB.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	return nil
}
