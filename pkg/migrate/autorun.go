package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/electroquick/pkg/config"
	"github.com/angelmondragon/electroquick/pkg/db"
	"github.com/angelmondragon/electroquick/pkg/logger"
)

// MaybeRun applies the embedded migrations when auto-migrate is enabled.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.DB.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"driver": cfg.DB.Driver, "dir": DefaultDir})
	logg.Info(ctx, "running goose migrations")

	if err := Up(ctx, sqlDB, cfg.DB.Driver); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
