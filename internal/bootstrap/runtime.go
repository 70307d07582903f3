// Package bootstrap wires the process-level runtime shared by the commands.
package bootstrap

import (
	"context"
	"fmt"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"

	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedSample loads the sample fixtures when the database has no users.
	SeedSample bool
	Seed       seed.SeedOptions
}

// InitRuntime connects to the database, applies the schema policy and
// optionally seeds sample data.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.SeedSample {
		if err := seed.Seed(ctx, db, opts.Seed); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	return db, nil
}
