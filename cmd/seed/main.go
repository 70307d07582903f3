// Command seed loads the sample blog data and optional generated volume.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"inkwell/internal/bootstrap"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/seed"
)

func main() {
	fakeUsers := flag.Int("fake-users", 0, "Number of generated users to add")
	fakePosts := flag.Int("fake-posts", 0, "Number of generated posts to add")
	fast := flag.Bool("fast", false, "Hash passwords with the minimum bcrypt cost")
	dryRun := flag.Bool("dry-run", false, "Build rows without writing generated data")
	maxDays := flag.Int("max-days", 90, "Spread generated posts over this many days")
	randSeed := flag.Int64("rand-seed", 0, "Seed for generated content (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	middleware.ConfigureLogger(cfg.Env, cfg.LogLevel)

	db, err := bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{
		SeedSample: true,
		Seed: seed.SeedOptions{
			FakeUsers: *fakeUsers,
			FakePosts: *fakePosts,
			FastHash:  *fast,
			DryRun:    *dryRun,
			MaxDays:   *maxDays,
			RandSeed:  *randSeed,
		},
	})
	if err != nil {
		middleware.Logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = database.Close(db) }()

	middleware.Logger.Info("seeding complete", slog.String("password", seed.SamplePassword))
}
