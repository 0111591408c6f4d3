// File: cmd/seed/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"job-tracker-api/internal/config"
	"job-tracker-api/internal/domain/ports/repository"
	pg "job-tracker-api/internal/infra/db/postgres"
	"job-tracker-api/internal/infra/logging"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	fixture := flag.String("fixture", "deploy/seed/jobs.yaml", "user + jobs fixture (.yaml or .json)")
	flag.Parse()

	// ---- Config ----
	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, true)

	fx, err := loadFixture(*fixture)
	if err != nil {
		logger.Fatal().Err(err).Str("fixture", *fixture).Msg("load fixture")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect Postgres
	pool, err := pg.NewPgxPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	users := pg.NewUserRepo(pool)
	jobs := pg.NewJobRepo(pool)

	if err := users.Save(ctx, repository.NoTX, fx.User); err != nil {
		logger.Fatal().Err(err).Msg("save user")
	}
	for _, j := range fx.Jobs {
		if err := jobs.Save(ctx, repository.NoTX, j); err != nil {
			logger.Fatal().Err(err).Str("job_id", j.ID).Msg("save job")
		}
	}
	n, err := jobs.CountByUser(ctx, repository.NoTX, fx.User.ID)
	if err != nil {
		logger.Fatal().Err(err).Msg("count jobs")
	}
	logger.Info().Str("user_id", fx.User.ID).Int("jobs", n).Msg("seeding complete")
}
