package main

import (
	"context"
	"flag"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/hrunx/sprintly-mvp/internal/database"
	"github.com/hrunx/sprintly-mvp/internal/email"
	"github.com/hrunx/sprintly-mvp/internal/logger"
	"github.com/hrunx/sprintly-mvp/internal/services"
	"github.com/hrunx/sprintly-mvp/pkg/config"
)

// match-pipeline runs one match generation cycle from the command line, for
// cron jobs and manual backfills.
func main() {
	companyFlag := flag.String("company", "", "regenerate matches for a single company ID")
	investorFlag := flag.String("investor", "", "regenerate matches for a single investor ID")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.New()
	log := logger.New(cfg.Environment)

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", err)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("failed to run migrations", err)
	}

	ctx := context.Background()

	notifier, err := email.NewNotifier(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize email notifier", err)
	}

	svcs := services.NewServices(db.DB, cfg, log, notifier)

	var stats *services.GenerationStats
	switch {
	case *companyFlag != "":
		id, err := uuid.Parse(*companyFlag)
		if err != nil {
			log.Fatal("invalid company ID", err)
		}
		stats, err = svcs.Matching.GenerateForCompany(ctx, id)
		if err != nil {
			log.Fatal("match generation failed", err)
		}
	case *investorFlag != "":
		id, err := uuid.Parse(*investorFlag)
		if err != nil {
			log.Fatal("invalid investor ID", err)
		}
		stats, err = svcs.Matching.GenerateForInvestor(ctx, id)
		if err != nil {
			log.Fatal("match generation failed", err)
		}
	default:
		stats, err = svcs.Matching.GenerateAll(ctx)
		if err != nil {
			log.Fatal("match generation failed", err)
		}
	}

	log.Info("pipeline finished",
		"entities", stats.EntitiesProcessed,
		"pairs_scored", stats.PairsScored,
		"matches_stored", stats.MatchesStored,
		"notifications", stats.NotificationsSent,
		"failed", stats.Failed,
		"duration", stats.Duration.String(),
	)
}
