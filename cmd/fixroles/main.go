// Command fixroles is a one-shot maintenance tool: it scans every stored
// account and resets any empty or unrecognised role to the default viewer
// role. Safe to re-run; valid roles are never touched.
package main

import (
	"context"
	"time"

	"github.com/statuspulse/monitoring-system/internal/core/service"
	"github.com/statuspulse/monitoring-system/internal/infrastructure/config"
	mongodb "github.com/statuspulse/monitoring-system/internal/infrastructure/db/mongo"
	"github.com/statuspulse/monitoring-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := mongodb.NewUserRepository(db)
	report, err := service.RepairRoles(ctx, repo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("role repair failed")
	}

	log.Info().
		Int("checked", report.Checked).
		Int("repaired", report.Repaired).
		Strs("repaired_ids", report.RepairedIDs).
		Msg("role repair complete")
}
