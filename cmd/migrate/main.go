package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/config"
	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/pkg/logger"
	"github.com/quadrago-discovery/internal/repository/memory"
	"github.com/quadrago-discovery/internal/repository/postgres"
)

func main() {
	down := flag.Bool("down", false, "roll back the last migration")
	seed := flag.Bool("seed", false, "load the demo catalog and generated slots")
	seedDays := flag.Int("seed-days", 14, "number of days of slots to generate")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *down {
		if err := postgres.Rollback(ctx, db.DB.DB, log); err != nil {
			log.Fatal("Rollback failed", zap.Error(err))
		}
		return
	}

	if err := postgres.Migrate(ctx, db.DB.DB, log); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	if !*seed {
		return
	}

	centers := memory.SeedCenters()
	sports := memory.SeedSports()
	if err := postgres.SeedCatalog(ctx, db, centers, sports); err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}

	// Слоты генерируются тем же детерминированным генератором, что и memory провайдер
	catalog := memory.NewCatalogRepository(centers, sports, log)
	generator := memory.NewAvailabilityRepository(catalog, cfg.Catalog.MockSeed, log)

	from := domain.DateOf(time.Now())
	slots, err := memory.GenerateSlots(ctx, generator, centers, from, *seedDays, []int{60, 90, 120})
	if err != nil {
		log.Fatal("Failed to generate slots", zap.Error(err))
	}

	written, err := postgres.SeedSlots(ctx, db, slots)
	if err != nil {
		log.Fatal("Failed to seed slots", zap.Error(err))
	}

	log.Info("Demo data loaded",
		zap.Int("centers", len(centers)),
		zap.Int("slots", written),
		zap.String("from", from.String()),
		zap.Int("days", *seedDays))
}
