// Package bootstrap wires the configured dataset source to a ready
// recommender engine. Both the HTTP server and the CLI start here.
package bootstrap

import (
	"context"
	"fmt"

	"ecoEats/business/dataset"
	"ecoEats/business/recommender"
	"ecoEats/internal/repository/csvfile"
	psqlRepo "ecoEats/internal/repository/postgres"
	"ecoEats/pkg/config"
	"ecoEats/pkg/database"
	"ecoEats/pkg/logger"
	"ecoEats/pkg/metrics"
)

// NewFoodRepository returns the repository for cfg.Dataset.Source and a
// cleanup func releasing whatever it opened.
func NewFoodRepository(cfg *config.Config) (dataset.FoodRepository, func(), error) {
	switch cfg.Dataset.Source {
	case config.DatasetSourceCSV:
		return csvfile.NewFoodRepository(cfg.Dataset.Path), func() {}, nil

	case config.DatasetSourcePostgres:
		db, err := database.InitPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connected successfully")

		cleanup := func() {
			if err := database.ClosePostgres(db); err != nil {
				logger.Error("Failed to close database", err)
			}
		}
		return psqlRepo.NewFoodRepository(db), cleanup, nil
	}

	return nil, nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
}

// NewEngine loads and cleans the dataset and precomputes the normalized
// feature matrix. The dataset source is released before returning.
func NewEngine(ctx context.Context, cfg *config.Config) (*recommender.Engine, error) {
	repo, cleanup, err := NewFoodRepository(cfg)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	foods, err := dataset.NewLoader(repo).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", cfg.Dataset.Source, err)
	}

	engineCfg := recommender.DefaultConfig()
	engineCfg.SearchLimit = cfg.Recommender.SearchLimit

	engine, err := recommender.NewEngine(foods, engineCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build recommender: %w", err)
	}

	metrics.DatasetItems.Set(float64(engine.Len()))

	return engine, nil
}
