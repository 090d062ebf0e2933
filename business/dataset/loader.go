// Package dataset turns raw food rows from a repository into the cleaned,
// fully numeric dataset the recommender is built on.
package dataset

import (
	"context"
	"fmt"

	"ecoEats/domain"
	"ecoEats/pkg/logger"
)

// FoodRepository contract interface
type FoodRepository interface {
	FindAll(ctx context.Context) ([]domain.RawFood, error)
}

type Loader struct {
	foodRepo FoodRepository
}

func NewLoader(foodRepo FoodRepository) *Loader {
	return &Loader{
		foodRepo: foodRepo,
	}
}

// Load reads every row from the repository and cleans it. Row order is
// preserved.
func (l *Loader) Load(ctx context.Context) ([]domain.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	raw, err := l.foodRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load raw foods: %w", err)
	}

	foods, imputed, err := Clean(raw)
	if err != nil {
		return nil, err
	}

	logger.Info("Dataset loaded", "items", len(foods), "imputed_values", imputed)

	return foods, nil
}

// Clean replaces missing feature values with the mean of the present values
// in the same column. It returns the cleaned rows and the number of imputed
// values. A column with no value at all is an error.
func Clean(raw []domain.RawFood) ([]domain.Food, int, error) {
	if len(raw) == 0 {
		return nil, 0, domain.ErrEmptyDataset
	}

	var (
		sums   [domain.NumFeatures]float64
		counts [domain.NumFeatures]int
	)
	for i := range raw {
		for col, v := range raw[i].Features() {
			if v == nil {
				continue
			}
			sums[col] += *v
			counts[col]++
		}
	}

	var means [domain.NumFeatures]float64
	for col := range domain.NumFeatures {
		if counts[col] == 0 {
			return nil, 0, fmt.Errorf("column %q has no numeric values", domain.FeatureNames[col])
		}
		means[col] = sums[col] / float64(counts[col])
	}

	imputed := 0
	foods := make([]domain.Food, 0, len(raw))
	for i := range raw {
		r := &raw[i]
		var x [domain.NumFeatures]float64
		for col, v := range r.Features() {
			if v == nil {
				x[col] = means[col]
				imputed++
				continue
			}
			x[col] = *v
		}

		weight := 0.0
		if r.TotalWeight != nil {
			weight = *r.TotalWeight
		}

		foods = append(foods, domain.Food{
			Name:            r.Name,
			Category:        r.Category,
			Region:          r.Region,
			Type:            r.Type,
			Allergy:         r.Allergy,
			Ingredients:     r.Ingredients,
			TotalWeight:     weight,
			Energy:          x[domain.FeatureEnergy],
			Proteins:        x[domain.FeatureProteins],
			Carbohydrates:   x[domain.FeatureCarbohydrates],
			Fats:            x[domain.FeatureFats],
			Fiber:           x[domain.FeatureFiber],
			CarbonFootprint: x[domain.FeatureCarbonFootprint],
		})
	}

	return foods, imputed, nil
}
