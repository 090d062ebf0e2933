package recommender

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"ecoEats/domain"
)

// Search returns up to limit dishes whose name contains query
// case-insensitively, in dataset order. No similarity is computed.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = e.cfg.SearchLimit
	}

	q := strings.ToLower(strings.TrimSpace(query))
	results := make([]domain.SearchResult, 0, min(limit, len(e.foods)))
	if q == "" {
		return results, nil
	}

	for i, name := range e.lowerNames {
		if len(results) == limit {
			break
		}
		if !strings.Contains(name, q) {
			continue
		}
		f := e.foods[i]
		results = append(results, domain.SearchResult{
			Name:            f.Name,
			Category:        f.Category,
			CarbonFootprint: round3(f.CarbonFootprint),
			EnergyKcal:      int(f.Energy),
		})
	}

	return results, nil
}

// Stats summarizes the dataset. Empty categorical values are skipped.
func (e *Engine) Stats(ctx context.Context) (domain.DatasetSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.DatasetSummary{}, fmt.Errorf("context error: %w", err)
	}

	var (
		sum    vector
		minCO2 = math.Inf(1)
		maxCO2 = math.Inf(-1)
	)
	categories := newOrderedSet(0)
	regions := newOrderedSet(e.cfg.PreviewLimit)
	allergens := newOrderedSet(e.cfg.PreviewLimit)

	for _, f := range e.foods {
		addScaled(&sum, f.Features(), 1)
		minCO2 = math.Min(minCO2, f.CarbonFootprint)
		maxCO2 = math.Max(maxCO2, f.CarbonFootprint)
		categories.add(f.Category)
		regions.add(f.Region)
		allergens.add(f.Allergy)
	}

	n := float64(len(e.foods))
	return domain.DatasetSummary{
		TotalDishes:        len(e.foods),
		Categories:         categories.values,
		AvgCarbonFootprint: round3(sum[domain.FeatureCarbonFootprint] / n),
		CarbonFootprintRange: domain.CarbonRange{
			Min: round3(minCO2),
			Max: round3(maxCO2),
		},
		Regions:   regions.values,
		Allergens: allergens.values,
		NutritionalStats: domain.NutritionalStats{
			AvgEnergy:        round1(sum[domain.FeatureEnergy] / n),
			AvgProteins:      round1(sum[domain.FeatureProteins] / n),
			AvgCarbohydrates: round1(sum[domain.FeatureCarbohydrates] / n),
			AvgFats:          round1(sum[domain.FeatureFats] / n),
			AvgFiber:         round1(sum[domain.FeatureFiber] / n),
		},
	}, nil
}

// Compare resolves every name with FindItem and returns the profile of each
// resolved dish, in request order. Names that do not resolve are listed in
// NotFound.
func (e *Engine) Compare(ctx context.Context, names []string) (domain.Comparison, error) {
	if err := ctx.Err(); err != nil {
		return domain.Comparison{}, fmt.Errorf("context error: %w", err)
	}

	out := domain.Comparison{
		Comparison: make([]domain.DishComparison, 0, len(names)),
		NotFound:   []string{},
	}
	for _, name := range names {
		idx, err := e.FindItem(name)
		if errors.Is(err, domain.ErrDishNotFound) {
			out.NotFound = append(out.NotFound, name)
			continue
		}
		if err != nil {
			return domain.Comparison{}, err
		}

		f := e.foods[idx]
		out.Comparison = append(out.Comparison, domain.DishComparison{
			Name:     f.Name,
			Category: f.Category,
			Region:   f.Region,
			Type:     f.Type,
			Allergy:  f.Allergy,
			NutritionalProfile: domain.DishProfile{
				NutritionalProfile: profileOf(f),
				CarbonFootprint:    round3(f.CarbonFootprint),
				TotalWeightGms:     f.TotalWeight,
			},
		})
	}

	return out, nil
}

// orderedSet keeps distinct non-empty values in first-seen order, up to
// limit values when limit > 0.
type orderedSet struct {
	limit  int
	seen   map[string]struct{}
	values []string
}

func newOrderedSet(limit int) *orderedSet {
	return &orderedSet{limit: limit, seen: make(map[string]struct{}), values: []string{}}
}

func (s *orderedSet) add(v string) {
	if v == "" || (s.limit > 0 && len(s.values) >= s.limit) {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}
