// Package recommender ranks eco-friendly, nutritionally similar alternatives
// to a food item.
//
// An Engine is built once from a cleaned dataset and is read-only afterwards,
// so a single instance may serve any number of concurrent requests.
package recommender

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"ecoEats/domain"
	"ecoEats/pkg/logger"
)

const noAlternativesMessage = "No eco-friendly alternatives found"

type Engine struct {
	foods      []domain.Food
	lowerNames []string
	matrix     []vector
	normalizer *Normalizer
	cfg        Config
}

// NewEngine copies foods, validates that every feature attribute is finite
// and builds the normalized feature matrix.
func NewEngine(foods []domain.Food, cfg Config) (*Engine, error) {
	if len(foods) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	owned := make([]domain.Food, len(foods))
	copy(owned, foods)

	lower := make([]string, len(owned))
	for i, f := range owned {
		for j, v := range f.Features() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("food %d (%q): %s is not finite", i, f.Name, domain.FeatureNames[j])
			}
		}
		lower[i] = strings.ToLower(f.Name)
	}

	matrix, normalizer := BuildMatrix(owned)

	return &Engine{
		foods:      owned,
		lowerNames: lower,
		matrix:     matrix,
		normalizer: normalizer,
		cfg:        cfg.withDefaults(),
	}, nil
}

func (e *Engine) Len() int {
	return len(e.foods)
}

func (e *Engine) Normalizer() Normalizer {
	return *e.normalizer
}

// FindItem resolves query to a dataset index: a case-insensitive exact name
// match wins, otherwise the first case-insensitive substring match in dataset
// order.
func (e *Engine) FindItem(query string) (int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1, &domain.DishNotFoundError{Query: query}
	}

	for i, name := range e.lowerNames {
		if name == q {
			return i, nil
		}
	}
	for i, name := range e.lowerNames {
		if strings.Contains(name, q) {
			return i, nil
		}
	}

	return -1, &domain.DishNotFoundError{Query: query}
}

// Similarity returns the cosine similarity of rows i and j of the
// normalized matrix.
func (e *Engine) Similarity(i, j int) float64 {
	return cosine(e.matrix[i], e.matrix[j])
}

type candidate struct {
	idx        int
	similarity float64
	reduction  float64
	ecoScore   float64
}

// Recommend returns up to opts.K lower-carbon alternatives to the dish named
// by query, ranked by eco score. A dish with no qualifying alternative yields
// an empty list and a message rather than an error.
func (e *Engine) Recommend(ctx context.Context, query string, opts domain.RecommendOptions) (*domain.RecommendationSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if opts.K < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", domain.ErrInvalidOptions, opts.K)
	}
	if math.IsNaN(opts.SimilarityThreshold) {
		return nil, fmt.Errorf("%w: similarity threshold is NaN", domain.ErrInvalidOptions)
	}

	idx, err := e.FindItem(query)
	if err != nil {
		return nil, err
	}

	target := e.foods[idx]
	cands := e.filterCandidates(idx, opts)

	logger.Debug("recommend",
		"trace_id", logger.TraceIDFromContext(ctx),
		"query", query,
		"target", target.Name,
		"k", opts.K,
		"threshold", opts.SimilarityThreshold,
		"same_category", opts.SameCategory,
		"candidates", len(cands),
	)

	set := &domain.RecommendationSet{
		TargetDish: target.Name,
		TargetProfile: domain.TargetProfile{
			TotalWeight:        int(target.TotalWeight),
			NutritionalProfile: profileOf(target),
		},
		TargetCarbon:    round3(target.CarbonFootprint),
		TargetCategory:  target.Category,
		Recommendations: []domain.Recommendation{},
	}

	if len(cands) == 0 {
		set.Message = noAlternativesMessage
		return set, nil
	}

	sort.SliceStable(cands, func(a, b int) bool {
		return cands[a].ecoScore > cands[b].ecoScore
	})

	reductions := make([]float64, len(cands))
	for i, c := range cands {
		reductions[i] = c.reduction
	}
	set.TotalCandidates = len(cands)
	set.AvgCarbonReduction = round3(mean(reductions))

	top := cands[:min(opts.K, len(cands))]
	set.Recommendations = make([]domain.Recommendation, 0, len(top))
	for _, c := range top {
		set.Recommendations = append(set.Recommendations, e.buildRecommendation(target, c))
	}
	set.NutritionalSummary = summarize(target, e.foods, top)

	return set, nil
}

// filterCandidates keeps rows that are strictly lower in carbon, are not the
// target, are strictly above the similarity threshold and, when requested,
// share the target's category. Result order is dataset order.
func (e *Engine) filterCandidates(idx int, opts domain.RecommendOptions) []candidate {
	target := e.foods[idx]
	tv := e.matrix[idx]

	out := make([]candidate, 0)
	for i, f := range e.foods {
		if i == idx {
			continue
		}
		if !(f.CarbonFootprint < target.CarbonFootprint) {
			continue
		}
		if opts.SameCategory && f.Category != target.Category {
			continue
		}

		sim := cosine(tv, e.matrix[i])
		if !(sim > opts.SimilarityThreshold) {
			continue
		}

		reduction := target.CarbonFootprint - f.CarbonFootprint
		share := ratio(reduction, target.CarbonFootprint)
		out = append(out, candidate{
			idx:        i,
			similarity: sim,
			reduction:  reduction,
			ecoScore:   e.cfg.SimilarityWeight*sim + e.cfg.CarbonWeight*share,
		})
	}
	return out
}

func (e *Engine) buildRecommendation(target domain.Food, c candidate) domain.Recommendation {
	f := e.foods[c.idx]
	return domain.Recommendation{
		Name:                  f.Name,
		TotalWeight:           f.TotalWeight,
		Category:              f.Category,
		Region:                f.Region,
		Type:                  f.Type,
		Allergy:               f.Allergy,
		Ingredients:           f.Ingredients,
		CarbonFootprint:       round3(f.CarbonFootprint),
		CarbonReduction:       round3(c.reduction),
		CarbonReductionPct:    round1(100 * ratio(c.reduction, target.CarbonFootprint)),
		SimilarityScore:       round3(c.similarity),
		EcoScore:              round3(c.ecoScore),
		NutritionalProfile:    profileOf(f),
		NutritionalComparison: compareNutrition(target, f),
	}
}

func profileOf(f domain.Food) domain.NutritionalProfile {
	return domain.NutritionalProfile{
		EnergyKcal:    int(f.Energy),
		Proteins:      f.Proteins,
		Carbohydrates: f.Carbohydrates,
		Fats:          f.Fats,
		Fiber:         f.Fiber,
	}
}

func compareNutrition(target, f domain.Food) domain.NutritionalComparison {
	return domain.NutritionalComparison{
		EnergyDiff:  round1(f.Energy - target.Energy),
		ProteinDiff: round1(f.Proteins - target.Proteins),
		CarbDiff:    round1(f.Carbohydrates - target.Carbohydrates),
		FatDiff:     round1(f.Fats - target.Fats),
		FiberDiff:   round1(f.Fiber - target.Fiber),
	}
}

// summarize averages the unrounded nutritional differences of the returned
// recommendations.
func summarize(target domain.Food, foods []domain.Food, top []candidate) *domain.NutritionalSummary {
	if len(top) == 0 {
		return nil
	}
	var diff vector
	tx := target.Features()
	for _, c := range top {
		addScaled(&diff, foods[c.idx].Features(), 1)
		addScaled(&diff, tx, -1)
	}
	n := float64(len(top))
	return &domain.NutritionalSummary{
		AvgEnergyDiff:  round1(diff[domain.FeatureEnergy] / n),
		AvgProteinDiff: round1(diff[domain.FeatureProteins] / n),
		AvgCarbDiff:    round1(diff[domain.FeatureCarbohydrates] / n),
		AvgFatDiff:     round1(diff[domain.FeatureFats] / n),
		AvgFiberDiff:   round1(diff[domain.FeatureFiber] / n),
	}
}
