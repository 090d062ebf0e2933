//go:build !integration

package recommender

import (
	"context"
	"errors"
	"math"
	"testing"

	"ecoEats/domain"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func food(name, category string, carbon, energy, proteins, carbs, fats, fiber float64) domain.Food {
	return domain.Food{
		Name:            name,
		Category:        category,
		Region:          "Region " + category,
		Type:            "Veg",
		Allergy:         "None",
		Ingredients:     "ingredients of " + name,
		TotalWeight:     250,
		Energy:          energy,
		Proteins:        proteins,
		Carbohydrates:   carbs,
		Fats:            fats,
		Fiber:           fiber,
		CarbonFootprint: carbon,
	}
}

func fixtureFoods() []domain.Food {
	return []domain.Food{
		food("Fried Rice", "Main", 2.5, 500, 12, 70, 18, 3),
		food("Vegetable Fried Rice", "Main", 2.0, 495, 11, 71, 17, 3),
		food("Chicken Fried Rice", "Main", 3.1, 520, 20, 68, 19, 3),
		food("Chicken Curry", "Main", 4.0, 450, 30, 20, 25, 2),
		food("Dal Cheela", "Breakfast", 0.6, 300, 14, 40, 8, 6),
		food("Paneer Tikka", "Snack", 1.8, 350, 18, 12, 24, 2),
		food("Brown Rice Bowl", "Lunch", 1.9, 490, 11, 74, 15, 4),
		food("Green Salad", "Salad", 0.2, 120, 3, 10, 6, 5),
		food("Rice", "Staple", 0.9, 360, 7, 80, 1, 1),
	}
}

func newTestEngine(t *testing.T, foods []domain.Food) *Engine {
	t.Helper()
	e, err := NewEngine(foods, DefaultConfig())
	require.NoError(t, err)
	return e
}

func indexOf(t *testing.T, foods []domain.Food, name string) int {
	t.Helper()
	for i, f := range foods {
		if f.Name == name {
			return i
		}
	}
	t.Fatalf("no food named %q", name)
	return -1
}

func TestNewEngine_RejectsEmptyDataset(t *testing.T) {
	_, err := NewEngine(nil, DefaultConfig())
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestNewEngine_RejectsNonFiniteFeature(t *testing.T) {
	foods := fixtureFoods()
	foods[2].Fats = math.NaN()

	_, err := NewEngine(foods, DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fats")
}

func TestNewEngine_CopiesDataset(t *testing.T) {
	foods := fixtureFoods()
	e := newTestEngine(t, foods)

	foods[0].Name = "Mutated"

	idx, err := e.FindItem("Fried Rice")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestFindItem(t *testing.T) {
	e := newTestEngine(t, fixtureFoods())

	tests := []struct {
		query string
		want  int
	}{
		{"Fried Rice", 0},
		{"fried rice", 0},
		{"CHICKEN CURRY", 3},
		{"chicken", 2},       // first substring match in dataset order
		{"rice", 8},          // exact match beats earlier substring matches
		{"  dal cheela ", 4}, // surrounding whitespace ignored
		{"tikka", 5},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := e.FindItem(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindItem_NotFound(t *testing.T) {
	e := newTestEngine(t, fixtureFoods())

	for _, q := range []string{"Nonexistent Dish XYZ", "", "   "} {
		_, err := e.FindItem(q)
		assert.ErrorIs(t, err, domain.ErrDishNotFound, q)
	}
}

func TestRecommend_ExactMatchScenario(t *testing.T) {
	foods := fixtureFoods()
	e := newTestEngine(t, foods)

	set, err := e.Recommend(context.Background(), "Fried Rice", domain.RecommendOptions{K: 3, SimilarityThreshold: 0.6})
	require.NoError(t, err)

	assert.Equal(t, "Fried Rice", set.TargetDish)
	assert.Equal(t, "Main", set.TargetCategory)
	assert.InDelta(t, 2.5, set.TargetCarbon, 1e-12)
	assert.Equal(t, 250, set.TargetProfile.TotalWeight)
	assert.Equal(t, 500, set.TargetProfile.EnergyKcal)
	assert.LessOrEqual(t, len(set.Recommendations), 3)
	require.NotEmpty(t, set.Recommendations)
	assert.Empty(t, set.Message)

	for _, r := range set.Recommendations {
		src := foods[indexOf(t, foods, r.Name)]
		assert.Less(t, src.CarbonFootprint, 2.5, r.Name)
		assert.Greater(t, e.Similarity(0, indexOf(t, foods, r.Name)), 0.6, r.Name)
		assert.NotEqual(t, "Fried Rice", r.Name)
	}
}

func TestRecommend_NoMatchScenario(t *testing.T) {
	e := newTestEngine(t, fixtureFoods())

	set, err := e.Recommend(context.Background(), "Nonexistent Dish XYZ", domain.DefaultRecommendOptions())
	require.Error(t, err)
	assert.Nil(t, set)
	assert.ErrorIs(t, err, domain.ErrDishNotFound)

	var nf *domain.DishNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Dish 'Nonexistent Dish XYZ' not found", nf.Error())
}

func TestRecommend_NoAlternativesScenario(t *testing.T) {
	e := newTestEngine(t, fixtureFoods())

	set, err := e.Recommend(context.Background(), "Green Salad", domain.RecommendOptions{K: 5, SimilarityThreshold: -1})
	require.NoError(t, err)

	assert.True(t, set.NoAlternatives())
	assert.NotNil(t, set.Recommendations)
	assert.Empty(t, set.Recommendations)
	assert.Equal(t, "No eco-friendly alternatives found", set.Message)
	assert.Zero(t, set.TotalCandidates)
	assert.Nil(t, set.NutritionalSummary)

	body, err := json.Marshal(set)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"recommendations":[]`)
	assert.NotContains(t, string(body), `"error"`)
}

func TestRecommend_Invariants(t *testing.T) {
	foods := fixtureFoods()
	e := newTestEngine(t, foods)
	thresholds := []float64{-1, -0.5, 0, 0.3, 0.6, 0.9}

	for ti, target := range foods {
		for _, th := range thresholds {
			for _, same := range []bool{false, true} {
				opts := domain.RecommendOptions{K: 3, SimilarityThreshold: th, SameCategory: same}
				set, err := e.Recommend(context.Background(), target.Name, opts)
				require.NoError(t, err)

				wantTotal := 0
				for j, f := range foods {
					if j != ti && f.CarbonFootprint < target.CarbonFootprint &&
						e.Similarity(ti, j) > th && (!same || f.Category == target.Category) {
						wantTotal++
					}
				}
				assert.Equal(t, wantTotal, set.TotalCandidates, "%s th=%v same=%v", target.Name, th, same)
				assert.Len(t, set.Recommendations, min(opts.K, wantTotal))

				for _, r := range set.Recommendations {
					j := indexOf(t, foods, r.Name)
					assert.NotEqual(t, ti, j, "self recommended")
					assert.Less(t, foods[j].CarbonFootprint, target.CarbonFootprint)
					assert.Greater(t, e.Similarity(ti, j), th)
					if same {
						assert.Equal(t, target.Category, r.Category)
					}
				}
			}
		}
	}
}

func TestRecommend_ThresholdBoundaryExcluded(t *testing.T) {
	foods := fixtureFoods()
	e := newTestEngine(t, foods)
	target := indexOf(t, foods, "Fried Rice")
	cand := indexOf(t, foods, "Vegetable Fried Rice")

	sim := e.Similarity(target, cand)
	set, err := e.Recommend(context.Background(), "Fried Rice", domain.RecommendOptions{K: 10, SimilarityThreshold: sim})
	require.NoError(t, err)

	for _, r := range set.Recommendations {
		assert.NotEqual(t, "Vegetable Fried Rice", r.Name)
	}
}

func TestRecommend_TopKBound(t *testing.T) {
	e := newTestEngine(t, fixtureFoods())

	for k := 1; k <= 10; k++ {
		set, err := e.Recommend(context.Background(), "Chicken Curry", domain.RecommendOptions{K: k, SimilarityThreshold: -1})
		require.NoError(t, err)
		assert.Len(t, set.Recommendations, min(k, set.TotalCandidates))
		assert.Equal(t, 8, set.TotalCandidates)
	}
}

func TestRecommend_ScoresAndRanking(t *testing.T) {
	foods := fixtureFoods()
	e := newTestEngine(t, foods)
	ti := indexOf(t, foods, "Chicken Curry")
	target := foods[ti]

	set, err := e.Recommend(context.Background(), "Chicken Curry", domain.RecommendOptions{K: 8, SimilarityThreshold: -1})
	require.NoError(t, err)
	require.Len(t, set.Recommendations, 8)

	var sumReduction float64
	prev := math.Inf(1)
	for _, r := range set.Recommendations {
		j := indexOf(t, foods, r.Name)
		sim := e.Similarity(ti, j)
		reduction := target.CarbonFootprint - foods[j].CarbonFootprint
		eco := 0.7*sim + 0.3*(reduction/target.CarbonFootprint)
		sumReduction += reduction

		assert.Equal(t, round3(sim), r.SimilarityScore)
		assert.Equal(t, round3(reduction), r.CarbonReduction)
		assert.Equal(t, round1(100*reduction/target.CarbonFootprint), r.CarbonReductionPct)
		assert.Equal(t, round3(eco), r.EcoScore)
		assert.Equal(t, round3(foods[j].CarbonFootprint), r.CarbonFootprint)
		assert.Equal(t, round1(foods[j].Energy-target.Energy), r.NutritionalComparison.EnergyDiff)

		assert.LessOrEqual(t, eco, prev+1e-12)
		prev = eco
	}
	assert.InDelta(t, round3(sumReduction/8), set.AvgCarbonReduction, 1e-9)
	require.NotNil(t, set.NutritionalSummary)
}

func TestRecommend_AverageReductionCoversAllCandidates(t *testing.T) {
	foods := fixtureFoods()
	e := newTestEngine(t, foods)
	ti := indexOf(t, foods, "Chicken Curry")

	set, err := e.Recommend(context.Background(), "Chicken Curry", domain.RecommendOptions{K: 1, SimilarityThreshold: -1})
	require.NoError(t, err)
	require.Len(t, set.Recommendations, 1)

	var sum float64
	for j, f := range foods {
		if j != ti {
			sum += foods[ti].CarbonFootprint - f.CarbonFootprint
		}
	}
	assert.InDelta(t, round3(sum/8), set.AvgCarbonReduction, 1e-9)
}

func TestRecommend_StableTieBreak(t *testing.T) {
	foods := []domain.Food{
		food("Target Dish", "Main", 3.0, 500, 20, 50, 20, 4),
		food("Twin B", "Main", 1.0, 450, 18, 48, 15, 5),
		food("Other", "Main", 2.9, 100, 2, 5, 1, 0),
		food("Twin A", "Main", 1.0, 450, 18, 48, 15, 5),
		food("Twin C", "Main", 1.0, 450, 18, 48, 15, 5),
	}
	e := newTestEngine(t, foods)

	set, err := e.Recommend(context.Background(), "Target Dish", domain.RecommendOptions{K: 3, SimilarityThreshold: -1})
	require.NoError(t, err)
	require.Len(t, set.Recommendations, 3)

	names := []string{set.Recommendations[0].Name, set.Recommendations[1].Name, set.Recommendations[2].Name}
	assert.Equal(t, []string{"Twin B", "Twin A", "Twin C"}, names)
}

func TestRecommend_Deterministic(t *testing.T) {
	e := newTestEngine(t, fixtureFoods())
	opts := domain.RecommendOptions{K: 4, SimilarityThreshold: 0}

	first, err := e.Recommend(context.Background(), "Chicken Fried Rice", opts)
	require.NoError(t, err)
	want, err := json.Marshal(first)
	require.NoError(t, err)

	for range 20 {
		again, err := e.Recommend(context.Background(), "Chicken Fried Rice", opts)
		require.NoError(t, err)
		got, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}

func TestRecommend_InvalidOptions(t *testing.T) {
	e := newTestEngine(t, fixtureFoods())

	_, err := e.Recommend(context.Background(), "Fried Rice", domain.RecommendOptions{K: 0, SimilarityThreshold: 0.6})
	assert.ErrorIs(t, err, domain.ErrInvalidOptions)

	_, err = e.Recommend(context.Background(), "Fried Rice", domain.RecommendOptions{K: 1, SimilarityThreshold: math.NaN()})
	assert.ErrorIs(t, err, domain.ErrInvalidOptions)
}

func TestRecommend_CancelledContext(t *testing.T) {
	e := newTestEngine(t, fixtureFoods())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Recommend(ctx, "Fried Rice", domain.DefaultRecommendOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecommend_ZeroVarianceColumnStaysFinite(t *testing.T) {
	foods := []domain.Food{
		food("A", "Main", 3.0, 500, 20, 50, 20, 4),
		food("B", "Main", 2.0, 450, 18, 48, 15, 4),
		food("C", "Main", 1.0, 300, 5, 60, 10, 4),
	}
	e := newTestEngine(t, foods)

	for i := range foods {
		for j := range foods {
			s := e.Similarity(i, j)
			assert.False(t, math.IsNaN(s) || math.IsInf(s, 0))
		}
	}

	set, err := e.Recommend(context.Background(), "A", domain.RecommendOptions{K: 5, SimilarityThreshold: -1})
	require.NoError(t, err)
	for _, r := range set.Recommendations {
		assert.False(t, math.IsNaN(r.SimilarityScore))
		assert.False(t, math.IsNaN(r.EcoScore))
	}
}

func TestRecommend_AllIdenticalRows(t *testing.T) {
	foods := []domain.Food{
		food("A", "Main", 1.0, 100, 1, 1, 1, 1),
		food("B", "Main", 1.0, 100, 1, 1, 1, 1),
	}
	e := newTestEngine(t, foods)

	assert.Zero(t, e.Similarity(0, 1))

	set, err := e.Recommend(context.Background(), "A", domain.RecommendOptions{K: 5, SimilarityThreshold: -1})
	require.NoError(t, err)
	assert.True(t, set.NoAlternatives())
}

func TestRecommend_ZeroCarbonTarget(t *testing.T) {
	foods := []domain.Food{
		food("Water", "Drink", 0, 0, 0, 0, 0, 0),
		food("Juice", "Drink", 0.3, 110, 1, 26, 0, 0.5),
	}
	e := newTestEngine(t, foods)

	set, err := e.Recommend(context.Background(), "Water", domain.RecommendOptions{K: 5, SimilarityThreshold: -1})
	require.NoError(t, err)
	assert.True(t, set.NoAlternatives())
	assert.Zero(t, set.TargetCarbon)
}
