//go:build !integration

package dataset

import (
	"context"
	"errors"
	"testing"

	"ecoEats/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	rows []domain.RawFood
	err  error
}

func (s stubRepo) FindAll(ctx context.Context) ([]domain.RawFood, error) {
	return s.rows, s.err
}

func f(v float64) *float64 { return &v }

func rawRow(name string, energy, proteins, carbs, fats, fiber, carbon *float64) domain.RawFood {
	return domain.RawFood{
		Name:            name,
		Category:        "Main",
		TotalWeight:     f(200),
		Energy:          energy,
		Proteins:        proteins,
		Carbohydrates:   carbs,
		Fats:            fats,
		Fiber:           fiber,
		CarbonFootprint: carbon,
	}
}

func TestClean_ImputesColumnMean(t *testing.T) {
	raw := []domain.RawFood{
		rawRow("a", f(100), f(10), f(20), f(5), f(1), f(1.0)),
		rawRow("b", nil, f(20), f(40), nil, f(3), f(2.0)),
		rawRow("c", f(300), nil, f(60), f(15), f(5), nil),
	}

	foods, imputed, err := Clean(raw)
	require.NoError(t, err)
	require.Len(t, foods, 3)

	assert.Equal(t, 4, imputed)
	assert.InDelta(t, 200.0, foods[1].Energy, 1e-12)
	assert.InDelta(t, 10.0, foods[1].Fats, 1e-12)
	assert.InDelta(t, 15.0, foods[2].Proteins, 1e-12)
	assert.InDelta(t, 1.5, foods[2].CarbonFootprint, 1e-12)

	assert.Equal(t, []string{"a", "b", "c"}, []string{foods[0].Name, foods[1].Name, foods[2].Name})
}

func TestClean_MissingWeightIsZero(t *testing.T) {
	row := rawRow("a", f(1), f(1), f(1), f(1), f(1), f(1))
	row.TotalWeight = nil

	foods, _, err := Clean([]domain.RawFood{row})
	require.NoError(t, err)
	assert.Zero(t, foods[0].TotalWeight)
}

func TestClean_Errors(t *testing.T) {
	_, _, err := Clean(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)

	_, _, err = Clean([]domain.RawFood{rawRow("a", f(1), f(1), f(1), f(1), nil, f(1))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fiber")
}

func TestLoader_Load(t *testing.T) {
	repo := stubRepo{rows: []domain.RawFood{
		rawRow("a", f(100), f(10), f(20), f(5), f(1), f(1.0)),
		rawRow("b", f(200), f(20), f(40), f(6), f(3), f(2.0)),
	}}

	foods, err := NewLoader(repo).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, foods, 2)
}

func TestLoader_LoadWrapsRepositoryError(t *testing.T) {
	boom := errors.New("disk on fire")

	_, err := NewLoader(stubRepo{err: boom}).Load(context.Background())
	assert.ErrorIs(t, err, boom)
}
