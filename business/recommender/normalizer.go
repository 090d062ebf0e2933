package recommender

import (
	"math"

	"ecoEats/domain"
)

type vector = [domain.NumFeatures]float64

// Normalizer holds per-column standardization parameters fitted on a dataset.
type Normalizer struct {
	Means   vector
	StdDevs vector
}

// FitNormalizer computes the mean and population standard deviation of every
// feature column.
func FitNormalizer(foods []domain.Food) *Normalizer {
	n := &Normalizer{}
	if len(foods) == 0 {
		return n
	}

	count := float64(len(foods))
	for _, f := range foods {
		addScaled(&n.Means, f.Features(), 1)
	}
	for i := range domain.NumFeatures {
		n.Means[i] /= count
	}

	var sq vector
	for _, f := range foods {
		x := f.Features()
		for i := range domain.NumFeatures {
			d := x[i] - n.Means[i]
			sq[i] += d * d
		}
	}
	for i := range domain.NumFeatures {
		n.StdDevs[i] = math.Sqrt(sq[i] / count)
	}

	return n
}

// Transform standardizes x. A column with zero spread maps to 0.
func (n *Normalizer) Transform(x vector) vector {
	var out vector
	for i := range domain.NumFeatures {
		if n.StdDevs[i] == 0 {
			continue
		}
		out[i] = (x[i] - n.Means[i]) / n.StdDevs[i]
	}
	return out
}

// BuildMatrix fits a normalizer on foods and returns the standardized matrix,
// row i aligned with foods[i].
func BuildMatrix(foods []domain.Food) ([]vector, *Normalizer) {
	n := FitNormalizer(foods)
	matrix := make([]vector, len(foods))
	for i, f := range foods {
		matrix[i] = n.Transform(f.Features())
	}
	return matrix, n
}
