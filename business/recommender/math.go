package recommender

import (
	"math"

	"ecoEats/domain"
)

func dot(a, b vector) float64 {
	sum := 0.0
	for i := range domain.NumFeatures {
		sum += a[i] * b[i]
	}
	return sum
}

// b := b + r x
func addScaled(b *vector, x vector, r float64) {
	for i := range domain.NumFeatures {
		(*b)[i] += r * x[i]
	}
}

func norm(a vector) float64 {
	return math.Sqrt(dot(a, a))
}

// cosine returns 0 when either vector has zero magnitude.
func cosine(a, b vector) float64 {
	denom := norm(a) * norm(b)
	if denom == 0 {
		return 0
	}
	return dot(a, b) / denom
}

// ratio returns num/den, or 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// round rounds exact halves to even.
func round(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.RoundToEven(x*p) / p
}

func round3(x float64) float64 { return round(x, 3) }

func round1(x float64) float64 { return round(x, 1) }

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
