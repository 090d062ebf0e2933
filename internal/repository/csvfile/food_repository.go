// Package csvfile reads the food dataset from a CSV file whose header uses
// the column names of the published nutrition dataset.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ecoEats/domain"
)

const (
	colFood        = "Food"
	colCategory    = "Category"
	colRegion      = "Region"
	colType        = "Type"
	colAllergy     = "Allergy"
	colIngredients = "Ingredients"
	colWeight      = "Total Weight (gms)"
)

type FoodRepository struct {
	Path string
}

func NewFoodRepository(path string) *FoodRepository {
	return &FoodRepository{
		Path: path,
	}
}

func (r *FoodRepository) FindAll(ctx context.Context) ([]domain.RawFood, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	file, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads CSV rows in file order. Unparseable numeric cells become nil.
func Parse(in io.Reader) ([]domain.RawFood, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("dataset has no header")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.TrimSpace(h)] = i
	}

	required := append([]string{colFood}, domain.FeatureNames[:]...)
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", name)
		}
	}

	var rows []domain.RawFood
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		num := func(name string) *float64 {
			v, err := strconv.ParseFloat(get(name), 64)
			if err != nil {
				return nil
			}
			return domain.Float(v)
		}

		rows = append(rows, domain.RawFood{
			ID:              uint64(len(rows) + 1),
			Name:            get(colFood),
			Category:        get(colCategory),
			Region:          get(colRegion),
			Type:            get(colType),
			Allergy:         get(colAllergy),
			Ingredients:     get(colIngredients),
			TotalWeight:     num(colWeight),
			Energy:          num(domain.FeatureNames[domain.FeatureEnergy]),
			Proteins:        num(domain.FeatureNames[domain.FeatureProteins]),
			Carbohydrates:   num(domain.FeatureNames[domain.FeatureCarbohydrates]),
			Fats:            num(domain.FeatureNames[domain.FeatureFats]),
			Fiber:           num(domain.FeatureNames[domain.FeatureFiber]),
			CarbonFootprint: num(domain.FeatureNames[domain.FeatureCarbonFootprint]),
		})
	}

	return rows, nil
}
