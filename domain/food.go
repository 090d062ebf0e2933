package domain

import "math"

// CREATE TABLE public.foods (
//     id                BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     food              TEXT NOT NULL,
//     category          TEXT,
//     region            TEXT,
//     type              TEXT,
//     allergy           TEXT,
//     ingredients       TEXT,
//     total_weight      NUMERIC,
//     energy_kcal       NUMERIC,
//     proteins          NUMERIC,
//     carbohydrates     NUMERIC,
//     fats              NUMERIC,
//     fiber             NUMERIC,
//     carbon_footprint  NUMERIC
// );

// Feature column order shared by the loader, the normalizer and the engine.
const (
	FeatureEnergy = iota
	FeatureProteins
	FeatureCarbohydrates
	FeatureFats
	FeatureFiber
	FeatureCarbonFootprint

	NumFeatures
)

// FeatureNames are the dataset column headers of the feature attributes.
var FeatureNames = [NumFeatures]string{
	"Energy(kcal)",
	"Proteins",
	"Carbohydrates",
	"Fats",
	"Fiber",
	"Carbon Footprint(kg CO2e)",
}

// Food is one cleaned dataset row. It is never mutated after loading.
type Food struct {
	Name            string
	Category        string
	Region          string
	Type            string
	Allergy         string
	Ingredients     string
	TotalWeight     float64
	Energy          float64
	Proteins        float64
	Carbohydrates   float64
	Fats            float64
	Fiber           float64
	CarbonFootprint float64
}

// Features returns the feature attributes in FeatureNames order.
func (f Food) Features() [NumFeatures]float64 {
	return [NumFeatures]float64{
		f.Energy,
		f.Proteins,
		f.Carbohydrates,
		f.Fats,
		f.Fiber,
		f.CarbonFootprint,
	}
}

// RawFood is a dataset row as read from a source, before imputation.
// Missing or unparseable numeric attributes are nil.
type RawFood struct {
	ID              uint64   `gorm:"primaryKey;autoIncrement"`
	Name            string   `gorm:"column:food;type:text;not null"`
	Category        string   `gorm:"column:category;type:text"`
	Region          string   `gorm:"column:region;type:text"`
	Type            string   `gorm:"column:type;type:text"`
	Allergy         string   `gorm:"column:allergy;type:text"`
	Ingredients     string   `gorm:"column:ingredients;type:text"`
	TotalWeight     *float64 `gorm:"column:total_weight;type:numeric"`
	Energy          *float64 `gorm:"column:energy_kcal;type:numeric"`
	Proteins        *float64 `gorm:"column:proteins;type:numeric"`
	Carbohydrates   *float64 `gorm:"column:carbohydrates;type:numeric"`
	Fats            *float64 `gorm:"column:fats;type:numeric"`
	Fiber           *float64 `gorm:"column:fiber;type:numeric"`
	CarbonFootprint *float64 `gorm:"column:carbon_footprint;type:numeric"`
}

func (RawFood) TableName() string {
	return "foods"
}

// Features returns pointers to the feature attributes in FeatureNames order.
func (r *RawFood) Features() [NumFeatures]*float64 {
	return [NumFeatures]*float64{
		r.Energy,
		r.Proteins,
		r.Carbohydrates,
		r.Fats,
		r.Fiber,
		r.CarbonFootprint,
	}
}

// Float returns a pointer to v, or nil when v is NaN or infinite.
func Float(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
