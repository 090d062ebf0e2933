package domain

// Recommendation defaults exposed by the API contract.
const (
	DefaultK                   = 5
	DefaultSimilarityThreshold = 0.6
	DefaultSearchLimit         = 10
)

type RecommendOptions struct {
	K                   int
	SimilarityThreshold float64
	SameCategory        bool
}

func DefaultRecommendOptions() RecommendOptions {
	return RecommendOptions{
		K:                   DefaultK,
		SimilarityThreshold: DefaultSimilarityThreshold,
		SameCategory:        false,
	}
}

type NutritionalProfile struct {
	EnergyKcal    int     `json:"energy_kcal"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
	Fiber         float64 `json:"fiber"`
}

type TargetProfile struct {
	TotalWeight int `json:"Total_weight"`
	NutritionalProfile
}

// NutritionalComparison holds candidate minus target differences.
type NutritionalComparison struct {
	EnergyDiff  float64 `json:"energy_diff"`
	ProteinDiff float64 `json:"protein_diff"`
	CarbDiff    float64 `json:"carb_diff"`
	FatDiff     float64 `json:"fat_diff"`
	FiberDiff   float64 `json:"fiber_diff"`
}

type NutritionalSummary struct {
	AvgEnergyDiff  float64 `json:"avg_energy_diff"`
	AvgProteinDiff float64 `json:"avg_protein_diff"`
	AvgCarbDiff    float64 `json:"avg_carb_diff"`
	AvgFatDiff     float64 `json:"avg_fat_diff"`
	AvgFiberDiff   float64 `json:"avg_fiber_diff"`
}

type Recommendation struct {
	Name                  string                `json:"name"`
	TotalWeight           float64               `json:"Total_weight"`
	Category              string                `json:"category"`
	Region                string                `json:"region"`
	Type                  string                `json:"type"`
	Allergy               string                `json:"allergy"`
	Ingredients           string                `json:"ingredients"`
	CarbonFootprint       float64               `json:"carbon_footprint"`
	CarbonReduction       float64               `json:"carbon_reduction"`
	CarbonReductionPct    float64               `json:"carbon_reduction_pct"`
	SimilarityScore       float64               `json:"similarity_score"`
	EcoScore              float64               `json:"eco_score"`
	NutritionalProfile    NutritionalProfile    `json:"nutritional_profile"`
	NutritionalComparison NutritionalComparison `json:"nutritional_comparison"`
}

// RecommendationSet is the result of a recommend call. An empty
// Recommendations list together with Message means no alternative passed
// the filters; that is a valid outcome, not an error.
type RecommendationSet struct {
	TargetDish         string              `json:"target_dish"`
	TargetProfile      TargetProfile       `json:"target_profile"`
	TargetCarbon       float64             `json:"target_carbon"`
	TargetCategory     string              `json:"target_category"`
	Recommendations    []Recommendation    `json:"recommendations"`
	TotalCandidates    int                 `json:"total_candidates"`
	AvgCarbonReduction float64             `json:"avg_carbon_reduction"`
	NutritionalSummary *NutritionalSummary `json:"nutritional_summary,omitempty"`
	Message            string              `json:"message,omitempty"`
}

// NoAlternatives reports whether the set carries no recommendation.
func (s *RecommendationSet) NoAlternatives() bool {
	return len(s.Recommendations) == 0
}

type SearchResult struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	CarbonFootprint float64 `json:"carbon_footprint"`
	EnergyKcal      int     `json:"energy_kcal"`
}

type CarbonRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type NutritionalStats struct {
	AvgEnergy        float64 `json:"avg_energy"`
	AvgProteins      float64 `json:"avg_proteins"`
	AvgCarbohydrates float64 `json:"avg_carbohydrates"`
	AvgFats          float64 `json:"avg_fats"`
	AvgFiber         float64 `json:"avg_fiber"`
}

type DatasetSummary struct {
	TotalDishes          int              `json:"total_dishes"`
	Categories           []string         `json:"categories"`
	AvgCarbonFootprint   float64          `json:"avg_carbon_footprint"`
	CarbonFootprintRange CarbonRange      `json:"carbon_footprint_range"`
	Regions              []string         `json:"regions"`
	Allergens            []string         `json:"allergens"`
	NutritionalStats     NutritionalStats `json:"nutritional_stats"`
}

type DishProfile struct {
	NutritionalProfile
	CarbonFootprint float64 `json:"carbon_footprint"`
	TotalWeightGms  float64 `json:"total_weight_gms"`
}

type DishComparison struct {
	Name               string      `json:"name"`
	Category           string      `json:"category"`
	Region             string      `json:"region"`
	Type               string      `json:"type"`
	Allergy            string      `json:"allergy"`
	NutritionalProfile DishProfile `json:"nutritional_profile"`
}

type Comparison struct {
	Comparison []DishComparison `json:"comparison"`
	NotFound   []string         `json:"not_found"`
}
