package recommender

type Config struct {
	// eco_score = SimilarityWeight*similarity + CarbonWeight*(reduction/target carbon)
	SimilarityWeight float64
	CarbonWeight     float64

	// how many distinct regions/allergens Stats previews
	PreviewLimit int

	// search cap applied when the caller passes a non-positive limit
	SearchLimit int
}

const (
	defaultSimilarityWeight = 0.7
	defaultCarbonWeight     = 0.3
	defaultPreviewLimit     = 10
	defaultSearchLimit      = 10
)

func DefaultConfig() Config {
	return Config{
		SimilarityWeight: defaultSimilarityWeight,
		CarbonWeight:     defaultCarbonWeight,
		PreviewLimit:     defaultPreviewLimit,
		SearchLimit:      defaultSearchLimit,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SimilarityWeight == 0 && c.CarbonWeight == 0 {
		c.SimilarityWeight = d.SimilarityWeight
		c.CarbonWeight = d.CarbonWeight
	}
	if c.PreviewLimit <= 0 {
		c.PreviewLimit = d.PreviewLimit
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = d.SearchLimit
	}
	return c
}
