package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values for RecommendRequests.
const (
	OutcomeOK             = "ok"
	OutcomeNoAlternatives = "no_alternatives"
	OutcomeNotFound       = "not_found"
	OutcomeInvalid        = "invalid"
	OutcomeError          = "error"
)

var (
	// Latency of the engine Recommend call
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ecoeats_recommend_latency_seconds",
		Help:    "Latency of recommendation computation",
		Buckets: prometheus.DefBuckets,
	})

	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecoeats_recommend_requests_total",
		Help: "Total number of recommend requests by outcome",
	}, []string{"outcome"})

	// Candidates passing the filters before the top-k cut
	RecommendCandidates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ecoeats_recommend_candidates",
		Help:    "Number of candidates passing the recommendation filters",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	SearchRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecoeats_search_requests_total",
		Help: "Total number of search requests",
	})

	DatasetItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ecoeats_dataset_items",
		Help: "Number of food items loaded at startup",
	})
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		RecommendLatency,
		RecommendRequests,
		RecommendCandidates,
		SearchRequests,
		DatasetItems,
	}
}

// Register adds the recommendation collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func Init() {
	prometheus.MustRegister(collectors()...)
}
