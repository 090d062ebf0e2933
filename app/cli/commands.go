package main

import (
	"errors"
	"fmt"
	"io"

	"ecoEats/business/recommender"
	"ecoEats/domain"
	"ecoEats/internal/bootstrap"
	"ecoEats/pkg/config"
	"ecoEats/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type app struct {
	datasetPath string
	source      string
	engine      *recommender.Engine
	cfg         *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ecoeats",
		Short:         "Find lower-carbon alternatives to dishes",
		Long:          `Query the EcoEats food dataset from the command line: recommend lower-carbon dishes, search by name, compare dishes and summarize the dataset.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.datasetPath, "dataset", "", "path to the dataset CSV (overrides DATASET_PATH)")
	root.PersistentFlags().StringVar(&a.source, "source", "", "dataset source: csv or postgres (overrides DATASET_SOURCE)")

	root.AddCommand(a.recommendCmd())
	root.AddCommand(a.searchCmd())
	root.AddCommand(a.compareCmd())
	root.AddCommand(a.statsCmd())

	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.datasetPath != "" {
		cfg.Dataset.Path = a.datasetPath
	}
	if a.source != "" {
		cfg.Dataset.SetSource(a.source)
	}
	if err := cfg.Dataset.Validate(cfg.Database); err != nil {
		return fmt.Errorf("invalid dataset flags: %w", err)
	}

	// keep stdout clean for JSON output
	logger.Init("test")

	engine, err := bootstrap.NewEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.engine = engine
	return nil
}

func (a *app) recommendCmd() *cobra.Command {
	var (
		k            int
		threshold    float64
		sameCategory bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <dish>",
		Short: "Recommend lower-carbon alternatives to a dish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := domain.RecommendOptions{
				K:                   a.cfg.Recommender.DefaultK,
				SimilarityThreshold: a.cfg.Recommender.DefaultThreshold,
				SameCategory:        sameCategory,
			}
			if cmd.Flags().Changed("k") {
				opts.K = k
			}
			if cmd.Flags().Changed("threshold") {
				opts.SimilarityThreshold = threshold
			}

			set, err := a.engine.Recommend(cmd.Context(), args[0], opts)
			if errors.Is(err, domain.ErrDishNotFound) {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"error": err.Error()})
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), set)
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", domain.DefaultK, "maximum number of recommendations")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", domain.DefaultSimilarityThreshold, "minimum cosine similarity, exclusive")
	cmd.Flags().BoolVar(&sameCategory, "same-category", false, "only recommend dishes from the same category")

	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search dishes by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.engine.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{"results": results})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default from SEARCH_LIMIT)")

	return cmd
}

func (a *app) compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <dish> [dish...]",
		Short: "Compare the nutrition and carbon footprint of dishes",
		Args:  cobra.RangeArgs(1, 10),
		RunE: func(cmd *cobra.Command, args []string) error {
			comparison, err := a.engine.Compare(cmd.Context(), args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), comparison)
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := a.engine.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
