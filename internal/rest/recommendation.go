package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"ecoEats/domain"
	"ecoEats/pkg/logger"
	"ecoEats/pkg/metrics"
	jsonres "ecoEats/pkg/response"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	Recommend(ctx context.Context, query string, opts domain.RecommendOptions) (*domain.RecommendationSet, error)
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
	Stats(ctx context.Context) (domain.DatasetSummary, error)
	Compare(ctx context.Context, names []string) (domain.Comparison, error)
}

// HandlerDefaults fills request fields the caller leaves out.
type HandlerDefaults struct {
	K                   int
	SimilarityThreshold float64
	SearchLimit         int
	Timeout             time.Duration
}

func DefaultHandlerDefaults() HandlerDefaults {
	return HandlerDefaults{
		K:                   domain.DefaultK,
		SimilarityThreshold: domain.DefaultSimilarityThreshold,
		SearchLimit:         domain.DefaultSearchLimit,
		Timeout:             10 * time.Second,
	}
}

type RecommendationHandler struct {
	service   RecommendationService
	validator *validator.Validate
	defaults  HandlerDefaults
}

func NewRecommendationHandler(service RecommendationService, defaults HandlerDefaults) *RecommendationHandler {
	fallback := DefaultHandlerDefaults()
	if defaults.K < 1 {
		defaults.K = fallback.K
	}
	if defaults.SearchLimit < 1 {
		defaults.SearchLimit = fallback.SearchLimit
	}
	if defaults.Timeout <= 0 {
		defaults.Timeout = fallback.Timeout
	}

	return &RecommendationHandler{
		service:   service,
		validator: newValidator(),
		defaults:  defaults,
	}
}

type RecommendRequest struct {
	DishName            string   `json:"dish_name" validate:"required"`
	K                   *int     `json:"k" validate:"omitempty,min=1"`
	SimilarityThreshold *float64 `json:"similarity_threshold"`
	SameCategory        *bool    `json:"same_category"`
}

type SearchQuery struct {
	Q     string `query:"q"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type CompareRequest struct {
	DishNames []string `json:"dish_names" validate:"required,min=1,max=10,dive,required"`
}

func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		metrics.RecommendRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return badRequest(c, bindMessage(err))
	}

	req.DishName = strings.TrimSpace(req.DishName)
	if err := h.validator.Struct(&req); err != nil {
		metrics.RecommendRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return badRequest(c, validationMessage(err))
	}

	opts := domain.RecommendOptions{
		K:                   h.defaults.K,
		SimilarityThreshold: h.defaults.SimilarityThreshold,
	}
	if req.K != nil {
		opts.K = *req.K
	}
	if req.SimilarityThreshold != nil {
		opts.SimilarityThreshold = *req.SimilarityThreshold
	}
	if req.SameCategory != nil {
		opts.SameCategory = *req.SameCategory
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.defaults.Timeout)
	defer cancel()

	start := time.Now()
	set, err := h.service.Recommend(ctx, req.DishName, opts)
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDishNotFound):
			metrics.RecommendRequests.WithLabelValues(metrics.OutcomeNotFound).Inc()
			return c.JSON(http.StatusOK, jsonres.Error(jsonres.CodeNotFound, err.Error(), nil))
		case errors.Is(err, domain.ErrInvalidOptions):
			metrics.RecommendRequests.WithLabelValues(metrics.OutcomeInvalid).Inc()
			return badRequest(c, err.Error())
		}
		metrics.RecommendRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return fmt.Errorf("recommend %q: %w", req.DishName, err)
	}

	metrics.RecommendCandidates.Observe(float64(set.TotalCandidates))
	if set.NoAlternatives() {
		metrics.RecommendRequests.WithLabelValues(metrics.OutcomeNoAlternatives).Inc()
	} else {
		metrics.RecommendRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	}

	return c.JSON(http.StatusOK, set)
}

func (h *RecommendationHandler) Search(c echo.Context) error {
	var q SearchQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, bindMessage(err))
	}

	q.Q = strings.TrimSpace(q.Q)
	if q.Q == "" {
		return badRequest(c, "Query parameter 'q' is required")
	}
	if err := h.validator.Struct(&q); err != nil {
		return badRequest(c, validationMessage(err))
	}
	if q.Limit == 0 {
		q.Limit = h.defaults.SearchLimit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.defaults.Timeout)
	defer cancel()

	metrics.SearchRequests.Inc()
	results, err := h.service.Search(ctx, q.Q, q.Limit)
	if err != nil {
		return fmt.Errorf("search %q: %w", q.Q, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"results": results,
	})
}

func (h *RecommendationHandler) Compare(c echo.Context) error {
	var req CompareRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, bindMessage(err))
	}

	for i := range req.DishNames {
		req.DishNames[i] = strings.TrimSpace(req.DishNames[i])
	}
	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.defaults.Timeout)
	defer cancel()

	comparison, err := h.service.Compare(ctx, req.DishNames)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	return c.JSON(http.StatusOK, comparison)
}

func (h *RecommendationHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.defaults.Timeout)
	defer cancel()

	summary, err := h.service.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	return c.JSON(http.StatusOK, summary)
}

func (h *RecommendationHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{
		"status":  "healthy",
		"message": "EcoEats API is running",
	}))
}

func badRequest(c echo.Context, message string) error {
	logger.Warn("Rejected request",
		"trace_id", logger.TraceIDFromContext(c.Request().Context()),
		"path", c.Path(),
		"reason", message,
	)
	return c.JSON(http.StatusBadRequest, jsonres.Error(jsonres.CodeBadRequest, message, nil))
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			return m
		}
	}
	return "invalid request body"
}

// newValidator reports fields by their wire names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fe := verrs[0]
	field := fe.Field()
	isList := fe.Kind() == reflect.Slice

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		if isList {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if isList {
			return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
