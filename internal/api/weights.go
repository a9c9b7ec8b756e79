package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Allocator/internal/hermes"
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

type WeightsHandler struct {
	store    store.Store
	hermes   hermes.Client
	defaults store.ModelWeights
	validate *validator.Validate
	logger   *slog.Logger
}

func NewWeightsHandler(s store.Store, h hermes.Client, defaults store.ModelWeights, v *validator.Validate, logger *slog.Logger) *WeightsHandler {
	return &WeightsHandler{store: s, hermes: h, defaults: defaults, validate: v, logger: logger}
}

type WeightsRequest struct {
	WeightEducation   float64 `json:"weight_education" validate:"gte=0,lte=1"`
	WeightNormative   float64 `json:"weight_normative" validate:"gte=0,lte=1"`
	WeightResearch    float64 `json:"weight_research" validate:"gte=0,lte=1"`
	TotalSystemBudget float64 `json:"total_system_budget" validate:"gte=0"`
	TotalSystemPoints float64 `json:"total_system_points" validate:"gte=0"`
}

func (h *WeightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	weights, err := store.ResolveWeights(r.Context(), h.store, h.defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, weights)
}

// Put replaces the model weights. Fields missing from the body keep their current value.
func (h *WeightsHandler) Put(w http.ResponseWriter, r *http.Request) {
	current, err := store.ResolveWeights(r.Context(), h.store, h.defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	req := WeightsRequest{
		WeightEducation:   current.WeightEducation,
		WeightNormative:   current.WeightNormative,
		WeightResearch:    current.WeightResearch,
		TotalSystemBudget: current.TotalSystemBudget,
		TotalSystemPoints: current.TotalSystemPoints,
	}
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	weights := store.ModelWeights{
		WeightEducation:   req.WeightEducation,
		WeightNormative:   req.WeightNormative,
		WeightResearch:    req.WeightResearch,
		TotalSystemBudget: req.TotalSystemBudget,
		TotalSystemPoints: req.TotalSystemPoints,
	}
	if err := weights.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.store.SaveWeights(r.Context(), &weights); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.hermes != nil {
		err := h.hermes.Publish(hermes.SubjectWeightsUpdated, hermes.WeightsUpdatedEvent{
			WeightEducation:   weights.WeightEducation,
			WeightNormative:   weights.WeightNormative,
			WeightResearch:    weights.WeightResearch,
			TotalSystemBudget: weights.TotalSystemBudget,
			TotalSystemPoints: weights.TotalSystemPoints,
			Timestamp:         time.Now().UTC(),
		})
		if err != nil {
			h.logger.Error("failed to publish weights event", "subject", hermes.SubjectWeightsUpdated, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, weights)
}
