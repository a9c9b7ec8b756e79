package store

import (
	"context"
	"fmt"
	"math"
	"time"
)

// ModelWeights is the process-wide funding model configuration.
// Block weights must sum to 1.0 (±0.001 tolerance).
type ModelWeights struct {
	WeightEducation   float64   `json:"weight_education" yaml:"weight_education"`
	WeightNormative   float64   `json:"weight_normative" yaml:"weight_normative"`
	WeightResearch    float64   `json:"weight_research" yaml:"weight_research"`
	TotalSystemBudget float64   `json:"total_system_budget" yaml:"total_system_budget"`
	TotalSystemPoints float64   `json:"total_system_points" yaml:"total_system_points"`
	UpdatedAt         time.Time `json:"updated_at" yaml:"-"`
}

// DefaultModelWeights returns the 45/50/5 split with the reference budget pool.
func DefaultModelWeights() ModelWeights {
	return ModelWeights{
		WeightEducation:   0.45,
		WeightNormative:   0.50,
		WeightResearch:    0.05,
		TotalSystemBudget: 50_000_000_000,
		TotalSystemPoints: 1_500_000,
	}
}

// Sum returns the total of the three block weights.
func (w ModelWeights) Sum() float64 {
	return w.WeightEducation + w.WeightNormative + w.WeightResearch
}

// Validate checks that block weights sum to 1.0 and nothing is negative.
func (w ModelWeights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("block weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.WeightEducation, w.WeightNormative, w.WeightResearch} {
		if v < 0 {
			return fmt.Errorf("negative block weight: %f", v)
		}
	}
	if w.TotalSystemBudget < 0 {
		return fmt.Errorf("negative system budget: %f", w.TotalSystemBudget)
	}
	if w.TotalSystemPoints < 0 {
		return fmt.Errorf("negative system points: %f", w.TotalSystemPoints)
	}
	return nil
}

// ResolveWeights returns the saved weights, or fallback when none have been saved yet.
func ResolveWeights(ctx context.Context, s Store, fallback ModelWeights) (ModelWeights, error) {
	w, err := s.GetWeights(ctx)
	if err != nil {
		return ModelWeights{}, fmt.Errorf("get weights: %w", err)
	}
	if w == nil {
		return fallback, nil
	}
	return *w, nil
}
