package scoring

import (
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

// Scorer runs the allocation model for the service layers and logs every evaluation.
// The computation itself is pure; Scorer only adds observability.
type Scorer struct {
	logger  *slog.Logger
	observe func(CalculationResult, time.Duration)
}

// NewScorer creates a Scorer. observe may be nil.
func NewScorer(logger *slog.Logger, observe func(CalculationResult, time.Duration)) *Scorer {
	return &Scorer{logger: logger, observe: observe}
}

// Score computes the full result for one university.
func (s *Scorer) Score(u store.University, w store.ModelWeights) CalculationResult {
	start := time.Now()
	r := ComputeUniversityResult(u, w)
	elapsed := time.Since(start)

	if !r.Finite() {
		s.logger.Warn("non-finite allocation result",
			"university_id", u.ID,
			"system_total", r.SystemTotal,
			"total_score", r.TotalScore)
	} else {
		s.logger.Debug("allocation computed",
			"university_id", u.ID,
			"careers", len(u.Careers),
			"total_score", r.TotalScore,
			"share_percent", r.SharePercent,
			"estimated_budget", r.EstimatedBudget)
	}
	if s.observe != nil {
		s.observe(r, elapsed)
	}
	return r
}

// Compare scores every university and returns one summary row per input, in order.
func (s *Scorer) Compare(universities []store.University, w store.ModelWeights) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(universities))
	for _, u := range universities {
		rows = append(rows, RowOf(s.Score(u, w)))
	}
	return rows
}
