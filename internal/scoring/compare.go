package scoring

import (
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

// ComparisonRow is the summary of one university in a side-by-side comparison.
type ComparisonRow struct {
	UniversityID        uuid.UUID `json:"university_id"`
	Name                string    `json:"name"`
	EstimatedBudget     float64   `json:"estimated_budget"`
	TotalScore          float64   `json:"total_score"`
	Block1WeightedScore float64   `json:"block1_weighted_score"`
	Block2WeightedScore float64   `json:"block2_weighted_score"`
	Block3WeightedScore float64   `json:"block3_weighted_score"`
	SharePercent        float64   `json:"share_percent"`
	TotalHeadcount      int       `json:"total_headcount"`
	CostPerStudent      float64   `json:"cost_per_student"`
}

// RowOf extracts the comparison summary from a full result.
func RowOf(r CalculationResult) ComparisonRow {
	return ComparisonRow{
		UniversityID:        r.UniversityID,
		Name:                r.Name,
		EstimatedBudget:     r.EstimatedBudget,
		TotalScore:          r.TotalScore,
		Block1WeightedScore: r.Block1WeightedScore,
		Block2WeightedScore: r.Block2WeightedScore,
		Block3WeightedScore: r.Block3WeightedScore,
		SharePercent:        r.SharePercent,
		TotalHeadcount:      r.TotalHeadcount,
		CostPerStudent:      r.CostPerStudent,
	}
}

// Compare evaluates every university independently under the same weights. Rows keep the
// input order.
func Compare(universities []store.University, w store.ModelWeights) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(universities))
	for _, u := range universities {
		rows = append(rows, RowOf(ComputeUniversityResult(u, w)))
	}
	return rows
}
