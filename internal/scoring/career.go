package scoring

import (
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

// YearLoad is the per-year detail of a career's teaching load. Module figures are full-load,
// before the utilization factor is applied.
type YearLoad struct {
	Year        int     `json:"year"`
	Students    int     `json:"students"`
	ModulesProf float64 `json:"modules_prof"`
	ModulesAux  float64 `json:"modules_aux"`
}

// CareerLoad captures the estimator output for a single career.
type CareerLoad struct {
	CareerID   uuid.UUID        `json:"career_id"`
	Name       string           `json:"name"`
	Discipline store.Discipline `json:"discipline"`

	AdjustedStudents    float64 `json:"adjusted_students"`
	UtilizationFactor   float64 `json:"utilization_factor"`
	DisciplineWeight    float64 `json:"discipline_weight"`
	ActivityPoints      float64 `json:"activity_points"`
	ComplexityPoints    float64 `json:"complexity_points"`
	RequiredModulesProf float64 `json:"required_modules_prof"`
	RequiredModulesAux  float64 `json:"required_modules_aux"`

	YearPercentages      []float64  `json:"year_percentages"`
	PerYearStudentCounts []int      `json:"per_year_student_counts"`
	Years                []YearLoad `json:"years"`
}

// RequiredModules is the sum of professor and assistant modules.
func (l CareerLoad) RequiredModules() float64 {
	return l.RequiredModulesProf + l.RequiredModulesAux
}

// ComputeCareerLoad converts one career's enrollment and curriculum into activity and
// complexity points and the teaching modules it requires.
func ComputeCareerLoad(c store.Career) CareerLoad {
	load := CareerLoad{
		CareerID:   c.ID,
		Name:       c.Name,
		Discipline: c.Discipline,
	}

	retained := float64(c.FreshmanCount) * c.RetentionRate
	reenrolled := float64(c.ReenrolledCount)
	adjusted := retained + reenrolled
	load.AdjustedStudents = adjusted

	if c.SubjectsInPlan > 0 {
		load.UtilizationFactor = c.AverageSubjectsPassed / float64(c.SubjectsInPlan)
	}
	load.DisciplineWeight = DisciplineWeight(c.Discipline)
	load.ActivityPoints = adjusted * load.UtilizationFactor
	load.ComplexityPoints = adjusted * load.DisciplineWeight

	curve := CurveFor(c.Type)
	load.YearPercentages = make([]float64, store.PlanYears)
	if adjusted > 0 {
		for y := 0; y < store.PlanYears; y++ {
			load.YearPercentages[y] = (retained*curve.New[y] + reenrolled*curve.Reenrolled[y]) / adjusted
		}
	}
	load.PerYearStudentCounts = Distribute(adjusted, load.YearPercentages)

	var totalProf, totalAux float64
	load.Years = make([]YearLoad, 0, len(c.YearlyMatrix))
	for idx, row := range c.YearlyMatrix {
		yl := YearLoad{Year: idx + 1}
		if idx < len(load.PerYearStudentCounts) {
			yl.Students = load.PerYearStudentCounts[idx]
		}
		students := float64(yl.Students)

		for _, t := range store.SubjectTypes {
			count := row.Count(t)
			if count <= 0 {
				continue
			}
			ratio, ok := RatioOf(t)
			if !ok {
				continue
			}
			yl.ModulesProf += students / ratio.Prof * float64(count)
			yl.ModulesAux += students / ratio.Aux * float64(count)
		}

		totalProf += yl.ModulesProf
		totalAux += yl.ModulesAux
		load.Years = append(load.Years, yl)
	}

	load.RequiredModulesProf = totalProf * load.UtilizationFactor
	load.RequiredModulesAux = totalAux * load.UtilizationFactor
	return load
}
