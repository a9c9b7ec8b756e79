package scoring

import (
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

// Fixed coefficients of the funding formula.
const (
	GraduatePoints = 5.0

	ExclusivePoints     = 4.0
	SemiExclusivePoints = 2.0
	SimplePoints        = 1.0

	AdmissionStudentsPerModule = 40.0
	AdmissionModulePoints      = 1.0

	RectorPoints    = 10.0
	DeanPoints      = 8.0
	SecretaryPoints = 6.0

	NonTeachingCategoryAPoints = 2.5
	NonTeachingCategoryBPoints = 1.5

	BuiltSqmPoints       = 0.05
	GreenSqmPerAgent     = 30000.0
	GreenSpaceAgentPoint = 1.5

	FellowshipPoints = 0.25

	// DefaultDisciplineWeight applies to disciplines missing from the weight table.
	DefaultDisciplineWeight = 1.0
)

// SubjectRatio is the number of students one professor (or assistant) can serve
// for a subject of a given type.
type SubjectRatio struct {
	Prof float64 `json:"prof"`
	Aux  float64 `json:"aux"`
}

var subjectRatios = map[store.SubjectType]SubjectRatio{
	store.SubjectTypeA: {Prof: 30, Aux: 15},
	store.SubjectTypeB: {Prof: 60, Aux: 25},
	store.SubjectTypeC: {Prof: 90, Aux: 35},
	store.SubjectTypeD: {Prof: 120, Aux: 60},
}

// RatioOf returns the staffing ratio for a subject type. ok is false for unknown types.
func RatioOf(t store.SubjectType) (SubjectRatio, bool) {
	r, ok := subjectRatios[t]
	return r, ok
}

var disciplineWeights = map[store.Discipline]float64{
	store.DisciplineMedicine:       2.7202,
	store.DisciplineVeterinary:     2.4042,
	store.DisciplineDentistry:      2.3223,
	store.DisciplineAgronomy:       2.0438,
	store.DisciplinePharmacy:       1.9490,
	store.DisciplineEngineering:    1.9236,
	store.DisciplineArchitecture:   1.7518,
	store.DisciplineExactSciences:  1.6263,
	store.DisciplineArts:           1.4921,
	store.DisciplinePsychology:     1.3285,
	store.DisciplineSocialSciences: 1.2551,
	store.DisciplineEconomics:      1.1937,
	store.DisciplineHumanities:     1.0137,
	store.DisciplineLaw:            1.0000,
	store.DisciplineTertiary:       0.9000,
	store.DisciplineOthers:         0.8000,
}

// DisciplineWeight returns the complexity weight of a discipline, or DefaultDisciplineWeight
// when the discipline is not in the table.
func DisciplineWeight(d store.Discipline) float64 {
	if w, ok := disciplineWeights[d]; ok {
		return w
	}
	return DefaultDisciplineWeight
}

// DistributionCurve splits new and reenrolled students across the plan years.
type DistributionCurve struct {
	New        [store.PlanYears]float64 `json:"new"`
	Reenrolled [store.PlanYears]float64 `json:"reenrolled"`
}

var distributionCurves = map[store.CareerType]DistributionCurve{
	store.CareerTypeLong: {
		New:        [store.PlanYears]float64{1.0, 0, 0, 0, 0},
		Reenrolled: [store.PlanYears]float64{0.05, 0.35, 0.25, 0.20, 0.15},
	},
	store.CareerTypeShort: {
		New:        [store.PlanYears]float64{1.0, 0, 0, 0, 0},
		Reenrolled: [store.PlanYears]float64{0, 0, 0.10, 0.55, 0.35},
	},
}

// CurveFor returns the distribution curve of a career type. Types without a curve of their
// own (articulated programs, unknown values) use the long-program curve.
func CurveFor(t store.CareerType) DistributionCurve {
	if c, ok := distributionCurves[t]; ok {
		return c
	}
	return distributionCurves[store.CareerTypeLong]
}

type matrix [store.PlanYears]store.YearDetail

func yearly(rows ...[4]int) matrix {
	var out matrix
	for i, r := range rows {
		out[i] = store.YearDetail{Year: i + 1, A: r[0], B: r[1], C: r[2], D: r[3]}
	}
	return out
}

// Standard subject distribution per discipline, year by year, as {A, B, C, D}.
var standardMatrices = map[store.Discipline]matrix{
	store.DisciplineAgronomy:       yearly([4]int{0, 4, 2, 2}, [4]int{1, 4, 2, 1}, [4]int{1, 5, 3, 0}, [4]int{2, 4, 3, 1}, [4]int{3, 4, 1, 0}),
	store.DisciplineEngineering:    yearly([4]int{0, 2, 4, 2}, [4]int{0, 3, 4, 1}, [4]int{0, 5, 3, 0}, [4]int{0, 5, 4, 0}, [4]int{1, 6, 2, 0}),
	store.DisciplineMedicine:       yearly([4]int{1, 2, 3, 1}, [4]int{1, 3, 2, 1}, [4]int{3, 4, 0, 0}, [4]int{5, 0, 1, 1}, [4]int{6, 0, 1, 0}),
	store.DisciplineEconomics:      yearly([4]int{0, 1, 3, 2}, [4]int{0, 0, 3, 3}, [4]int{0, 2, 4, 1}, [4]int{0, 2, 4, 1}, [4]int{3, 1, 2, 1}),
	store.DisciplineArchitecture:   yearly([4]int{0, 4, 2, 1}, [4]int{0, 4, 2, 1}, [4]int{0, 4, 2, 1}, [4]int{0, 4, 2, 1}, [4]int{0, 4, 2, 1}),
	store.DisciplineSocialSciences: yearly([4]int{0, 0, 2, 5}, [4]int{0, 1, 2, 4}, [4]int{1, 1, 2, 4}, [4]int{1, 2, 2, 3}, [4]int{4, 1, 1, 2}),
	store.DisciplineVeterinary:     yearly([4]int{1, 3, 4, 2}, [4]int{1, 3, 3, 3}, [4]int{2, 3, 3, 2}, [4]int{2, 4, 4, 1}, [4]int{4, 4, 2, 1}),
	store.DisciplineLaw:            yearly([4]int{0, 0, 3, 3}, [4]int{0, 0, 4, 3}, [4]int{0, 0, 4, 3}, [4]int{0, 0, 4, 3}, [4]int{0, 0, 5, 3}),
	store.DisciplineDentistry:      yearly([4]int{5, 0, 0, 3}, [4]int{6, 0, 0, 2}, [4]int{8, 0, 0, 1}, [4]int{8, 0, 0, 1}, [4]int{2, 0, 0, 7}),
	store.DisciplinePharmacy:       yearly([4]int{0, 4, 4, 0}, [4]int{0, 5, 3, 0}, [4]int{0, 8, 0, 0}, [4]int{0, 8, 0, 0}, [4]int{3, 4, 2, 0}),
	store.DisciplineExactSciences:  yearly([4]int{0, 1, 4, 1}, [4]int{0, 2, 3, 1}, [4]int{1, 3, 3, 0}, [4]int{1, 3, 2, 1}, [4]int{1, 2, 2, 2}),
	store.DisciplineArts:           yearly([4]int{0, 2, 3, 2}, [4]int{0, 4, 2, 1}, [4]int{0, 4, 2, 1}, [4]int{1, 4, 1, 2}, [4]int{0, 5, 2, 1}),
	store.DisciplinePsychology:     yearly([4]int{0, 0, 1, 1}, [4]int{1, 1, 4, 1}, [4]int{1, 1, 4, 1}, [4]int{2, 2, 2, 1}, [4]int{3, 1, 2, 2}),
	store.DisciplineHumanities:     yearly([4]int{0, 1, 1, 4}, [4]int{0, 1, 2, 3}, [4]int{0, 2, 1, 3}, [4]int{1, 0, 2, 3}, [4]int{1, 0, 2, 3}),
	store.DisciplineTertiary:       yearly([4]int{0, 2, 2, 2}, [4]int{0, 2, 2, 2}, [4]int{0, 2, 2, 2}, [4]int{0, 0, 0, 0}, [4]int{0, 0, 0, 0}),
	store.DisciplineOthers:         yearly([4]int{0, 0, 0, 5}, [4]int{0, 0, 0, 5}, [4]int{0, 0, 0, 5}, [4]int{0, 0, 0, 5}, [4]int{0, 0, 0, 5}),
}

// StandardMatrix returns a fresh copy of the discipline's standard curriculum matrix.
// Unknown disciplines get the matrix of DisciplineOthers.
func StandardMatrix(d store.Discipline) []store.YearDetail {
	tpl, ok := standardMatrices[d]
	if !ok {
		tpl = standardMatrices[store.DisciplineOthers]
	}
	out := make([]store.YearDetail, len(tpl))
	copy(out, tpl[:])
	return out
}

// ResearchWeight is the point value of one researcher by dedication.
type ResearchWeight struct {
	Exclusive     float64 `json:"exclusive"`
	SemiExclusive float64 `json:"semi_exclusive"`
	Simple        float64 `json:"simple"`
}

var (
	researchWeightsCat1  = ResearchWeight{Exclusive: 1.50, SemiExclusive: 0.60, Simple: 0.250}
	researchWeightsCat2  = ResearchWeight{Exclusive: 1.00, SemiExclusive: 0.40, Simple: 0.165}
	researchWeightsCat34 = ResearchWeight{Exclusive: 0.60, SemiExclusive: 0.24, Simple: 0.100}
	researchWeightsCat5  = ResearchWeight{Exclusive: 0.40, SemiExclusive: 0.16, Simple: 0.065}
)

// ResearchWeights returns the per-category weight triples keyed by category name.
func ResearchWeights() map[string]ResearchWeight {
	return map[string]ResearchWeight{
		"cat1":  researchWeightsCat1,
		"cat2":  researchWeightsCat2,
		"cat34": researchWeightsCat34,
		"cat5":  researchWeightsCat5,
	}
}
