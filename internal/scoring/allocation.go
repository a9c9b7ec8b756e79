package scoring

import (
	"math"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

// BlockResult captures one block's contribution to the total score.
type BlockResult struct {
	Name         string  `json:"name"`
	Raw          float64 `json:"raw"`
	Weight       float64 `json:"weight"`
	Weighted     float64 `json:"weighted"`
	ShareOfScore float64 `json:"share_of_score"`
}

// CalculationResult is the complete, immutable output for one university.
type CalculationResult struct {
	UniversityID uuid.UUID `json:"university_id"`
	Name         string    `json:"name"`

	// Block 1
	PointsStudentsActivity   float64 `json:"points_students_activity"`
	PointsStudentsComplexity float64 `json:"points_students_complexity"`
	PointsGraduates          float64 `json:"points_graduates"`
	AdjustedStudents         float64 `json:"adjusted_students"`
	RequiredModulesProf      float64 `json:"required_modules_prof"`
	RequiredModulesAux       float64 `json:"required_modules_aux"`
	TotalRequiredModules     float64 `json:"total_required_modules"`
	Block1RawScore           float64 `json:"block1_raw_score"`
	Block1WeightedScore      float64 `json:"block1_weighted_score"`

	// Block 2
	PointsFaculty         float64 `json:"points_faculty"`
	PointsAdmissionCourse float64 `json:"points_admission_course"`
	PointsNonTeaching     float64 `json:"points_non_teaching"`
	PointsAuthorities     float64 `json:"points_authorities"`
	PointsInfra           float64 `json:"points_infra"`
	Block2RawScore        float64 `json:"block2_raw_score"`
	Block2WeightedScore   float64 `json:"block2_weighted_score"`

	// Block 3
	PointsResearch      float64 `json:"points_research"`
	Block3RawScore      float64 `json:"block3_raw_score"`
	Block3WeightedScore float64 `json:"block3_weighted_score"`

	TotalScore      float64 `json:"total_score"`
	SystemTotal     float64 `json:"system_total"`
	SharePercent    float64 `json:"share_percent"`
	EstimatedBudget float64 `json:"estimated_budget"`

	TotalHeadcount      int     `json:"total_headcount"`
	CostPerStudent      float64 `json:"cost_per_student"`
	FacultyCount        float64 `json:"faculty_count"`
	FacultyStudentRatio float64 `json:"faculty_student_ratio"`

	Blocks             []BlockResult   `json:"blocks"`
	Careers            []CareerLoad    `json:"careers"`
	ResearchCategories []CategoryScore `json:"research_categories"`
}

// Finite reports whether every derived monetary figure is a real number. A false result
// means the model is unconfigured (system total of zero) and must not be displayed as-is.
func (r CalculationResult) Finite() bool {
	for _, v := range []float64{r.TotalScore, r.SharePercent, r.EstimatedBudget, r.CostPerStudent, r.FacultyStudentRatio} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ComputeUniversityResult runs the full pipeline for one university. It is pure: the same
// inputs always produce the same result.
func ComputeUniversityResult(u store.University, w store.ModelWeights) CalculationResult {
	academic := ComputeAcademicBlock(u.Careers, u.TotalGraduates)
	normative := ComputeNormativeBlock(u, academic.TotalRequiredModules)
	research := ComputeResearchBlock(u.ResearchMatrix, u.Fellowships)

	headcount := 0
	for _, c := range u.Careers {
		headcount += c.Headcount()
	}

	r := Finalize(academic, normative, research, headcount, w)
	r.UniversityID = u.ID
	r.Name = u.Name
	return r
}

// Finalize weights the three blocks, computes the university's share of the system and
// converts it into a budget and per-student metrics.
func Finalize(academic AcademicBlock, normative NormativeBlock, research ResearchBlock, headcount int, w store.ModelWeights) CalculationResult {
	r := CalculationResult{
		PointsStudentsActivity:   academic.ActivityPoints,
		PointsStudentsComplexity: academic.ComplexityPoints,
		PointsGraduates:          academic.GraduatePoints,
		AdjustedStudents:         academic.AdjustedStudents,
		RequiredModulesProf:      academic.RequiredModulesProf,
		RequiredModulesAux:       academic.RequiredModulesAux,
		TotalRequiredModules:     academic.TotalRequiredModules,
		Block1RawScore:           academic.Raw,

		PointsFaculty:         normative.FacultyPoints,
		PointsAdmissionCourse: normative.AdmissionPoints,
		PointsNonTeaching:     normative.NonTeachingPoints,
		PointsAuthorities:     normative.AuthorityPoints,
		PointsInfra:           normative.InfraPoints,
		Block2RawScore:        normative.Raw,

		PointsResearch: research.Raw,
		Block3RawScore: research.Raw,

		Careers:            academic.Careers,
		ResearchCategories: research.Categories,
	}

	blocks := []BlockResult{
		{Name: "academic", Raw: academic.Raw, Weight: w.WeightEducation},
		{Name: "normative", Raw: normative.Raw, Weight: w.WeightNormative},
		{Name: "research", Raw: research.Raw, Weight: w.WeightResearch},
	}
	var total float64
	for i := range blocks {
		blocks[i].Weighted = blocks[i].Raw * blocks[i].Weight
		total += blocks[i].Weighted
	}
	if total != 0 {
		for i := range blocks {
			blocks[i].ShareOfScore = blocks[i].Weighted / total
		}
	}
	r.Blocks = blocks
	r.Block1WeightedScore = blocks[0].Weighted
	r.Block2WeightedScore = blocks[1].Weighted
	r.Block3WeightedScore = blocks[2].Weighted
	r.TotalScore = total

	r.SystemTotal = w.TotalSystemPoints + total
	r.SharePercent = total / r.SystemTotal * 100
	r.EstimatedBudget = r.SharePercent / 100 * w.TotalSystemBudget

	if headcount < 1 {
		headcount = 1
	}
	r.TotalHeadcount = headcount
	r.CostPerStudent = r.EstimatedBudget / float64(headcount)
	r.FacultyCount = normative.FacultyCount()
	r.FacultyStudentRatio = r.FacultyCount / float64(headcount)
	return r
}
