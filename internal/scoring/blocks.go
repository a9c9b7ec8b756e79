package scoring

import (
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

// AcademicBlock is Block 1: student activity, complexity and graduates.
type AcademicBlock struct {
	ActivityPoints       float64      `json:"activity_points"`
	ComplexityPoints     float64      `json:"complexity_points"`
	GraduatePoints       float64      `json:"graduate_points"`
	AdjustedStudents     float64      `json:"adjusted_students"`
	RequiredModulesProf  float64      `json:"required_modules_prof"`
	RequiredModulesAux   float64      `json:"required_modules_aux"`
	TotalRequiredModules float64      `json:"total_required_modules"`
	Raw                  float64      `json:"raw"`
	Careers              []CareerLoad `json:"careers"`
}

// ComputeAcademicBlock runs the career estimator over every career and sums the results.
// TotalRequiredModules does not score here; it feeds the normative block.
func ComputeAcademicBlock(careers []store.Career, totalGraduates int) AcademicBlock {
	b := AcademicBlock{Careers: make([]CareerLoad, 0, len(careers))}
	for _, c := range careers {
		load := ComputeCareerLoad(c)
		b.ActivityPoints += load.ActivityPoints
		b.ComplexityPoints += load.ComplexityPoints
		b.AdjustedStudents += load.AdjustedStudents
		b.RequiredModulesProf += load.RequiredModulesProf
		b.RequiredModulesAux += load.RequiredModulesAux
		b.Careers = append(b.Careers, load)
	}
	b.TotalRequiredModules = b.RequiredModulesProf + b.RequiredModulesAux
	b.GraduatePoints = float64(totalGraduates) * GraduatePoints
	b.Raw = b.ActivityPoints + b.ComplexityPoints + b.GraduatePoints
	return b
}

// NormativeBlock is Block 2: the staffing and structure a university needs to sustain its
// academic activity.
type NormativeBlock struct {
	ExclusiveModules  float64 `json:"exclusive_modules"`
	SemiModules       float64 `json:"semi_modules"`
	SimpleModules     float64 `json:"simple_modules"`
	FacultyPoints     float64 `json:"faculty_points"`
	AdmissionPoints   float64 `json:"admission_points"`
	AuthorityPoints   float64 `json:"authority_points"`
	NonTeachingPoints float64 `json:"non_teaching_points"`
	InfraPoints       float64 `json:"infra_points"`
	Subtotal          float64 `json:"subtotal"`
	Raw               float64 `json:"raw"`
}

// FacultyCount is the fractional, module-derived faculty headcount across all dedications.
func (b NormativeBlock) FacultyCount() float64 {
	return b.ExclusiveModules + b.SemiModules + b.SimpleModules
}

// ComputeNormativeBlock converts the required modules into positions using the university's
// faculty split and adds authorities, admission courses, non-teaching staff and infrastructure.
// The economies-of-scale factor multiplies the whole subtotal once.
func ComputeNormativeBlock(u store.University, totalRequiredModules float64) NormativeBlock {
	var b NormativeBlock
	d := u.FacultyDistribution
	b.ExclusiveModules = totalRequiredModules * (d.ExclusivePercent / 100)
	b.SemiModules = totalRequiredModules * (d.SemiExclusivePercent / 100)
	b.SimpleModules = totalRequiredModules * (d.SimplePercent / 100)
	b.FacultyPoints = b.ExclusiveModules*ExclusivePoints + b.SemiModules*SemiExclusivePoints + b.SimpleModules*SimplePoints

	b.AdmissionPoints = float64(u.AdmissionCourseStudents) / AdmissionStudentsPerModule * AdmissionModulePoints
	b.AuthorityPoints = float64(u.AuthoritiesRectors)*RectorPoints +
		float64(u.AuthoritiesDeans)*DeanPoints +
		float64(u.AuthoritiesSecretaries)*SecretaryPoints
	b.NonTeachingPoints = float64(u.NonTeachingCategoryA)*NonTeachingCategoryAPoints +
		float64(u.NonTeachingCategoryB)*NonTeachingCategoryBPoints

	greenAgents := u.GreenSpaceSqm / GreenSqmPerAgent
	b.InfraPoints = u.InfrastructureSqm*BuiltSqmPoints*u.RegionalCostFactor + greenAgents*GreenSpaceAgentPoint

	b.Subtotal = b.AuthorityPoints + b.FacultyPoints + b.AdmissionPoints + b.NonTeachingPoints + b.InfraPoints
	b.Raw = b.Subtotal * u.EconomiesOfScale
	return b
}

// CategoryScore is one research category's weighted headcount.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// ResearchBlock is Block 3: categorized researchers and fellowships.
type ResearchBlock struct {
	Categories       []CategoryScore `json:"categories"`
	FellowshipPoints float64         `json:"fellowship_points"`
	Raw              float64         `json:"raw"`
}

// ComputeResearchBlock sums the weighted research matrix and the fellowship points.
func ComputeResearchBlock(m store.ResearchMatrix, fellowships int) ResearchBlock {
	rows := []struct {
		name string
		row  store.ResearchRow
		w    ResearchWeight
	}{
		{"cat1", m.Cat1, researchWeightsCat1},
		{"cat2", m.Cat2, researchWeightsCat2},
		{"cat34", m.Cat34, researchWeightsCat34},
		{"cat5", m.Cat5, researchWeightsCat5},
	}

	b := ResearchBlock{Categories: make([]CategoryScore, 0, len(rows))}
	for _, r := range rows {
		score := float64(r.row.Exclusive)*r.w.Exclusive +
			float64(r.row.SemiExclusive)*r.w.SemiExclusive +
			float64(r.row.Simple)*r.w.Simple
		b.Categories = append(b.Categories, CategoryScore{Category: r.name, Score: score})
		b.Raw += score
	}
	b.FellowshipPoints = float64(fellowships) * FellowshipPoints
	b.Raw += b.FellowshipPoints
	return b
}
