package scoring

import (
	"math"
	"testing"

	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func sampleCareer() store.Career {
	c := NewCareer("Sociología")
	c.FreshmanCount = 100
	c.RetentionRate = 0.8
	c.ReenrolledCount = 300
	c.AverageSubjectsPassed = 3
	c.YearlyMatrix = []store.YearDetail{
		{Year: 1, D: 5},
		{Year: 2, D: 5},
		{Year: 3, D: 5},
		{Year: 4, D: 5},
		{Year: 5, D: 5},
	}
	c.RecountSubjects()
	return c
}

func TestComputeCareerLoadAdjustedAndUtilization(t *testing.T) {
	c := sampleCareer()
	if c.SubjectsInPlan != 25 {
		t.Fatalf("subjects in plan = %d, want 25", c.SubjectsInPlan)
	}

	load := ComputeCareerLoad(c)
	if !approx(load.AdjustedStudents, 380) {
		t.Errorf("adjusted students = %f, want 380", load.AdjustedStudents)
	}
	if !approx(load.UtilizationFactor, 0.12) {
		t.Errorf("utilization = %f, want 0.12", load.UtilizationFactor)
	}
	if !approx(load.ActivityPoints, 380*0.12) {
		t.Errorf("activity = %f, want %f", load.ActivityPoints, 380*0.12)
	}
	if !approx(load.ComplexityPoints, 380*1.2551) {
		t.Errorf("complexity = %f, want %f", load.ComplexityPoints, 380*1.2551)
	}
}

func TestComputeCareerLoadYearDistribution(t *testing.T) {
	load := ComputeCareerLoad(sampleCareer())

	// 80 retained freshmen all in year 1; 300 reenrolled spread 5/35/25/20/15 percent.
	want := []int{95, 105, 75, 60, 45}
	if sumInts(load.PerYearStudentCounts) != 380 {
		t.Fatalf("per-year counts %v do not sum to 380", load.PerYearStudentCounts)
	}
	for i, w := range want {
		if load.PerYearStudentCounts[i] != w {
			t.Errorf("year %d: got %d, want %d", i+1, load.PerYearStudentCounts[i], w)
		}
	}

	var pct float64
	for _, p := range load.YearPercentages {
		pct += p
	}
	if !approx(pct, 1) {
		t.Errorf("year percentages sum to %f", pct)
	}
}

func TestComputeCareerLoadModules(t *testing.T) {
	load := ComputeCareerLoad(sampleCareer())

	// Only type D subjects (ratios 120/60), 5 per year, 380 students in total.
	wantProf := 380.0 / 120 * 5 * 0.12
	wantAux := 380.0 / 60 * 5 * 0.12
	if !approx(load.RequiredModulesProf, wantProf) {
		t.Errorf("prof modules = %f, want %f", load.RequiredModulesProf, wantProf)
	}
	if !approx(load.RequiredModulesAux, wantAux) {
		t.Errorf("aux modules = %f, want %f", load.RequiredModulesAux, wantAux)
	}
	if !approx(load.RequiredModules(), wantProf+wantAux) {
		t.Errorf("required modules = %f", load.RequiredModules())
	}
	if len(load.Years) != 5 {
		t.Fatalf("expected 5 year rows, got %d", len(load.Years))
	}
	if !approx(load.Years[0].ModulesProf, 95.0/120*5) {
		t.Errorf("year 1 prof modules before utilization = %f", load.Years[0].ModulesProf)
	}
}

func TestComputeCareerLoadZeroEnrollment(t *testing.T) {
	c := sampleCareer()
	c.FreshmanCount = 0
	c.ReenrolledCount = 0

	load := ComputeCareerLoad(c)
	if load.AdjustedStudents != 0 || load.ActivityPoints != 0 || load.ComplexityPoints != 0 {
		t.Errorf("expected zero points, got %+v", load)
	}
	if load.RequiredModulesProf != 0 || load.RequiredModulesAux != 0 {
		t.Errorf("expected zero modules, got %f/%f", load.RequiredModulesProf, load.RequiredModulesAux)
	}
	for i, p := range load.YearPercentages {
		if p != 0 || math.IsNaN(p) {
			t.Errorf("year %d percentage = %f, want 0", i+1, p)
		}
	}
	if sumInts(load.PerYearStudentCounts) != 0 {
		t.Errorf("expected no students, got %v", load.PerYearStudentCounts)
	}
}

func TestComputeCareerLoadEmptyPlan(t *testing.T) {
	c := sampleCareer()
	c.YearlyMatrix = make([]store.YearDetail, store.PlanYears)
	c.RecountSubjects()

	load := ComputeCareerLoad(c)
	if load.UtilizationFactor != 0 || load.ActivityPoints != 0 {
		t.Errorf("expected zero utilization, got %f", load.UtilizationFactor)
	}
	if load.RequiredModules() != 0 {
		t.Errorf("expected zero modules, got %f", load.RequiredModules())
	}
	if load.ComplexityPoints == 0 {
		t.Error("complexity should not depend on the plan")
	}
}

func TestComputeCareerLoadFallbacks(t *testing.T) {
	c := sampleCareer()
	c.Discipline = store.Discipline("astrology")
	c.Type = store.CareerTypeArticulated

	load := ComputeCareerLoad(c)
	if load.DisciplineWeight != DefaultDisciplineWeight {
		t.Errorf("unknown discipline weight = %f", load.DisciplineWeight)
	}
	long := ComputeCareerLoad(sampleCareer())
	for i := range long.PerYearStudentCounts {
		if long.PerYearStudentCounts[i] != load.PerYearStudentCounts[i] {
			t.Fatalf("articulated counts %v, long counts %v", load.PerYearStudentCounts, long.PerYearStudentCounts)
		}
	}
}

func TestComputeCareerLoadShortCurve(t *testing.T) {
	c := sampleCareer()
	c.Type = store.CareerTypeShort

	load := ComputeCareerLoad(c)
	// 80 freshmen in year 1, 300 reenrolled as 0/0/10/55/35 percent.
	want := []int{80, 0, 30, 165, 105}
	for i, w := range want {
		if load.PerYearStudentCounts[i] != w {
			t.Errorf("year %d: got %d, want %d", i+1, load.PerYearStudentCounts[i], w)
		}
	}
}
