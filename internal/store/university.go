package store

import (
	"fmt"

	"github.com/google/uuid"
)

// PlanYears is the number of rows in a curriculum matrix.
const PlanYears = 5

// NewUniversity returns a university with neutral cost factors, a 20/30/50 faculty split
// and two rectors. Everything else starts at zero.
func NewUniversity(name string) University {
	return University{
		ID:                 uuid.New(),
		Name:               name,
		RegionalCostFactor: 1.0,
		EconomiesOfScale:   1.0,
		Careers:            []Career{},
		FacultyDistribution: FacultyDistribution{
			ExclusivePercent:     20,
			SemiExclusivePercent: 30,
			SimplePercent:        50,
		},
		AuthoritiesRectors: 2,
	}
}

// Clone returns a deep copy, so the caller can mutate careers and matrices freely.
func (u University) Clone() University {
	out := u
	if u.Careers != nil {
		out.Careers = make([]Career, len(u.Careers))
		for i, c := range u.Careers {
			out.Careers[i] = c.Clone()
		}
	}
	return out
}

// Career returns the index of the career with the given id, or -1.
func (u *University) Career(id uuid.UUID) int {
	for i := range u.Careers {
		if u.Careers[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveCareer drops the career with the given id. It reports whether anything was removed.
func (u *University) RemoveCareer(id uuid.UUID) bool {
	idx := u.Career(id)
	if idx < 0 {
		return false
	}
	u.Careers = append(u.Careers[:idx:idx], u.Careers[idx+1:]...)
	return true
}

// FacultyPercentTotal is expected to be 100.
func (u University) FacultyPercentTotal() float64 {
	d := u.FacultyDistribution
	return d.ExclusivePercent + d.SemiExclusivePercent + d.SimplePercent
}

func (c Career) Clone() Career {
	out := c
	if c.YearlyMatrix != nil {
		out.YearlyMatrix = append([]YearDetail(nil), c.YearlyMatrix...)
	}
	return out
}

// Count returns the number of subjects of type t in this year.
func (y YearDetail) Count(t SubjectType) int {
	switch t {
	case SubjectTypeA:
		return y.A
	case SubjectTypeB:
		return y.B
	case SubjectTypeC:
		return y.C
	case SubjectTypeD:
		return y.D
	}
	return 0
}

func (y YearDetail) Total() int {
	return y.A + y.B + y.C + y.D
}

// MatrixTotal sums every cell of a curriculum matrix.
func MatrixTotal(matrix []YearDetail) int {
	total := 0
	for _, y := range matrix {
		total += y.Total()
	}
	return total
}

// RecountSubjects restores the invariant SubjectsInPlan == sum of the matrix.
func (c *Career) RecountSubjects() {
	c.SubjectsInPlan = MatrixTotal(c.YearlyMatrix)
}

// SetMatrixCell sets the count of one subject type in one plan year (0-based) and recounts.
func (c *Career) SetMatrixCell(yearIdx int, t SubjectType, count int) error {
	if yearIdx < 0 || yearIdx >= len(c.YearlyMatrix) {
		return fmt.Errorf("year index %d out of range [0,%d)", yearIdx, len(c.YearlyMatrix))
	}
	if count < 0 {
		return fmt.Errorf("negative subject count: %d", count)
	}
	y := &c.YearlyMatrix[yearIdx]
	switch t {
	case SubjectTypeA:
		y.A = count
	case SubjectTypeB:
		y.B = count
	case SubjectTypeC:
		y.C = count
	case SubjectTypeD:
		y.D = count
	default:
		return fmt.Errorf("unknown subject type %q", t)
	}
	c.RecountSubjects()
	return nil
}

// Headcount is the raw enrolled headcount (freshmen plus reenrolled, no retention applied).
func (c Career) Headcount() int {
	return c.FreshmanCount + c.ReenrolledCount
}
