package scoring

import (
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

// Defaults for a manually added career.
const (
	DefaultFreshmanCount         = 100
	DefaultRetentionRate         = 0.8
	DefaultReenrolledCount       = 300
	DefaultAverageSubjectsPassed = 3.0
)

// NewCareer returns a long Social Sciences career with default enrollment and the standard
// matrix of its discipline.
func NewCareer(name string) store.Career {
	c := store.Career{
		ID:                    uuid.New(),
		Name:                  name,
		Type:                  store.CareerTypeLong,
		FreshmanCount:         DefaultFreshmanCount,
		RetentionRate:         DefaultRetentionRate,
		ReenrolledCount:       DefaultReenrolledCount,
		AverageSubjectsPassed: DefaultAverageSubjectsPassed,
	}
	ApplyTemplate(&c, store.DisciplineSocialSciences)
	return c
}

// ApplyTemplate switches the career to discipline d, replacing its matrix with a fresh copy
// of the standard one.
func ApplyTemplate(c *store.Career, d store.Discipline) {
	c.Discipline = d
	c.YearlyMatrix = StandardMatrix(d)
	c.RecountSubjects()
}
