package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Discipline is the academic field of a career. It selects the standard matrix and the
// complexity weight.
type Discipline string

const (
	DisciplineMedicine       Discipline = "medicine"
	DisciplineVeterinary     Discipline = "veterinary"
	DisciplineDentistry      Discipline = "dentistry"
	DisciplineAgronomy       Discipline = "agronomy"
	DisciplinePharmacy       Discipline = "pharmacy_biochemistry"
	DisciplineEngineering    Discipline = "engineering"
	DisciplineArchitecture   Discipline = "architecture"
	DisciplineExactSciences  Discipline = "exact_sciences"
	DisciplineArts           Discipline = "arts"
	DisciplinePsychology     Discipline = "psychology"
	DisciplineSocialSciences Discipline = "social_sciences"
	DisciplineEconomics      Discipline = "economics"
	DisciplineHumanities     Discipline = "humanities"
	DisciplineLaw            Discipline = "law"
	DisciplineTertiary       Discipline = "tertiary"
	DisciplineOthers         Discipline = "others"
)

// Disciplines lists every discipline in display order.
var Disciplines = []Discipline{
	DisciplineMedicine, DisciplineVeterinary, DisciplineDentistry, DisciplineAgronomy,
	DisciplinePharmacy, DisciplineEngineering, DisciplineArchitecture, DisciplineExactSciences,
	DisciplineArts, DisciplinePsychology, DisciplineSocialSciences, DisciplineEconomics,
	DisciplineHumanities, DisciplineLaw, DisciplineTertiary, DisciplineOthers,
}

// CareerType is the kind of degree programme. It selects the curve that spreads enrollment
// across plan years.
type CareerType string

const (
	CareerTypeLong        CareerType = "long"
	CareerTypeShort       CareerType = "short"
	CareerTypeArticulated CareerType = "articulated"
)

var CareerTypes = []CareerType{CareerTypeLong, CareerTypeShort, CareerTypeArticulated}

// SubjectType classifies a subject by teaching intensity, from field work (A) to lecture (D).
type SubjectType string

const (
	SubjectTypeA SubjectType = "A"
	SubjectTypeB SubjectType = "B"
	SubjectTypeC SubjectType = "C"
	SubjectTypeD SubjectType = "D"
)

var SubjectTypes = []SubjectType{SubjectTypeA, SubjectTypeB, SubjectTypeC, SubjectTypeD}

// YearDetail holds the number of subjects of each type taught in one plan year.
type YearDetail struct {
	Year int `json:"year"`
	A    int `json:"a" validate:"gte=0"`
	B    int `json:"b" validate:"gte=0"`
	C    int `json:"c" validate:"gte=0"`
	D    int `json:"d" validate:"gte=0"`
}

// Career is one degree programme with its subject matrix and enrollment figures.
type Career struct {
	ID         uuid.UUID  `json:"career_id"`
	Name       string     `json:"name"`
	Discipline Discipline `json:"discipline"`
	Type       CareerType `json:"type"`

	YearlyMatrix []YearDetail `json:"yearly_matrix"`

	FreshmanCount   int     `json:"freshman_count"`
	RetentionRate   float64 `json:"retention_rate"`
	ReenrolledCount int     `json:"reenrolled_count"`

	SubjectsInPlan        int     `json:"subjects_in_plan"`
	AverageSubjectsPassed float64 `json:"average_subjects_passed"`
}

// FacultyDistribution splits the teaching staff by dedication, in percent.
type FacultyDistribution struct {
	ExclusivePercent     float64 `json:"exclusive_percent" validate:"gte=0,lte=100"`
	SemiExclusivePercent float64 `json:"semi_exclusive_percent" validate:"gte=0,lte=100"`
	SimplePercent        float64 `json:"simple_percent" validate:"gte=0,lte=100"`
}

// ResearchRow counts researchers of one category by dedication.
type ResearchRow struct {
	Exclusive     int `json:"exclusive" validate:"gte=0"`
	SemiExclusive int `json:"semi_exclusive" validate:"gte=0"`
	Simple        int `json:"simple" validate:"gte=0"`
}

// ResearchMatrix counts researchers by category (I, II, III-IV, V) and dedication.
type ResearchMatrix struct {
	Cat1  ResearchRow `json:"cat1"`
	Cat2  ResearchRow `json:"cat2"`
	Cat34 ResearchRow `json:"cat34"`
	Cat5  ResearchRow `json:"cat5"`
}

// University is the institution record scored as a whole: its careers plus the
// institution-level inputs of blocks 2 and 3.
type University struct {
	ID   uuid.UUID `json:"university_id"`
	Name string    `json:"name"`

	RegionalCostFactor float64 `json:"regional_cost_factor"`
	EconomiesOfScale   float64 `json:"economies_of_scale"`

	// Academic block
	Careers        []Career `json:"careers"`
	TotalGraduates int      `json:"total_graduates"`

	// Normative block
	FacultyDistribution     FacultyDistribution `json:"faculty_distribution"`
	AdmissionCourseStudents int                 `json:"admission_course_students"`
	AdmissionCourseHours    int                 `json:"admission_course_hours"`
	AuthoritiesRectors      int                 `json:"authorities_rectors"`
	AuthoritiesDeans        int                 `json:"authorities_deans"`
	AuthoritiesSecretaries  int                 `json:"authorities_secretaries"`
	NonTeachingCategoryA    int                 `json:"non_teaching_category_a"`
	NonTeachingCategoryB    int                 `json:"non_teaching_category_b"`
	InfrastructureSqm       float64             `json:"infrastructure_sqm"`
	GreenSpaceSqm           float64             `json:"green_space_sqm"`

	// Research block
	ResearchMatrix ResearchMatrix `json:"research_matrix"`
	Fellowships    int            `json:"fellowships"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store interface {
	CreateUniversity(ctx context.Context, u *University) error
	GetUniversity(ctx context.Context, id uuid.UUID) (*University, error)
	ListUniversities(ctx context.Context) ([]*University, error)
	UpdateUniversity(ctx context.Context, u *University) error
	// UpdateUniversityFunc loads the university, applies fn and saves the result as one atomic
	// step. It returns nil, nil when the university does not exist and leaves the record
	// untouched when fn returns an error.
	UpdateUniversityFunc(ctx context.Context, id uuid.UUID, fn func(u *University) error) (*University, error)

	// GetWeights returns nil, nil when no weights have been saved yet.
	GetWeights(ctx context.Context) (*ModelWeights, error)
	SaveWeights(ctx context.Context, w *ModelWeights) error

	Close() error
}
