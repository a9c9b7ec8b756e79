package export

import (
	"math"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Allocator/internal/scoring"
)

// Kind selects how a cell's number is written.
type Kind int

const (
	KindText Kind = iota
	KindCount
	// KindPoints has two decimals.
	KindPoints
	// KindRatio has four decimals.
	KindRatio
	// KindMoney is rounded to whole currency units.
	KindMoney
	// KindPercent holds a value already scaled to 0..100.
	KindPercent
)

// Cell is one typed value of a dataset. Each exporter decides how to write it.
type Cell struct {
	Kind Kind
	Text string
	Num  float64
}

func Text(s string) Cell     { return Cell{Kind: KindText, Text: s} }
func Count(n int) Cell       { return Cell{Kind: KindCount, Num: float64(n)} }
func Points(v float64) Cell  { return Cell{Kind: KindPoints, Num: v} }
func Ratio(v float64) Cell   { return Cell{Kind: KindRatio, Num: v} }
func Money(v float64) Cell   { return Cell{Kind: KindMoney, Num: v} }
func Percent(v float64) Cell { return Cell{Kind: KindPercent, Num: v} }

// Dataset defines tabular export content. Each row holds one cell per header; short rows
// are padded with empty cells.
type Dataset struct {
	Headers []string
	Rows    [][]Cell
}

// Section is one titled table of a multi-table report.
type Section struct {
	Heading string
	Data    Dataset
}

func cellAt(row []Cell, i int) Cell {
	if i < len(row) {
		return row[i]
	}
	return Text("")
}

// plain writes a cell without decoration, for machine-read formats.
func plain(c Cell) string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindCount, KindMoney:
		return strconv.FormatFloat(math.Round(c.Num), 'f', 0, 64)
	case KindPoints:
		return strconv.FormatFloat(c.Num, 'f', 2, 64)
	default:
		return strconv.FormatFloat(c.Num, 'f', 4, 64)
	}
}

// display writes a cell for people: grouped thousands on money and a percent sign on shares.
func display(c Cell) string {
	switch c.Kind {
	case KindMoney:
		return "$ " + groupThousands(plain(c))
	case KindPercent:
		return plain(c) + "%"
	default:
		return plain(c)
	}
}

func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}

// ResultDataset lists the headline figures and block breakdown of one result.
func ResultDataset(r scoring.CalculationResult) Dataset {
	pairs := []struct {
		concept string
		value   Cell
	}{
		{"Activity points", Points(r.PointsStudentsActivity)},
		{"Complexity points", Points(r.PointsStudentsComplexity)},
		{"Graduate points", Points(r.PointsGraduates)},
		{"Adjusted students", Points(r.AdjustedStudents)},
		{"Required modules", Points(r.TotalRequiredModules)},
		{"Block 1 raw", Points(r.Block1RawScore)},
		{"Block 1 weighted", Points(r.Block1WeightedScore)},
		{"Faculty points", Points(r.PointsFaculty)},
		{"Admission course points", Points(r.PointsAdmissionCourse)},
		{"Authority points", Points(r.PointsAuthorities)},
		{"Non-teaching points", Points(r.PointsNonTeaching)},
		{"Infrastructure points", Points(r.PointsInfra)},
		{"Block 2 raw", Points(r.Block2RawScore)},
		{"Block 2 weighted", Points(r.Block2WeightedScore)},
		{"Block 3 raw", Points(r.Block3RawScore)},
		{"Block 3 weighted", Points(r.Block3WeightedScore)},
		{"Total score", Points(r.TotalScore)},
		{"System total", Points(r.SystemTotal)},
		{"Share", Percent(r.SharePercent)},
		{"Estimated budget", Money(r.EstimatedBudget)},
		{"Headcount", Count(r.TotalHeadcount)},
		{"Cost per student", Money(r.CostPerStudent)},
		{"Faculty count", Points(r.FacultyCount)},
		{"Faculty/student ratio", Ratio(r.FacultyStudentRatio)},
	}

	data := Dataset{Headers: []string{"Concept", "Value"}}
	for _, p := range pairs {
		data.Rows = append(data.Rows, []Cell{Text(p.concept), p.value})
	}
	return data
}

// CareerDataset has one row per career load of a result.
func CareerDataset(r scoring.CalculationResult) Dataset {
	data := Dataset{Headers: []string{"Career", "Discipline", "Adjusted students", "Utilization", "Activity", "Complexity", "Modules (prof)", "Modules (aux)"}}
	for _, c := range r.Careers {
		data.Rows = append(data.Rows, []Cell{
			Text(c.Name),
			Text(string(c.Discipline)),
			Points(c.AdjustedStudents),
			Ratio(c.UtilizationFactor),
			Points(c.ActivityPoints),
			Points(c.ComplexityPoints),
			Points(c.RequiredModulesProf),
			Points(c.RequiredModulesAux),
		})
	}
	return data
}

// ResultSections is the full report of one result: summary then careers.
func ResultSections(r scoring.CalculationResult) []Section {
	return []Section{
		{Heading: "Summary", Data: ResultDataset(r)},
		{Heading: "Careers", Data: CareerDataset(r)},
	}
}

// ComparisonDataset has one row per university.
func ComparisonDataset(rows []scoring.ComparisonRow) Dataset {
	data := Dataset{Headers: []string{"University", "Estimated budget", "Total score", "Block 1", "Block 2", "Block 3", "Share", "Headcount", "Cost per student"}}
	for _, row := range rows {
		data.Rows = append(data.Rows, []Cell{
			Text(row.Name),
			Money(row.EstimatedBudget),
			Points(row.TotalScore),
			Points(row.Block1WeightedScore),
			Points(row.Block2WeightedScore),
			Points(row.Block3WeightedScore),
			Percent(row.SharePercent),
			Count(row.TotalHeadcount),
			Money(row.CostPerStudent),
		})
	}
	return data
}
