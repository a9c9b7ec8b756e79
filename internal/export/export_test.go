package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Allocator/internal/scoring"
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

func sampleResult() scoring.CalculationResult {
	u := store.NewUniversity("Universidad | Test")
	u.TotalGraduates = 50
	u.Careers = append(u.Careers, scoring.NewCareer("Economía"))
	return scoring.ComputeUniversityResult(u, store.DefaultModelWeights())
}

func TestCSVExporterRender(t *testing.T) {
	r := sampleResult()
	out, err := NewCSVExporter().Render(CareerDataset(r))
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, []byte(utf8BOM)))
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, []byte(utf8BOM)))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Career", records[0][0])
	assert.Equal(t, "Economía", records[1][0])
	assert.Equal(t, "social_sciences", records[1][1])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestResultDataset(t *testing.T) {
	r := sampleResult()
	data := ResultDataset(r)

	values := map[string]Cell{}
	for _, row := range data.Rows {
		values[row[0].Text] = row[1]
	}
	assert.Equal(t, KindPoints, values["Graduate points"].Kind)
	assert.InDelta(t, 250, values["Graduate points"].Num, 1e-9)
	assert.Equal(t, Count(400), values["Headcount"])
	assert.Equal(t, KindPercent, values["Share"].Kind)
	assert.Equal(t, KindMoney, values["Estimated budget"].Kind)
}

func TestComparisonDataset(t *testing.T) {
	rows := []scoring.ComparisonRow{
		{Name: "A", EstimatedBudget: 1234.6, SharePercent: 1.5, TotalHeadcount: 10},
		{Name: "B"},
	}
	data := ComparisonDataset(rows)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, Money(1234.6), data.Rows[0][1])
	assert.Equal(t, Percent(1.5), data.Rows[0][6])
	assert.Equal(t, "B", data.Rows[1][0].Text)
}

func TestCellFormatting(t *testing.T) {
	tests := []struct {
		cell    Cell
		plain   string
		display string
	}{
		{Text("Economía"), "Economía", "Economía"},
		{Count(400), "400", "400"},
		{Points(250), "250.00", "250.00"},
		{Ratio(0.04567), "0.0457", "0.0457"},
		{Money(1234.6), "1235", "$ 1,235"},
		{Money(50_000_000_000), "50000000000", "$ 50,000,000,000"},
		{Money(-1234567), "-1234567", "$ -1,234,567"},
		{Money(999), "999", "$ 999"},
		{Percent(1.5), "1.5000", "1.5000%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.plain, plain(tt.cell), "plain %+v", tt.cell)
		assert.Equal(t, tt.display, display(tt.cell), "display %+v", tt.cell)
	}
}

func TestExportersFormatNumbersThemselves(t *testing.T) {
	data := ComparisonDataset([]scoring.ComparisonRow{
		{Name: "Alfa", EstimatedBudget: 1234567.4, SharePercent: 12.5, TotalHeadcount: 900},
	})

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, []byte(utf8BOM)))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1234567", records[1][1])
	assert.Equal(t, "12.5000", records[1][6])
	assert.Equal(t, "900", records[1][7])

	md, err := NewMarkdownExporter().RenderReport("", []Section{{Data: data}})
	require.NoError(t, err)
	assert.Contains(t, string(md), "| Alfa | $ 1,234,567 |")
	assert.Contains(t, string(md), "| 12.5000% |")
	assert.Contains(t, string(md), "| --- | ---: |")
}

func TestShortRowsArePadded(t *testing.T) {
	data := Dataset{Headers: []string{"A", "B"}, Rows: [][]Cell{{Text("only")}}}
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "only,\n")
}

func TestPDFExporterRender(t *testing.T) {
	r := sampleResult()
	out, err := NewPDFExporter().RenderReport("Universidad Test", ResultSections(r))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	single, err := NewPDFExporter().Render(ComparisonDataset(scoring.Compare(nil, store.DefaultModelWeights())), "")
	require.NoError(t, err)
	assert.NotEmpty(t, single)

	_, err = NewPDFExporter().RenderReport("x", nil)
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{}, "x")
	assert.Error(t, err)
}

func TestMarkdownExporterRender(t *testing.T) {
	r := sampleResult()
	out, err := NewMarkdownExporter().RenderReport(r.Name, ResultSections(r))
	require.NoError(t, err)

	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# Universidad | Test\n"))
	assert.Contains(t, md, "## Summary")
	assert.Contains(t, md, "| Concept | Value |")
	assert.Contains(t, md, "| --- | --- |")
	assert.Contains(t, md, "| Economía | social_sciences |")

	_, err = NewMarkdownExporter().RenderReport("", []Section{{Heading: "empty"}})
	assert.Error(t, err)
}
