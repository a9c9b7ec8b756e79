package api

import (
	"fmt"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Allocator/internal/export"
	"github.com/MikeSquared-Agency/Allocator/internal/scoring"
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

type ResultsHandler struct {
	store    store.Store
	scorer   *scoring.Scorer
	defaults store.ModelWeights
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	markdown *export.MarkdownExporter
}

func NewResultsHandler(s store.Store, sc *scoring.Scorer, defaults store.ModelWeights) *ResultsHandler {
	return &ResultsHandler{
		store:    s,
		scorer:   sc,
		defaults: defaults,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		markdown: export.NewMarkdownExporter(),
	}
}

const nonFiniteMessage = "result is not finite: total system points plus score is zero"

func (h *ResultsHandler) compute(w http.ResponseWriter, r *http.Request) (scoring.CalculationResult, bool) {
	u, ok := loadUniversity(w, r, h.store)
	if !ok {
		return scoring.CalculationResult{}, false
	}
	weights, err := store.ResolveWeights(r.Context(), h.store, h.defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return scoring.CalculationResult{}, false
	}
	result := h.scorer.Score(*u, weights)
	if !result.Finite() {
		writeError(w, http.StatusUnprocessableEntity, nonFiniteMessage)
		return scoring.CalculationResult{}, false
	}
	return result, true
}

func (h *ResultsHandler) Result(w http.ResponseWriter, r *http.Request) {
	result, ok := h.compute(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Export renders a result as csv, pdf or md. The csv form holds a single table selected
// by ?table=summary|careers.
func (h *ResultsHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if !validFormat(format) {
		writeError(w, http.StatusBadRequest, "format must be csv, pdf or md")
		return
	}
	result, ok := h.compute(w, r)
	if !ok {
		return
	}

	base := "result-" + result.UniversityID.String()
	switch format {
	case "csv":
		data := export.ResultDataset(result)
		if r.URL.Query().Get("table") == "careers" {
			data = export.CareerDataset(result)
		}
		h.render(w, "text/csv", base+".csv", func() ([]byte, error) { return h.csv.Render(data) })
	case "pdf":
		h.render(w, "application/pdf", base+".pdf", func() ([]byte, error) {
			return h.pdf.RenderReport(result.Name, export.ResultSections(result))
		})
	case "md":
		h.render(w, "text/markdown", base+".md", func() ([]byte, error) {
			return h.markdown.RenderReport(result.Name, export.ResultSections(result))
		})
	}
}

func (h *ResultsHandler) comparison(w http.ResponseWriter, r *http.Request) ([]scoring.ComparisonRow, bool) {
	list, err := h.store.ListUniversities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	weights, err := store.ResolveWeights(r.Context(), h.store, h.defaults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}

	universities := make([]store.University, 0, len(list))
	for _, u := range list {
		universities = append(universities, *u)
	}
	rows := h.scorer.Compare(universities, weights)
	for _, row := range rows {
		if !finite(row.SharePercent, row.EstimatedBudget, row.CostPerStudent) {
			writeError(w, http.StatusUnprocessableEntity, nonFiniteMessage)
			return nil, false
		}
	}
	return rows, true
}

func (h *ResultsHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.comparison(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ResultsHandler) ComparisonExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if !validFormat(format) {
		writeError(w, http.StatusBadRequest, "format must be csv, pdf or md")
		return
	}
	rows, ok := h.comparison(w, r)
	if !ok {
		return
	}

	data := export.ComparisonDataset(rows)
	const title = "University comparison"
	switch format {
	case "csv":
		h.render(w, "text/csv", "comparison.csv", func() ([]byte, error) { return h.csv.Render(data) })
	case "pdf":
		h.render(w, "application/pdf", "comparison.pdf", func() ([]byte, error) { return h.pdf.Render(data, title) })
	case "md":
		h.render(w, "text/markdown", "comparison.md", func() ([]byte, error) {
			return h.markdown.RenderReport(title, []export.Section{{Data: data}})
		})
	}
}

func (h *ResultsHandler) render(w http.ResponseWriter, contentType, filename string, fn func() ([]byte, error)) {
	body, err := fn()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("export %s: %v", filename, err))
		return
	}
	writeFile(w, contentType, filename, body)
}

func validFormat(f string) bool {
	switch f {
	case "csv", "pdf", "md":
		return true
	}
	return false
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
