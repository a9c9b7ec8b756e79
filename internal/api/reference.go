package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Allocator/internal/scoring"
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

// ReferenceHandler serves the static tables of the model.
type ReferenceHandler struct {
	validate *validator.Validate
}

func NewReferenceHandler(v *validator.Validate) *ReferenceHandler {
	return &ReferenceHandler{validate: v}
}

type disciplineInfo struct {
	Discipline store.Discipline `json:"discipline"`
	Weight     float64          `json:"weight"`
	Subjects   int              `json:"subjects_in_plan"`
}

type careerTypeInfo struct {
	Type  store.CareerType          `json:"type"`
	Curve scoring.DistributionCurve `json:"curve"`
}

type referenceTables struct {
	SubjectRatios   map[store.SubjectType]scoring.SubjectRatio `json:"subject_ratios"`
	ResearchWeights map[string]scoring.ResearchWeight          `json:"research_weights"`
}

type DistributeRequest struct {
	Total       float64   `json:"total" validate:"gte=0,lte=9007199254740992"`
	Percentages []float64 `json:"percentages" validate:"required,min=1,dive,gte=0,lte=1"`
}

func (h *ReferenceHandler) Disciplines(w http.ResponseWriter, r *http.Request) {
	out := make([]disciplineInfo, 0, len(store.Disciplines))
	for _, d := range store.Disciplines {
		out = append(out, disciplineInfo{
			Discipline: d,
			Weight:     scoring.DisciplineWeight(d),
			Subjects:   store.MatrixTotal(scoring.StandardMatrix(d)),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReferenceHandler) DisciplineMatrix(w http.ResponseWriter, r *http.Request) {
	d := store.Discipline(chi.URLParam(r, "name"))
	if !isDiscipline(d) {
		writeError(w, http.StatusNotFound, "unknown discipline")
		return
	}
	writeJSON(w, http.StatusOK, scoring.StandardMatrix(d))
}

func (h *ReferenceHandler) CareerTypes(w http.ResponseWriter, r *http.Request) {
	out := make([]careerTypeInfo, 0, len(store.CareerTypes))
	for _, ct := range store.CareerTypes {
		out = append(out, careerTypeInfo{Type: ct, Curve: scoring.CurveFor(ct)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReferenceHandler) Tables(w http.ResponseWriter, r *http.Request) {
	ratios := make(map[store.SubjectType]scoring.SubjectRatio, len(store.SubjectTypes))
	for _, st := range store.SubjectTypes {
		ratios[st], _ = scoring.RatioOf(st)
	}
	writeJSON(w, http.StatusOK, referenceTables{
		SubjectRatios:   ratios,
		ResearchWeights: scoring.ResearchWeights(),
	})
}

// Distribute exposes the largest-remainder apportionment.
func (h *ReferenceHandler) Distribute(w http.ResponseWriter, r *http.Request) {
	var req DistributeRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"counts": scoring.Distribute(req.Total, req.Percentages)})
}
