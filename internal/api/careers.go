package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Allocator/internal/hermes"
	"github.com/MikeSquared-Agency/Allocator/internal/scoring"
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

// CareerRequest carries the editable fields of a career. SubjectsInPlan is always derived
// from the matrix. A missing matrix on create loads the discipline's standard one.
type CareerRequest struct {
	Name                  string             `json:"name" validate:"required,max=200"`
	Discipline            store.Discipline   `json:"discipline" validate:"discipline"`
	Type                  store.CareerType   `json:"type" validate:"career_type"`
	YearlyMatrix          []store.YearDetail `json:"yearly_matrix" validate:"omitempty,len=5,dive"`
	FreshmanCount         int                `json:"freshman_count" validate:"gte=0"`
	RetentionRate         float64            `json:"retention_rate" validate:"gte=0,lte=1"`
	ReenrolledCount       int                `json:"reenrolled_count" validate:"gte=0"`
	AverageSubjectsPassed float64            `json:"average_subjects_passed" validate:"gte=0"`
}

func careerRequestOf(c store.Career) CareerRequest {
	return CareerRequest{
		Name:                  c.Name,
		Discipline:            c.Discipline,
		Type:                  c.Type,
		YearlyMatrix:          c.YearlyMatrix,
		FreshmanCount:         c.FreshmanCount,
		RetentionRate:         c.RetentionRate,
		ReenrolledCount:       c.ReenrolledCount,
		AverageSubjectsPassed: c.AverageSubjectsPassed,
	}
}

func (req CareerRequest) applyTo(c *store.Career) {
	c.Name = req.Name
	c.Discipline = req.Discipline
	c.Type = req.Type
	c.FreshmanCount = req.FreshmanCount
	c.RetentionRate = req.RetentionRate
	c.ReenrolledCount = req.ReenrolledCount
	c.AverageSubjectsPassed = req.AverageSubjectsPassed
	if req.YearlyMatrix != nil {
		c.YearlyMatrix = append([]store.YearDetail(nil), req.YearlyMatrix...)
		for i := range c.YearlyMatrix {
			c.YearlyMatrix[i].Year = i + 1
		}
	}
	c.RecountSubjects()
}

type MatrixCellRequest struct {
	Year  int               `json:"year" validate:"gte=1,lte=5"`
	Type  store.SubjectType `json:"type" validate:"subject_type"`
	Count int               `json:"count" validate:"gte=0"`
}

type TemplateRequest struct {
	Discipline store.Discipline `json:"discipline" validate:"discipline"`
}

func (h *UniversitiesHandler) AddCareer(w http.ResponseWriter, r *http.Request) {
	c := scoring.NewCareer("")
	req := careerRequestOf(c)
	req.YearlyMatrix = nil
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	req.applyTo(&c)
	if req.YearlyMatrix == nil {
		scoring.ApplyTemplate(&c, c.Discipline)
	}

	h.mutate(w, r, hermes.ChangeCareerAdded, http.StatusCreated, func(u *store.University) (string, interface{}, error) {
		u.Careers = append(u.Careers, c)
		return c.ID.String(), c, nil
	})
}

func (h *UniversitiesHandler) UpdateCareer(w http.ResponseWriter, r *http.Request) {
	careerID, ok := careerIDParam(w, r)
	if !ok {
		return
	}
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, hermes.ChangeCareerUpdated, http.StatusOK, func(u *store.University) (string, interface{}, error) {
		c, err := careerOf(u, careerID)
		if err != nil {
			return "", nil, err
		}
		req := careerRequestOf(*c)
		if err := bindJSON(h.validate, data, &req); err != nil {
			return "", nil, err
		}
		req.applyTo(c)
		return c.ID.String(), c, nil
	})
}

func (h *UniversitiesHandler) DeleteCareer(w http.ResponseWriter, r *http.Request) {
	careerID, ok := careerIDParam(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, hermes.ChangeCareerRemoved, http.StatusOK, func(u *store.University) (string, interface{}, error) {
		if !u.RemoveCareer(careerID) {
			return "", nil, notFound("career not found")
		}
		return careerID.String(), map[string]string{"status": "deleted"}, nil
	})
}

func (h *UniversitiesHandler) SetMatrixCell(w http.ResponseWriter, r *http.Request) {
	careerID, ok := careerIDParam(w, r)
	if !ok {
		return
	}
	var req MatrixCellRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	h.mutate(w, r, hermes.ChangeMatrixEdited, http.StatusOK, func(u *store.University) (string, interface{}, error) {
		c, err := careerOf(u, careerID)
		if err != nil {
			return "", nil, err
		}
		if err := c.SetMatrixCell(req.Year-1, req.Type, req.Count); err != nil {
			return "", nil, badRequest(err.Error())
		}
		return c.ID.String(), c, nil
	})
}

func (h *UniversitiesHandler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	careerID, ok := careerIDParam(w, r)
	if !ok {
		return
	}
	var req TemplateRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	h.mutate(w, r, hermes.ChangeTemplateLoaded, http.StatusOK, func(u *store.University) (string, interface{}, error) {
		c, err := careerOf(u, careerID)
		if err != nil {
			return "", nil, err
		}
		scoring.ApplyTemplate(c, req.Discipline)
		return c.ID.String(), c, nil
	})
}

func careerIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "career_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid career id")
		return uuid.Nil, false
	}
	return id, true
}

func careerOf(u *store.University, id uuid.UUID) (*store.Career, error) {
	idx := u.Career(id)
	if idx < 0 {
		return nil, notFound("career not found")
	}
	return &u.Careers[idx], nil
}

// CareerLoad returns the estimator breakdown of one career without persisting anything.
func (h *UniversitiesHandler) CareerLoad(w http.ResponseWriter, r *http.Request) {
	u, idx, ok := h.loadCareer(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, scoring.ComputeCareerLoad(u.Careers[idx]))
}

func (h *UniversitiesHandler) loadCareer(w http.ResponseWriter, r *http.Request) (*store.University, int, bool) {
	u, ok := loadUniversity(w, r, h.store)
	if !ok {
		return nil, 0, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "career_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid career id")
		return nil, 0, false
	}
	idx := u.Career(id)
	if idx < 0 {
		writeError(w, http.StatusNotFound, "career not found")
		return nil, 0, false
	}
	return u, idx, true
}
