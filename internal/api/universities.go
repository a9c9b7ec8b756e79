package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Allocator/internal/hermes"
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

type UniversitiesHandler struct {
	store    store.Store
	hermes   hermes.Client
	validate *validator.Validate
	logger   *slog.Logger
}

func NewUniversitiesHandler(s store.Store, h hermes.Client, v *validator.Validate, logger *slog.Logger) *UniversitiesHandler {
	return &UniversitiesHandler{store: s, hermes: h, validate: v, logger: logger}
}

// InstitutionRequest carries the institution-level inputs of a university. Fields missing
// from the body keep their current value (or the defaults, on create).
type InstitutionRequest struct {
	Name                    string                    `json:"name" validate:"required,max=200"`
	RegionalCostFactor      float64                   `json:"regional_cost_factor" validate:"gt=0"`
	EconomiesOfScale        float64                   `json:"economies_of_scale" validate:"gt=0"`
	TotalGraduates          int                       `json:"total_graduates" validate:"gte=0"`
	FacultyDistribution     store.FacultyDistribution `json:"faculty_distribution"`
	AdmissionCourseStudents int                       `json:"admission_course_students" validate:"gte=0"`
	AdmissionCourseHours    int                       `json:"admission_course_hours" validate:"gte=0"`
	AuthoritiesRectors      int                       `json:"authorities_rectors" validate:"gte=0"`
	AuthoritiesDeans        int                       `json:"authorities_deans" validate:"gte=0"`
	AuthoritiesSecretaries  int                       `json:"authorities_secretaries" validate:"gte=0"`
	NonTeachingCategoryA    int                       `json:"non_teaching_category_a" validate:"gte=0"`
	NonTeachingCategoryB    int                       `json:"non_teaching_category_b" validate:"gte=0"`
	InfrastructureSqm       float64                   `json:"infrastructure_sqm" validate:"gte=0"`
	GreenSpaceSqm           float64                   `json:"green_space_sqm" validate:"gte=0"`
	ResearchMatrix          store.ResearchMatrix      `json:"research_matrix"`
	Fellowships             int                       `json:"fellowships" validate:"gte=0"`
}

func institutionOf(u *store.University) InstitutionRequest {
	return InstitutionRequest{
		Name:                    u.Name,
		RegionalCostFactor:      u.RegionalCostFactor,
		EconomiesOfScale:        u.EconomiesOfScale,
		TotalGraduates:          u.TotalGraduates,
		FacultyDistribution:     u.FacultyDistribution,
		AdmissionCourseStudents: u.AdmissionCourseStudents,
		AdmissionCourseHours:    u.AdmissionCourseHours,
		AuthoritiesRectors:      u.AuthoritiesRectors,
		AuthoritiesDeans:        u.AuthoritiesDeans,
		AuthoritiesSecretaries:  u.AuthoritiesSecretaries,
		NonTeachingCategoryA:    u.NonTeachingCategoryA,
		NonTeachingCategoryB:    u.NonTeachingCategoryB,
		InfrastructureSqm:       u.InfrastructureSqm,
		GreenSpaceSqm:           u.GreenSpaceSqm,
		ResearchMatrix:          u.ResearchMatrix,
		Fellowships:             u.Fellowships,
	}
}

func (req InstitutionRequest) applyTo(u *store.University) {
	u.Name = req.Name
	u.RegionalCostFactor = req.RegionalCostFactor
	u.EconomiesOfScale = req.EconomiesOfScale
	u.TotalGraduates = req.TotalGraduates
	u.FacultyDistribution = req.FacultyDistribution
	u.AdmissionCourseStudents = req.AdmissionCourseStudents
	u.AdmissionCourseHours = req.AdmissionCourseHours
	u.AuthoritiesRectors = req.AuthoritiesRectors
	u.AuthoritiesDeans = req.AuthoritiesDeans
	u.AuthoritiesSecretaries = req.AuthoritiesSecretaries
	u.NonTeachingCategoryA = req.NonTeachingCategoryA
	u.NonTeachingCategoryB = req.NonTeachingCategoryB
	u.InfrastructureSqm = req.InfrastructureSqm
	u.GreenSpaceSqm = req.GreenSpaceSqm
	u.ResearchMatrix = req.ResearchMatrix
	u.Fellowships = req.Fellowships
}

func (h *UniversitiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	u := store.NewUniversity("")
	req := institutionOf(&u)
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	req.applyTo(&u)

	if err := h.store.CreateUniversity(r.Context(), &u); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.publish(r, hermes.SubjectUniversityCreated(u.ID.String()), &u, hermes.ChangeCreated, "")
	writeJSON(w, http.StatusCreated, u)
}

func (h *UniversitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListUniversities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []*store.University{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *UniversitiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, ok := loadUniversity(w, r, h.store)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UniversitiesHandler) Update(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, hermes.ChangeInstitution, http.StatusOK, func(u *store.University) (string, interface{}, error) {
		req := institutionOf(u)
		if err := bindJSON(h.validate, data, &req); err != nil {
			return "", nil, err
		}
		req.applyTo(u)
		return "", u, nil
	})
}

// mutate applies fn to the university named by {id} inside the store's atomic update, then
// announces the change and writes the body fn returned with status. fn sees the current
// record, so concurrent edits never overwrite each other.
func (h *UniversitiesHandler) mutate(w http.ResponseWriter, r *http.Request, change string, status int,
	fn func(u *store.University) (careerID string, body interface{}, err error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid university id")
		return
	}

	var careerID string
	var body interface{}
	u, err := h.store.UpdateUniversityFunc(r.Context(), id, func(u *store.University) error {
		var ferr error
		careerID, body, ferr = fn(u)
		return ferr
	})
	if err != nil {
		writeStatusError(w, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "university not found")
		return
	}

	h.publish(r, hermes.SubjectUniversityUpdated(u.ID.String()), u, change, careerID)
	writeJSON(w, status, body)
}

func (h *UniversitiesHandler) publish(r *http.Request, subject string, u *store.University, change, careerID string) {
	if h.hermes == nil {
		return
	}
	err := h.hermes.Publish(subject, hermes.UniversityEvent{
		UniversityID: u.ID.String(),
		Name:         u.Name,
		Change:       change,
		CareerID:     careerID,
		ClientID:     r.Header.Get(ClientIDHeader),
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("failed to publish university event",
			"subject", subject,
			"university_id", u.ID,
			"change", change,
			"error", err)
	}
}

// loadUniversity resolves the {id} URL parameter. It writes the error response itself and
// reports false when the university cannot be served.
func loadUniversity(w http.ResponseWriter, r *http.Request, s store.Store) (*store.University, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid university id")
		return nil, false
	}
	u, err := s.GetUniversity(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "university not found")
		return nil, false
	}
	return u, true
}
