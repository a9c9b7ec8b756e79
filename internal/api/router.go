package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/Allocator/internal/config"
	"github.com/MikeSquared-Agency/Allocator/internal/hermes"
	"github.com/MikeSquared-Agency/Allocator/internal/scoring"
	"github.com/MikeSquared-Agency/Allocator/internal/store"
)

func NewRouter(s store.Store, h hermes.Client, sc *scoring.Scorer, defaults store.ModelWeights, m *Metrics, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(m.Instrument)
	r.Use(RateLimitMiddleware(cfg.RateLimit))

	v := newValidator()
	universities := NewUniversitiesHandler(s, h, v, logger)
	results := NewResultsHandler(s, sc, defaults)
	weights := NewWeightsHandler(s, h, defaults, v, logger)
	reference := NewReferenceHandler(v)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ClientIDMiddleware)

		r.Post("/universities", universities.Create)
		r.Get("/universities", universities.List)
		r.Get("/universities/{id}", universities.Get)
		r.Put("/universities/{id}", universities.Update)

		r.Post("/universities/{id}/careers", universities.AddCareer)
		r.Put("/universities/{id}/careers/{career_id}", universities.UpdateCareer)
		r.Delete("/universities/{id}/careers/{career_id}", universities.DeleteCareer)
		r.Patch("/universities/{id}/careers/{career_id}/matrix", universities.SetMatrixCell)
		r.Post("/universities/{id}/careers/{career_id}/template", universities.ApplyTemplate)
		r.Get("/universities/{id}/careers/{career_id}/load", universities.CareerLoad)

		r.Get("/universities/{id}/result", results.Result)
		r.Get("/universities/{id}/result.{format}", results.Export)
		r.Get("/comparison", results.Comparison)
		r.Get("/comparison.{format}", results.ComparisonExport)

		r.Get("/reference/disciplines", reference.Disciplines)
		r.Get("/reference/disciplines/{name}/matrix", reference.DisciplineMatrix)
		r.Get("/reference/career-types", reference.CareerTypes)
		r.Get("/reference/tables", reference.Tables)
		r.Post("/reference/distribute", reference.Distribute)

		r.Get("/weights", weights.Get)
		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Put("/weights", weights.Put)
		})
	})

	return r
}

func NewMetricsRouter(m *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", m.Handler())
	return r
}
