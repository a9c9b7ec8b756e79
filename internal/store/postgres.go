package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS universities (
	university_id             UUID PRIMARY KEY,
	name                      TEXT NOT NULL,
	regional_cost_factor      DOUBLE PRECISION NOT NULL DEFAULT 1,
	economies_of_scale        DOUBLE PRECISION NOT NULL DEFAULT 1,
	total_graduates           INTEGER NOT NULL DEFAULT 0,
	faculty_distribution      JSONB NOT NULL DEFAULT '{}',
	admission_course_students INTEGER NOT NULL DEFAULT 0,
	admission_course_hours    INTEGER NOT NULL DEFAULT 0,
	authorities_rectors       INTEGER NOT NULL DEFAULT 0,
	authorities_deans         INTEGER NOT NULL DEFAULT 0,
	authorities_secretaries   INTEGER NOT NULL DEFAULT 0,
	non_teaching_category_a   INTEGER NOT NULL DEFAULT 0,
	non_teaching_category_b   INTEGER NOT NULL DEFAULT 0,
	infrastructure_sqm        DOUBLE PRECISION NOT NULL DEFAULT 0,
	green_space_sqm           DOUBLE PRECISION NOT NULL DEFAULT 0,
	research_matrix           JSONB NOT NULL DEFAULT '{}',
	fellowships               INTEGER NOT NULL DEFAULT 0,
	careers                   JSONB NOT NULL DEFAULT '[]',
	created_at                TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at                TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS model_weights (
	id                  SMALLINT PRIMARY KEY CHECK (id = 1),
	weight_education    DOUBLE PRECISION NOT NULL,
	weight_normative    DOUBLE PRECISION NOT NULL,
	weight_research     DOUBLE PRECISION NOT NULL,
	total_system_budget DOUBLE PRECISION NOT NULL,
	total_system_points DOUBLE PRECISION NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Migrate creates the tables if they do not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const universityColumns = `university_id, name, regional_cost_factor, economies_of_scale,
	total_graduates, faculty_distribution,
	admission_course_students, admission_course_hours,
	authorities_rectors, authorities_deans, authorities_secretaries,
	non_teaching_category_a, non_teaching_category_b,
	infrastructure_sqm, green_space_sqm,
	research_matrix, fellowships, careers,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) CreateUniversity(ctx context.Context, u *University) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	facultyJSON, researchJSON, careersJSON, err := marshalUniversityDocs(u)
	if err != nil {
		return err
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO universities (university_id, name, regional_cost_factor, economies_of_scale,
			total_graduates, faculty_distribution,
			admission_course_students, admission_course_hours,
			authorities_rectors, authorities_deans, authorities_secretaries,
			non_teaching_category_a, non_teaching_category_b,
			infrastructure_sqm, green_space_sqm,
			research_matrix, fellowships, careers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at, updated_at`,
		u.ID, u.Name, u.RegionalCostFactor, u.EconomiesOfScale,
		u.TotalGraduates, facultyJSON,
		u.AdmissionCourseStudents, u.AdmissionCourseHours,
		u.AuthoritiesRectors, u.AuthoritiesDeans, u.AuthoritiesSecretaries,
		u.NonTeachingCategoryA, u.NonTeachingCategoryB,
		u.InfrastructureSqm, u.GreenSpaceSqm,
		researchJSON, u.Fellowships, careersJSON,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

func (s *PostgresStore) GetUniversity(ctx context.Context, id uuid.UUID) (*University, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+universityColumns+` FROM universities WHERE university_id = $1`, id)
	u, err := scanUniversity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *PostgresStore) ListUniversities(ctx context.Context) ([]*University, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+universityColumns+` FROM universities ORDER BY created_at, university_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// queryRower is satisfied by both the pool and a transaction.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *PostgresStore) UpdateUniversity(ctx context.Context, u *University) error {
	return updateUniversity(ctx, s.pool, u)
}

func (s *PostgresStore) UpdateUniversityFunc(ctx context.Context, id uuid.UUID, fn func(u *University) error) (*University, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `SELECT `+universityColumns+` FROM universities WHERE university_id = $1 FOR UPDATE`, id)
	u, err := scanUniversity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock university: %w", err)
	}

	if err := fn(u); err != nil {
		return nil, err
	}
	u.ID = id
	if err := updateUniversity(ctx, tx, u); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return u, nil
}

func updateUniversity(ctx context.Context, q queryRower, u *University) error {
	facultyJSON, researchJSON, careersJSON, err := marshalUniversityDocs(u)
	if err != nil {
		return err
	}

	err = q.QueryRow(ctx, `
		UPDATE universities SET
			name = $2, regional_cost_factor = $3, economies_of_scale = $4,
			total_graduates = $5, faculty_distribution = $6,
			admission_course_students = $7, admission_course_hours = $8,
			authorities_rectors = $9, authorities_deans = $10, authorities_secretaries = $11,
			non_teaching_category_a = $12, non_teaching_category_b = $13,
			infrastructure_sqm = $14, green_space_sqm = $15,
			research_matrix = $16, fellowships = $17, careers = $18,
			updated_at = now()
		WHERE university_id = $1
		RETURNING created_at, updated_at`,
		u.ID, u.Name, u.RegionalCostFactor, u.EconomiesOfScale,
		u.TotalGraduates, facultyJSON,
		u.AdmissionCourseStudents, u.AdmissionCourseHours,
		u.AuthoritiesRectors, u.AuthoritiesDeans, u.AuthoritiesSecretaries,
		u.NonTeachingCategoryA, u.NonTeachingCategoryB,
		u.InfrastructureSqm, u.GreenSpaceSqm,
		researchJSON, u.Fellowships, careersJSON,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("university %s not found", u.ID)
	}
	return err
}

func (s *PostgresStore) GetWeights(ctx context.Context) (*ModelWeights, error) {
	w := &ModelWeights{}
	err := s.pool.QueryRow(ctx, `
		SELECT weight_education, weight_normative, weight_research,
			total_system_budget, total_system_points, updated_at
		FROM model_weights WHERE id = 1`,
	).Scan(&w.WeightEducation, &w.WeightNormative, &w.WeightResearch,
		&w.TotalSystemBudget, &w.TotalSystemPoints, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *PostgresStore) SaveWeights(ctx context.Context, w *ModelWeights) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO model_weights (id, weight_education, weight_normative, weight_research,
			total_system_budget, total_system_points)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			weight_education = EXCLUDED.weight_education,
			weight_normative = EXCLUDED.weight_normative,
			weight_research = EXCLUDED.weight_research,
			total_system_budget = EXCLUDED.total_system_budget,
			total_system_points = EXCLUDED.total_system_points,
			updated_at = now()
		RETURNING updated_at`,
		w.WeightEducation, w.WeightNormative, w.WeightResearch,
		w.TotalSystemBudget, w.TotalSystemPoints,
	).Scan(&w.UpdatedAt)
}

func marshalUniversityDocs(u *University) (faculty, research, careers []byte, err error) {
	if faculty, err = json.Marshal(u.FacultyDistribution); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal faculty distribution: %w", err)
	}
	if research, err = json.Marshal(u.ResearchMatrix); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal research matrix: %w", err)
	}
	list := u.Careers
	if list == nil {
		list = []Career{}
	}
	if careers, err = json.Marshal(list); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal careers: %w", err)
	}
	return faculty, research, careers, nil
}

func scanUniversity(row rowScanner) (*University, error) {
	u := &University{}
	var facultyJSON, researchJSON, careersJSON []byte
	err := row.Scan(
		&u.ID, &u.Name, &u.RegionalCostFactor, &u.EconomiesOfScale,
		&u.TotalGraduates, &facultyJSON,
		&u.AdmissionCourseStudents, &u.AdmissionCourseHours,
		&u.AuthoritiesRectors, &u.AuthoritiesDeans, &u.AuthoritiesSecretaries,
		&u.NonTeachingCategoryA, &u.NonTeachingCategoryB,
		&u.InfrastructureSqm, &u.GreenSpaceSqm,
		&researchJSON, &u.Fellowships, &careersJSON,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if facultyJSON != nil {
		if err := json.Unmarshal(facultyJSON, &u.FacultyDistribution); err != nil {
			return nil, fmt.Errorf("decode faculty distribution: %w", err)
		}
	}
	if researchJSON != nil {
		if err := json.Unmarshal(researchJSON, &u.ResearchMatrix); err != nil {
			return nil, fmt.Errorf("decode research matrix: %w", err)
		}
	}
	u.Careers = []Career{}
	if careersJSON != nil {
		if err := json.Unmarshal(careersJSON, &u.Careers); err != nil {
			return nil, fmt.Errorf("decode careers: %w", err)
		}
	}
	return u, nil
}
