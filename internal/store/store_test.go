package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestEnumValues(t *testing.T) {
	if len(Disciplines) != 16 {
		t.Errorf("expected 16 disciplines, got %d", len(Disciplines))
	}
	types := []CareerType{CareerTypeLong, CareerTypeShort, CareerTypeArticulated}
	expected := []string{"long", "short", "articulated"}
	for i, ct := range types {
		if string(ct) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], ct)
		}
	}
}

func TestNewUniversityDefaults(t *testing.T) {
	u := NewUniversity("UNLP")
	if u.ID == uuid.Nil {
		t.Error("expected an id")
	}
	if u.RegionalCostFactor != 1.0 || u.EconomiesOfScale != 1.0 {
		t.Errorf("expected neutral factors, got %f/%f", u.RegionalCostFactor, u.EconomiesOfScale)
	}
	if u.FacultyPercentTotal() != 100 {
		t.Errorf("faculty split sums to %f", u.FacultyPercentTotal())
	}
	if u.AuthoritiesRectors != 2 {
		t.Errorf("expected 2 rectors, got %d", u.AuthoritiesRectors)
	}
	if u.Careers == nil || len(u.Careers) != 0 {
		t.Error("expected an empty, non-nil career list")
	}
}

func testCareer(name string) Career {
	c := Career{
		ID:   uuid.New(),
		Name: name,
		YearlyMatrix: []YearDetail{
			{Year: 1, A: 1, B: 2}, {Year: 2, C: 3}, {Year: 3, D: 4}, {Year: 4}, {Year: 5, A: 1},
		},
	}
	c.RecountSubjects()
	return c
}

func TestCareerMatrixInvariant(t *testing.T) {
	c := testCareer("Derecho")
	if c.SubjectsInPlan != 11 {
		t.Fatalf("subjects in plan = %d, want 11", c.SubjectsInPlan)
	}

	if err := c.SetMatrixCell(3, SubjectTypeB, 5); err != nil {
		t.Fatalf("SetMatrixCell: %v", err)
	}
	if c.SubjectsInPlan != 16 || c.YearlyMatrix[3].B != 5 {
		t.Errorf("expected recount to 16, got %d", c.SubjectsInPlan)
	}

	tests := []struct {
		name  string
		year  int
		st    SubjectType
		count int
	}{
		{"year below range", -1, SubjectTypeA, 1},
		{"year above range", PlanYears, SubjectTypeA, 1},
		{"negative count", 0, SubjectTypeA, -1},
		{"unknown type", 0, SubjectType("E"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.SetMatrixCell(tt.year, tt.st, tt.count); err == nil {
				t.Error("expected error")
			}
			if c.SubjectsInPlan != 16 {
				t.Errorf("failed edit changed the plan: %d", c.SubjectsInPlan)
			}
		})
	}
}

func TestUniversityCareerHelpers(t *testing.T) {
	u := NewUniversity("U")
	a, b, c := testCareer("a"), testCareer("b"), testCareer("c")
	u.Careers = append(u.Careers, a, b, c)

	if idx := u.Career(b.ID); idx != 1 {
		t.Errorf("Career(b) = %d, want 1", idx)
	}
	if idx := u.Career(uuid.New()); idx != -1 {
		t.Errorf("Career(unknown) = %d, want -1", idx)
	}

	snapshot := u.Careers
	if !u.RemoveCareer(b.ID) {
		t.Fatal("expected removal")
	}
	if len(u.Careers) != 2 || u.Careers[1].ID != c.ID {
		t.Errorf("unexpected careers after removal: %v", u.Careers)
	}
	if snapshot[1].ID != b.ID {
		t.Error("removal rewrote the previous backing array")
	}
	if u.RemoveCareer(b.ID) {
		t.Error("second removal should report false")
	}
}

func TestUniversityCloneIsDeep(t *testing.T) {
	u := NewUniversity("U")
	u.Careers = append(u.Careers, testCareer("a"))

	cp := u.Clone()
	cp.Careers[0].Name = "changed"
	cp.Careers[0].YearlyMatrix[0].A = 42

	if u.Careers[0].Name != "a" || u.Careers[0].YearlyMatrix[0].A != 1 {
		t.Error("clone shares memory with the original")
	}
}

func TestModelWeightsValidate(t *testing.T) {
	if err := DefaultModelWeights().Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ModelWeights)
	}{
		{"bad sum", func(w *ModelWeights) { w.WeightResearch = 0.2 }},
		{"negative weight", func(w *ModelWeights) { w.WeightEducation = 1.1; w.WeightNormative = -0.15 }},
		{"negative budget", func(w *ModelWeights) { w.TotalSystemBudget = -1 }},
		{"negative points", func(w *ModelWeights) { w.TotalSystemPoints = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultModelWeights()
			tt.mutate(&w)
			if err := w.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	w := DefaultModelWeights()
	w.WeightEducation += 0.0005
	if err := w.Validate(); err != nil {
		t.Errorf("sum within tolerance rejected: %v", err)
	}
}

func TestMemoryStoreSnapshots(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := NewUniversity("U")
	u.Careers = append(u.Careers, testCareer("a"))
	if err := s.CreateUniversity(ctx, &u); err != nil {
		t.Fatalf("CreateUniversity: %v", err)
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if err := s.CreateUniversity(ctx, &u); err == nil {
		t.Error("expected duplicate create to fail")
	}

	// Mutating the caller's copy does not reach the store.
	u.Careers[0].YearlyMatrix[0].A = 99

	got, err := s.GetUniversity(ctx, u.ID)
	if err != nil || got == nil {
		t.Fatalf("GetUniversity: %v, %v", got, err)
	}
	if got.Careers[0].YearlyMatrix[0].A != 1 {
		t.Error("stored record aliased the caller's matrix")
	}

	// Neither does mutating a read snapshot.
	got.Name = "changed"
	again, _ := s.GetUniversity(ctx, u.ID)
	if again.Name != "U" {
		t.Error("stored record aliased a read snapshot")
	}

	missing, err := s.GetUniversity(ctx, uuid.New())
	if missing != nil || err != nil {
		t.Errorf("expected nil, nil for missing university, got %v, %v", missing, err)
	}
}

func TestMemoryStoreUpdateAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, second := NewUniversity("first"), NewUniversity("second")
	_ = s.CreateUniversity(ctx, &first)
	_ = s.CreateUniversity(ctx, &second)

	created := first.CreatedAt
	first.TotalGraduates = 10
	if err := s.UpdateUniversity(ctx, &first); err != nil {
		t.Fatalf("UpdateUniversity: %v", err)
	}
	if !first.CreatedAt.Equal(created) {
		t.Error("update changed CreatedAt")
	}

	list, err := s.ListUniversities(ctx)
	if err != nil {
		t.Fatalf("ListUniversities: %v", err)
	}
	if len(list) != 2 || list[0].Name != "first" || list[1].Name != "second" {
		t.Errorf("unexpected list order: %v", list)
	}
	if list[0].TotalGraduates != 10 {
		t.Errorf("update not persisted: %d", list[0].TotalGraduates)
	}

	ghost := NewUniversity("ghost")
	if err := s.UpdateUniversity(ctx, &ghost); err == nil {
		t.Error("expected error updating unknown university")
	}
}

func TestMemoryStoreUpdateUniversityFunc(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := NewUniversity("UNC")
	_ = s.CreateUniversity(ctx, &u)

	updated, err := s.UpdateUniversityFunc(ctx, u.ID, func(cur *University) error {
		cur.TotalGraduates = 42
		return nil
	})
	if err != nil || updated == nil {
		t.Fatalf("UpdateUniversityFunc: %v, %v", updated, err)
	}
	if updated.TotalGraduates != 42 || updated.UpdatedAt.Before(u.UpdatedAt) || !updated.CreatedAt.Equal(u.CreatedAt) {
		t.Errorf("unexpected result %+v", updated)
	}

	boom := errors.New("rejected")
	if _, err := s.UpdateUniversityFunc(ctx, u.ID, func(cur *University) error {
		cur.TotalGraduates = 7
		return boom
	}); !errors.Is(err, boom) {
		t.Errorf("expected fn error, got %v", err)
	}
	stored, _ := s.GetUniversity(ctx, u.ID)
	if stored.TotalGraduates != 42 {
		t.Errorf("failed update leaked: %d", stored.TotalGraduates)
	}

	missing, err := s.UpdateUniversityFunc(ctx, uuid.New(), func(*University) error {
		t.Error("fn called for a missing university")
		return nil
	})
	if missing != nil || err != nil {
		t.Errorf("expected nil, nil for missing university, got %v, %v", missing, err)
	}
}

func TestMemoryStoreConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := NewUniversity("UNC")
	_ = s.CreateUniversity(ctx, &u)

	const writers = 200
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.UpdateUniversityFunc(ctx, u.ID, func(cur *University) error {
				cur.Careers = append(cur.Careers, Career{ID: uuid.New(), Name: fmt.Sprintf("career-%d", i)})
				cur.TotalGraduates++
				return nil
			})
			if err != nil {
				t.Errorf("writer %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	stored, _ := s.GetUniversity(ctx, u.ID)
	if len(stored.Careers) != writers || stored.TotalGraduates != writers {
		t.Errorf("lost updates: %d careers, %d graduates, want %d", len(stored.Careers), stored.TotalGraduates, writers)
	}
}

func TestMemoryStoreWeights(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	w, err := s.GetWeights(ctx)
	if w != nil || err != nil {
		t.Fatalf("expected nil, nil before save, got %v, %v", w, err)
	}

	saved := DefaultModelWeights()
	saved.TotalSystemBudget = 1
	if err := s.SaveWeights(ctx, &saved); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}
	w, _ = s.GetWeights(ctx)
	if w == nil || w.TotalSystemBudget != 1 || w.UpdatedAt.IsZero() {
		t.Errorf("unexpected weights %+v", w)
	}
}

func TestResolveWeights(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	fallback := DefaultModelWeights()
	fallback.TotalSystemPoints = 7

	w, err := ResolveWeights(ctx, s, fallback)
	if err != nil || w.TotalSystemPoints != 7 {
		t.Fatalf("expected fallback weights, got %+v, %v", w, err)
	}

	saved := DefaultModelWeights()
	_ = s.SaveWeights(ctx, &saved)
	w, err = ResolveWeights(ctx, s, fallback)
	if err != nil || w.TotalSystemPoints != saved.TotalSystemPoints {
		t.Fatalf("expected saved weights, got %+v, %v", w, err)
	}
}
