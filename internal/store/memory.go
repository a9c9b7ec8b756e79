package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps universities in process memory. Every read and write copies the record,
// so callers only ever hold snapshots.
type MemoryStore struct {
	mu           sync.RWMutex
	universities map[uuid.UUID]*University
	order        []uuid.UUID
	weights      *ModelWeights
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{universities: make(map[uuid.UUID]*University)}
}

func (s *MemoryStore) CreateUniversity(_ context.Context, u *University) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if _, exists := s.universities[u.ID]; exists {
		return fmt.Errorf("university %s already exists", u.ID)
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	cp := u.Clone()
	s.universities[u.ID] = &cp
	s.order = append(s.order, u.ID)
	return nil
}

func (s *MemoryStore) GetUniversity(_ context.Context, id uuid.UUID) (*University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.universities[id]
	if !ok {
		return nil, nil
	}
	cp := u.Clone()
	return &cp, nil
}

func (s *MemoryStore) ListUniversities(_ context.Context) ([]*University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*University, 0, len(s.order))
	for _, id := range s.order {
		cp := s.universities[id].Clone()
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemoryStore) UpdateUniversity(_ context.Context, u *University) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.universities[u.ID]
	if !ok {
		return fmt.Errorf("university %s not found", u.ID)
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()

	cp := u.Clone()
	s.universities[u.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateUniversityFunc(_ context.Context, id uuid.UUID, fn func(u *University) error) (*University, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.universities[id]
	if !ok {
		return nil, nil
	}
	u := existing.Clone()
	if err := fn(&u); err != nil {
		return nil, err
	}
	u.ID = id
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()

	cp := u.Clone()
	s.universities[id] = &cp
	return &u, nil
}

func (s *MemoryStore) GetWeights(_ context.Context) (*ModelWeights, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.weights == nil {
		return nil, nil
	}
	cp := *s.weights
	return &cp, nil
}

func (s *MemoryStore) SaveWeights(_ context.Context, w *ModelWeights) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.UpdatedAt = time.Now().UTC()
	cp := *w
	s.weights = &cp
	return nil
}

func (s *MemoryStore) Close() error { return nil }
