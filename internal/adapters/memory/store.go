// Package memory keeps companies and evaluations in process memory. It backs
// local runs without Postgres and the service tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"findability/internal/domain"
	"findability/internal/ports"
)

type Store struct {
	mu          sync.RWMutex
	now         func() time.Time
	nextCompany int64
	nextEval    int64
	companies   map[int64]domain.Company
	evaluations map[int64][]domain.Evaluation
}

func New() *Store {
	return &Store{
		now:         time.Now,
		companies:   make(map[int64]domain.Company),
		evaluations: make(map[int64][]domain.Evaluation),
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) CreateCompany(_ context.Context, c domain.Company) (domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCompany++
	c.ID = s.nextCompany
	c.CreatedAt = s.now().UTC()
	c = cloneCompany(c)
	s.companies[c.ID] = c
	return cloneCompany(c), nil
}

func (s *Store) GetCompany(_ context.Context, id int64) (domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[id]
	if !ok {
		return domain.Company{}, ports.ErrNotFound
	}
	return cloneCompany(c), nil
}

func (s *Store) ListCompanies(_ context.Context, nameContains string) ([]domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(nameContains)
	out := make([]domain.Company, 0, len(s.companies))
	for _, c := range s.companies {
		if needle == "" || strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, cloneCompany(c))
		}
	}
	slices.SortFunc(out, func(a, b domain.Company) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *Store) UpdateCompany(_ context.Context, id int64, patch domain.CompanyPatch) (domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[id]
	if !ok {
		return domain.Company{}, ports.ErrNotFound
	}
	c = cloneCompany(patch.Apply(c))
	s.companies[id] = c
	return cloneCompany(c), nil
}

func (s *Store) DeleteCompany(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[id]; !ok {
		return ports.ErrNotFound
	}
	delete(s.companies, id)
	delete(s.evaluations, id)
	return nil
}

func (s *Store) CreateEvaluation(_ context.Context, e domain.Evaluation) (domain.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[e.CompanyID]; !ok {
		return domain.Evaluation{}, ports.ErrNotFound
	}
	s.nextEval++
	e.ID = s.nextEval
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	e.Evidence = slices.Clone(e.Evidence)
	s.evaluations[e.CompanyID] = append(s.evaluations[e.CompanyID], e)
	e.Evidence = slices.Clone(e.Evidence)
	return e, nil
}

func (s *Store) ListEvaluations(_ context.Context, companyID int64) ([]domain.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.evaluations[companyID]
	out := make([]domain.Evaluation, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		e := stored[i]
		e.Evidence = slices.Clone(e.Evidence)
		out = append(out, e)
	}
	return out, nil
}

// cloneCompany copies the optional fields so callers never share pointers
// with the stored record.
func cloneCompany(c domain.Company) domain.Company {
	for _, f := range []**string{&c.Website, &c.Country, &c.State, &c.City, &c.Industry, &c.Niche} {
		if *f != nil {
			v := **f
			*f = &v
		}
	}
	return c
}
