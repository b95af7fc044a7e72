package companies

import (
	"context"
	"fmt"
	"strings"

	"findability/internal/domain"
	"findability/internal/ports"
)

type Service struct {
	repo ports.CompanyRepository
}

func New(repo ports.CompanyRepository) *Service { return &Service{repo: repo} }

func (s *Service) Create(ctx context.Context, c domain.Company) (domain.Company, error) {
	if !domain.ValidName(c.Name) {
		return domain.Company{}, &ports.ValidationError{Field: "name", Msg: domain.NameTooShortMessage}
	}
	c.ID = 0
	return s.repo.CreateCompany(ctx, c)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Company, error) {
	c, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		return domain.Company{}, fmt.Errorf("company %d: %w", id, err)
	}
	return c, nil
}

// List returns all companies, or those whose name contains query when it is
// not blank.
func (s *Service) List(ctx context.Context, query string) ([]domain.Company, error) {
	return s.repo.ListCompanies(ctx, strings.ToLower(strings.TrimSpace(query)))
}

// Update applies only the fields present in patch.
func (s *Service) Update(ctx context.Context, id int64, patch domain.CompanyPatch) (domain.Company, error) {
	if patch.Name != nil && !domain.ValidName(*patch.Name) {
		return domain.Company{}, &ports.ValidationError{Field: "name", Msg: domain.NameTooShortMessage}
	}
	if patch.Empty() {
		return s.Get(ctx, id)
	}
	c, err := s.repo.UpdateCompany(ctx, id, patch)
	if err != nil {
		return domain.Company{}, fmt.Errorf("company %d: %w", id, err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCompany(ctx, id); err != nil {
		return fmt.Errorf("company %d: %w", id, err)
	}
	return nil
}
