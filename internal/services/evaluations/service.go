package evaluations

import (
	"context"
	"fmt"
	"time"

	"findability/internal/domain"
	"findability/internal/ports"
)

type Service struct {
	companies   ports.CompanyRepository
	evaluations ports.EvaluationRepository
	now         func() time.Time
}

func New(companies ports.CompanyRepository, evaluations ports.EvaluationRepository) *Service {
	return &Service{companies: companies, evaluations: evaluations, now: time.Now}
}

// Evaluate scores the signals for an existing company and stores the result.
func (s *Service) Evaluate(ctx context.Context, companyID int64, signals domain.SignalSet) (domain.Evaluation, error) {
	if _, err := s.companies.GetCompany(ctx, companyID); err != nil {
		return domain.Evaluation{}, fmt.Errorf("company %d: %w", companyID, err)
	}
	res := domain.Evaluate(signals)
	ev, err := s.evaluations.CreateEvaluation(ctx, domain.Evaluation{
		CompanyID: companyID,
		Score:     res.Score,
		Badge:     res.Badge,
		Evidence:  res.Evidence,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("store evaluation: %w", err)
	}
	return ev, nil
}

// History lists a company's evaluations, newest first.
func (s *Service) History(ctx context.Context, companyID int64) ([]domain.Evaluation, error) {
	if _, err := s.companies.GetCompany(ctx, companyID); err != nil {
		return nil, fmt.Errorf("company %d: %w", companyID, err)
	}
	return s.evaluations.ListEvaluations(ctx, companyID)
}
