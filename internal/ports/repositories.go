package ports

import (
	"context"

	"findability/internal/domain"
)

// CompanyRepository stores companies. Lookups of missing ids return ErrNotFound.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, c domain.Company) (domain.Company, error)
	GetCompany(ctx context.Context, id int64) (domain.Company, error)
	// ListCompanies returns companies ordered by id. A non-empty nameContains
	// keeps only names containing it, case-insensitively.
	ListCompanies(ctx context.Context, nameContains string) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, id int64, patch domain.CompanyPatch) (domain.Company, error)
	// DeleteCompany removes the company and all of its evaluations.
	DeleteCompany(ctx context.Context, id int64) error
}

// EvaluationRepository stores evaluation results.
type EvaluationRepository interface {
	CreateEvaluation(ctx context.Context, e domain.Evaluation) (domain.Evaluation, error)
	// ListEvaluations returns a company's evaluations, newest first.
	ListEvaluations(ctx context.Context, companyID int64) ([]domain.Evaluation, error)
}
