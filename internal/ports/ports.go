package ports

import (
	"context"

	"findability/internal/domain"
)

// Companies manages the tracked businesses.
type Companies interface {
	Create(ctx context.Context, c domain.Company) (domain.Company, error)
	Get(ctx context.Context, id int64) (domain.Company, error)
	List(ctx context.Context, query string) ([]domain.Company, error)
	Update(ctx context.Context, id int64, patch domain.CompanyPatch) (domain.Company, error)
	Delete(ctx context.Context, id int64) error
}

// Evaluations scores companies and keeps the results.
type Evaluations interface {
	Evaluate(ctx context.Context, companyID int64, signals domain.SignalSet) (domain.Evaluation, error)
	History(ctx context.Context, companyID int64) ([]domain.Evaluation, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
