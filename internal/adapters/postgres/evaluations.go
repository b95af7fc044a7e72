package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"findability/internal/domain"
	"findability/internal/ports"
)

// foreignKeyViolation is the SQLSTATE for a missing referenced row.
const foreignKeyViolation = "23503"

func scanEvaluation(row pgx.Row) (domain.Evaluation, error) {
	var (
		e     domain.Evaluation
		badge string
	)
	if err := row.Scan(&e.ID, &e.CompanyID, &e.Score, &badge, &e.Evidence, &e.CreatedAt); err != nil {
		return e, err
	}
	b, err := domain.ParseBadge(badge)
	if err != nil {
		return e, err
	}
	e.Badge = b
	return e, nil
}

func (db *DB) CreateEvaluation(ctx context.Context, e domain.Evaluation) (domain.Evaluation, error) {
	// evidence is bound as jsonb; pgx encodes the slice as a JSON array.
	out, err := scanEvaluation(db.Pool.QueryRow(ctx, `
        INSERT INTO evaluations (company_id, score, badge, evidence, created_at)
        VALUES ($1, $2, $3, $4, COALESCE($5, now()))
        RETURNING id, company_id, score, badge, evidence, created_at
    `, e.CompanyID, e.Score, string(e.Badge), e.Evidence, nullTime(e)))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return domain.Evaluation{}, ports.ErrNotFound
	}
	return out, err
}

func (db *DB) ListEvaluations(ctx context.Context, companyID int64) ([]domain.Evaluation, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT id, company_id, score, badge, evidence, created_at
        FROM evaluations
        WHERE company_id = $1
        ORDER BY created_at DESC, id DESC
    `, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Evaluation{}
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullTime(e domain.Evaluation) any {
	if e.CreatedAt.IsZero() {
		return nil
	}
	return e.CreatedAt
}
