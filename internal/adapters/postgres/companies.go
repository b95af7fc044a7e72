package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"findability/internal/domain"
	"findability/internal/ports"
)

const companyColumns = `id, name, website, country, state, city, industry, niche, created_at`

func scanCompany(row pgx.Row) (domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.Name, &c.Website, &c.Country, &c.State, &c.City, &c.Industry, &c.Niche, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, ports.ErrNotFound
	}
	return c, err
}

func (db *DB) CreateCompany(ctx context.Context, c domain.Company) (domain.Company, error) {
	return scanCompany(db.Pool.QueryRow(ctx, `
        INSERT INTO companies (name, website, country, state, city, industry, niche)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+companyColumns,
		c.Name, c.Website, c.Country, c.State, c.City, c.Industry, c.Niche))
}

func (db *DB) GetCompany(ctx context.Context, id int64) (domain.Company, error) {
	return scanCompany(db.Pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

func (db *DB) ListCompanies(ctx context.Context, nameContains string) ([]domain.Company, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT `+companyColumns+`
        FROM companies
        WHERE $1 = '' OR strpos(lower(name), lower($1)) > 0
        ORDER BY id ASC
    `, nameContains)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateCompany sets only the columns named by patch.
func (db *DB) UpdateCompany(ctx context.Context, id int64, patch domain.CompanyPatch) (domain.Company, error) {
	sets := []string{}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	for _, f := range []struct {
		col string
		n   domain.Nullable
	}{
		{"website", patch.Website},
		{"country", patch.Country},
		{"state", patch.State},
		{"city", patch.City},
		{"industry", patch.Industry},
		{"niche", patch.Niche},
	} {
		if f.n.Set {
			add(f.col, f.n.Value)
		}
	}
	if len(sets) == 0 {
		return db.GetCompany(ctx, id)
	}
	return scanCompany(db.Pool.QueryRow(ctx,
		`UPDATE companies SET `+strings.Join(sets, ", ")+` WHERE id = $1 RETURNING `+companyColumns,
		args...))
}

// DeleteCompany relies on ON DELETE CASCADE to drop evaluations.
func (db *DB) DeleteCompany(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}
