package companies

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findability/internal/adapters/memory"
	"findability/internal/domain"
	"findability/internal/ports"
)

func ptr(s string) *string { return &s }

func TestCreateValidatesName(t *testing.T) {
	svc := New(memory.New())
	ctx := context.Background()

	for _, name := range []string{"", " ", "A", "  B "} {
		_, err := svc.Create(ctx, domain.Company{Name: name})
		var verr *ports.ValidationError
		require.Truef(t, errors.As(err, &verr), "name %q", name)
		assert.Equal(t, "name", verr.Field)
		assert.Equal(t, domain.NameTooShortMessage, verr.Msg)
	}

	c, err := svc.Create(ctx, domain.Company{ID: 99, Name: "Acme Co", Website: ptr("https://acme.example")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "https://acme.example", *c.Website)
}

func TestListFiltersByName(t *testing.T) {
	svc := New(memory.New())
	ctx := context.Background()
	for _, n := range []string{"Acme Co", "Beta Labs", "Acme Widgets"} {
		_, err := svc.Create(ctx, domain.Company{Name: n})
		require.NoError(t, err)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Acme Co", "Beta Labs", "Acme Widgets"}},
		{"   ", []string{"Acme Co", "Beta Labs", "Acme Widgets"}},
		{"acme", []string{"Acme Co", "Acme Widgets"}},
		{"  ACME ", []string{"Acme Co", "Acme Widgets"}},
		{"labs", []string{"Beta Labs"}},
		{"zeta", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := svc.List(ctx, tt.query)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestUpdate(t *testing.T) {
	svc := New(memory.New())
	ctx := context.Background()
	c, err := svc.Create(ctx, domain.Company{Name: "Old Name", Niche: ptr("roofing")})
	require.NoError(t, err)

	got, err := svc.Update(ctx, c.ID, domain.CompanyPatch{Name: ptr("New Name"), City: domain.Nullable{Set: true, Value: ptr("LA")}})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "LA", *got.City)
	assert.Equal(t, "roofing", *got.Niche)
	assert.Equal(t, c.CreatedAt, got.CreatedAt)

	same, err := svc.Update(ctx, c.ID, domain.CompanyPatch{})
	require.NoError(t, err)
	assert.Equal(t, got, same)

	_, err = svc.Update(ctx, c.ID, domain.CompanyPatch{Name: ptr("x")})
	var verr *ports.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Update(ctx, 404, domain.CompanyPatch{Name: ptr("Valid")})
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = svc.Update(ctx, 404, domain.CompanyPatch{})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := New(memory.New())
	ctx := context.Background()
	c, err := svc.Create(ctx, domain.Company{Name: "Temp Co"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, c.ID), ports.ErrNotFound)
}
