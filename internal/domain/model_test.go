package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"single char", "A", false},
		{"whitespace padded single char", "  A  ", false},
		{"two chars", "AB", true},
		{"multibyte", "日本", true},
		{"regular", "Acme Co", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.input))
		})
	}
}

func TestCompanyPatch(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	base := Company{ID: 7, Name: "Old Name", City: strPtr("SF"), Niche: strPtr("plumbing"), CreatedAt: created}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		p := CompanyPatch{}
		assert.True(t, p.Empty())
		assert.Equal(t, base, p.Apply(base))
	})

	t.Run("only supplied fields change", func(t *testing.T) {
		p := CompanyPatch{Name: strPtr("New Name"), City: Nullable{Set: true, Value: strPtr("LA")}}
		assert.False(t, p.Empty())
		got := p.Apply(base)
		assert.Equal(t, "New Name", got.Name)
		assert.Equal(t, "LA", *got.City)
		assert.Equal(t, "plumbing", *got.Niche)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, created, got.CreatedAt)
	})

	t.Run("set without value clears", func(t *testing.T) {
		p := CompanyPatch{Niche: Nullable{Set: true}}
		got := p.Apply(base)
		assert.Nil(t, got.Niche)
		assert.Equal(t, "SF", *got.City)
	})
}
