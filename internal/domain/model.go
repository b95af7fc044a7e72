package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Core records shared by services and adapters. Wire shapes live in the
// http adapter; keep these decoupled from JSON naming.

type Company struct {
	ID        int64
	Name      string
	Website   *string
	Country   *string
	State     *string
	City      *string
	Industry  *string
	Niche     *string
	CreatedAt time.Time
}

type Evaluation struct {
	ID        int64
	CompanyID int64
	Score     float64
	Badge     Badge
	Evidence  []string
	CreatedAt time.Time
}

// Nullable is an optional field of a partial update. Set without a Value
// clears the field.
type Nullable struct {
	Set   bool
	Value *string
}

// CompanyPatch lists the fields a partial update touches. A nil Name leaves
// the name alone; the name itself can never be cleared.
type CompanyPatch struct {
	Name     *string
	Website  Nullable
	Country  Nullable
	State    Nullable
	City     Nullable
	Industry Nullable
	Niche    Nullable
}

// Empty reports whether the patch changes nothing.
func (p CompanyPatch) Empty() bool {
	return p.Name == nil && !p.Website.Set && !p.Country.Set && !p.State.Set &&
		!p.City.Set && !p.Industry.Set && !p.Niche.Set
}

// Apply returns c with the patch applied. ID and CreatedAt never change.
func (p CompanyPatch) Apply(c Company) Company {
	if p.Name != nil {
		c.Name = *p.Name
	}
	apply := func(dst **string, n Nullable) {
		if n.Set {
			*dst = n.Value
		}
	}
	apply(&c.Website, p.Website)
	apply(&c.Country, p.Country)
	apply(&c.State, p.State)
	apply(&c.City, p.City)
	apply(&c.Industry, p.Industry)
	apply(&c.Niche, p.Niche)
	return c
}

// MinNameLength is the shortest accepted company name after trimming.
const MinNameLength = 2

// NameTooShortMessage is returned to clients for names below MinNameLength.
const NameTooShortMessage = "Name's a bit short... please use at least 2 characters."

// ValidName reports whether name is long enough once trimmed.
func ValidName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= MinNameLength
}
