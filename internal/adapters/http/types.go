package httpadapter

import (
	"encoding/json"
	"time"

	"findability/internal/domain"
)

type companyCreate struct {
	Name     *string `json:"name"`
	Website  *string `json:"website"`
	Country  *string `json:"country"`
	State    *string `json:"state"`
	City     *string `json:"city"`
	Industry *string `json:"industry"`
	Niche    *string `json:"niche"`
}

func (c companyCreate) toDomain() domain.Company {
	out := domain.Company{
		Website:  c.Website,
		Country:  c.Country,
		State:    c.State,
		City:     c.City,
		Industry: c.Industry,
		Niche:    c.Niche,
	}
	if c.Name != nil {
		out.Name = *c.Name
	}
	return out
}

// companyUpdate distinguishes absent fields from explicit nulls.
type companyUpdate struct {
	Name     optionalString `json:"name"`
	Website  optionalString `json:"website"`
	Country  optionalString `json:"country"`
	State    optionalString `json:"state"`
	City     optionalString `json:"city"`
	Industry optionalString `json:"industry"`
	Niche    optionalString `json:"niche"`
}

func (u companyUpdate) toDomain() domain.CompanyPatch {
	return domain.CompanyPatch{
		Name:     u.Name.value,
		Website:  u.Website.nullable(),
		Country:  u.Country.nullable(),
		State:    u.State.nullable(),
		City:     u.City.nullable(),
		Industry: u.Industry.nullable(),
		Niche:    u.Niche.nullable(),
	}
}

type optionalString struct {
	set   bool
	value *string
}

func (o *optionalString) UnmarshalJSON(b []byte) error {
	o.set = true
	if string(b) == "null" {
		o.value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.value = &s
	return nil
}

func (o optionalString) nullable() domain.Nullable {
	return domain.Nullable{Set: o.set, Value: o.value}
}

type companyOut struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Website   *string   `json:"website"`
	Country   *string   `json:"country"`
	State     *string   `json:"state"`
	City      *string   `json:"city"`
	Industry  *string   `json:"industry"`
	Niche     *string   `json:"niche"`
	CreatedAt time.Time `json:"created_at"`
}

func toCompanyOut(c domain.Company) companyOut {
	return companyOut{
		ID:        c.ID,
		Name:      c.Name,
		Website:   c.Website,
		Country:   c.Country,
		State:     c.State,
		City:      c.City,
		Industry:  c.Industry,
		Niche:     c.Niche,
		CreatedAt: c.CreatedAt,
	}
}

// evaluateRequest carries the verbose flag names clients send. Absent flags
// are false.
type evaluateRequest struct {
	CompanyID                     *int64 `json:"company_id"`
	HasContactPage                bool   `json:"has_contact_page"`
	HasClearServicesPage          bool   `json:"has_clear_services_page"`
	HasGMBOrMapsListing           bool   `json:"has_gmb_or_maps_listing"`
	HasRecentUpdates              bool   `json:"has_recent_updates"`
	HasReviewsOrTestimonials      bool   `json:"has_reviews_or_testimonials"`
	HasOnlineBookingOrForm        bool   `json:"has_online_booking_or_form"`
	UsesBasicSchemaMarkup         bool   `json:"uses_basic_schema_markup"`
	HasConsistentNameAddressPhone bool   `json:"has_consistent_name_address_phone"`
	HasFastLoadTimeClaim          bool   `json:"has_fast_load_time_claim"`
	ContentMatchesIntent          bool   `json:"content_matches_intent"`
}

func (r evaluateRequest) signals() domain.SignalSet {
	return domain.SignalSet{
		ContactPage:          r.HasContactPage,
		ClearServicesPage:    r.HasClearServicesPage,
		MapsListing:          r.HasGMBOrMapsListing,
		RecentUpdates:        r.HasRecentUpdates,
		Reviews:              r.HasReviewsOrTestimonials,
		OnlineBooking:        r.HasOnlineBookingOrForm,
		SchemaMarkup:         r.UsesBasicSchemaMarkup,
		NAPConsistent:        r.HasConsistentNameAddressPhone,
		LoadsFast:            r.HasFastLoadTimeClaim,
		ContentMatchesIntent: r.ContentMatchesIntent,
	}
}

type evaluationOut struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Score     float64   `json:"score"`
	Badge     string    `json:"badge"`
	Evidence  []string  `json:"evidence"`
	CreatedAt time.Time `json:"created_at"`
}

func toEvaluationOut(e domain.Evaluation) evaluationOut {
	return evaluationOut{
		ID:        e.ID,
		CompanyID: e.CompanyID,
		Score:     e.Score,
		Badge:     string(e.Badge),
		Evidence:  e.Evidence,
		CreatedAt: e.CreatedAt,
	}
}

type errorBody struct {
	Detail errorDetail `json:"detail"`
}

type errorDetail struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
