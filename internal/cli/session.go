// Package cli runs the interactive data-entry session against the API.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"findability/internal/client"
	"findability/internal/domain"
)

// ErrAborted is returned when input ends before the session finishes.
var ErrAborted = errors.New("input closed")

// API is the subset of the HTTP client the session needs.
type API interface {
	ListCompanies(ctx context.Context) ([]client.Company, error)
	CreateCompany(ctx context.Context, in client.NewCompany) (client.Company, error)
	Evaluate(ctx context.Context, in client.EvaluateRequest) (client.Evaluation, error)
}

// Session reads answers from In and writes prompts to Out and failures to Err.
type Session struct {
	api API
	in  *bufio.Reader
	out io.Writer
	err io.Writer
}

func New(api API, in io.Reader, out, errOut io.Writer) *Session {
	return &Session{api: api, in: bufio.NewReader(in), out: out, err: errOut}
}

// Run finds or creates a company, asks for every signal and prints the
// stored evaluation. Any returned error has already been reported on Err.
func (s *Session) Run(ctx context.Context) error {
	id, err := s.FindOrCreateCompany(ctx)
	if err != nil {
		return err
	}
	signals, err := s.CollectSignals()
	if err != nil {
		return err
	}

	ev, err := s.api.Evaluate(ctx, evaluateRequest(id, signals))
	if err != nil {
		return s.report("Couldn't call evaluate", err)
	}

	summary, err := json.MarshalIndent(struct {
		CompanyID int64    `json:"company_id"`
		Score     float64  `json:"score"`
		Badge     string   `json:"badge"`
		Evidence  []string `json:"evidence"`
	}{ev.CompanyID, ev.Score, ev.Badge, ev.Evidence}, "", "  ")
	if err != nil {
		fmt.Fprintf(s.err, "Couldn't print the result: %v\n", err)
		return err
	}
	fmt.Fprintf(s.out, "\nNice, here's your score:\n\n%s\n", summary)
	fmt.Fprintln(s.out, "\nNext steps:")
	fmt.Fprintln(s.out, "  1) start API  ->  go run ./cmd/server")
	fmt.Fprintln(s.out, "  2) run CLI    ->  go run ./cmd/cli")
	return nil
}

// Prompt prints msg and returns the trimmed answer.
func (s *Session) Prompt(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			fmt.Fprintf(s.err, "\nCouldn't read input: %v\n", err)
			return "", err
		}
		// A last line without a newline still counts.
		if line == "" {
			fmt.Fprintln(s.err, "\nBye!")
			return "", ErrAborted
		}
	}
	return strings.TrimSpace(line), nil
}

// PromptYesNo asks until the answer is y, yes, n or no.
func (s *Session) PromptYesNo(msg string) (bool, error) {
	for {
		ans, err := s.Prompt(msg + " [y/n]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(ans) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(s.out, "Please answer y/yes or n/no.")
	}
}

// FindOrCreateCompany reuses a company with the same name, ignoring case and
// surrounding spaces, or creates one.
func (s *Session) FindOrCreateCompany(ctx context.Context) (int64, error) {
	fmt.Fprintln(s.out, "Let's grab the company details (only name is required).")
	var in client.NewCompany
	for in.Name == "" {
		name, err := s.Prompt("Name: ")
		if err != nil {
			return 0, err
		}
		if name == "" {
			fmt.Fprintln(s.out, "Name is required, give it a shot.")
		}
		in.Name = name
	}
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"Website", &in.Website},
		{"Country", &in.Country},
		{"State", &in.State},
		{"City", &in.City},
		{"Industry", &in.Industry},
		{"Niche", &in.Niche},
	} {
		v, err := s.Prompt(f.label + " (optional): ")
		if err != nil {
			return 0, err
		}
		*f.dst = v
	}

	existing, err := s.api.ListCompanies(ctx)
	if err != nil {
		fmt.Fprintf(s.err, "Couldn't list companies: %v\n", err)
		return 0, err
	}
	want := strings.ToLower(strings.TrimSpace(in.Name))
	for _, c := range existing {
		if strings.ToLower(strings.TrimSpace(c.Name)) == want {
			fmt.Fprintf(s.out, "Reusing company id %d (%s).\n", c.ID, c.Name)
			return c.ID, nil
		}
	}

	created, err := s.api.CreateCompany(ctx, in)
	if err != nil {
		return 0, s.report("Couldn't create company", err)
	}
	fmt.Fprintf(s.out, "Created company with id %d.\n", created.ID)
	return created.ID, nil
}

// CollectSignals asks one yes/no question per catalog signal, in order.
func (s *Session) CollectSignals() (domain.SignalSet, error) {
	fmt.Fprintln(s.out, "Now let's capture a few quick signals, just y/n.")
	answers := make(map[string]bool, domain.SignalCount)
	for _, name := range domain.Catalog() {
		ok, err := s.PromptYesNo("Does it have: " + name + "?")
		if err != nil {
			return domain.SignalSet{}, err
		}
		answers[name] = ok
	}
	return domain.NormalizeSignals(answers), nil
}

// report prints a create or evaluate failure. HTTP errors show the response body.
func (s *Session) report(what string, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(s.err, "API said no: %s\n", apiErr.Body)
	} else {
		fmt.Fprintf(s.err, "%s: %v\n", what, err)
	}
	return err
}

func evaluateRequest(id int64, s domain.SignalSet) client.EvaluateRequest {
	return client.EvaluateRequest{
		CompanyID:                     id,
		HasContactPage:                s.ContactPage,
		HasClearServicesPage:          s.ClearServicesPage,
		HasGMBOrMapsListing:           s.MapsListing,
		HasRecentUpdates:              s.RecentUpdates,
		HasReviewsOrTestimonials:      s.Reviews,
		HasOnlineBookingOrForm:        s.OnlineBooking,
		UsesBasicSchemaMarkup:         s.SchemaMarkup,
		HasConsistentNameAddressPhone: s.NAPConsistent,
		HasFastLoadTimeClaim:          s.LoadsFast,
		ContentMatchesIntent:          s.ContentMatchesIntent,
	}
}
