package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findability/internal/client"
	"findability/internal/domain"
)

type fakeAPI struct {
	companies   []client.Company
	listErr     error
	createErr   error
	evaluateErr error
	created     []client.NewCompany
	evaluated   []client.EvaluateRequest
}

func (f *fakeAPI) ListCompanies(context.Context) ([]client.Company, error) {
	return f.companies, f.listErr
}

func (f *fakeAPI) CreateCompany(_ context.Context, in client.NewCompany) (client.Company, error) {
	if f.createErr != nil {
		return client.Company{}, f.createErr
	}
	f.created = append(f.created, in)
	return client.Company{ID: int64(41 + len(f.created)), Name: in.Name}, nil
}

func (f *fakeAPI) Evaluate(_ context.Context, in client.EvaluateRequest) (client.Evaluation, error) {
	if f.evaluateErr != nil {
		return client.Evaluation{}, f.evaluateErr
	}
	f.evaluated = append(f.evaluated, in)
	res := domain.Evaluate(signalsOf(in))
	return client.Evaluation{ID: 1, CompanyID: in.CompanyID, Score: res.Score, Badge: string(res.Badge), Evidence: res.Evidence}, nil
}

func signalsOf(r client.EvaluateRequest) domain.SignalSet {
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

func newSession(api API, lines ...string) (*Session, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	in := strings.Join(lines, "\n")
	if len(lines) > 0 {
		in += "\n"
	}
	return New(api, strings.NewReader(in), &out, &errOut), &out, &errOut
}

func blankOptional() []string { return []string{"", "", "", "", "", ""} }

func TestFindOrCreateReusesExisting(t *testing.T) {
	api := &fakeAPI{companies: []client.Company{{ID: 7, Name: "Acme Co"}}}
	s, out, _ := newSession(api, append([]string{"  acme co "}, blankOptional()...)...)

	id, err := s.FindOrCreateCompany(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Empty(t, api.created)
	assert.Contains(t, out.String(), "Reusing company id 7 (Acme Co).")
}

func TestFindOrCreateCreatesNew(t *testing.T) {
	api := &fakeAPI{}
	s, out, _ := newSession(api, "Rocket Co", "https://rocket.example", "USA", "CA", "San Francisco", "", "")

	id, err := s.FindOrCreateCompany(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, []client.NewCompany{{
		Name:    "Rocket Co",
		Website: "https://rocket.example",
		Country: "USA",
		State:   "CA",
		City:    "San Francisco",
	}}, api.created)
	assert.Contains(t, out.String(), "Created company with id 42.")
}

func TestFindOrCreateRepromptsForName(t *testing.T) {
	api := &fakeAPI{}
	s, out, _ := newSession(api, append([]string{"", "   ", "Named Co"}, blankOptional()...)...)

	_, err := s.FindOrCreateCompany(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out.String(), "Name is required, give it a shot."))
	assert.Equal(t, "Named Co", api.created[0].Name)
}

func TestFindOrCreateListFailure(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("boom")}
	s, _, errOut := newSession(api, append([]string{"Retry Co"}, blankOptional()...)...)

	_, err := s.FindOrCreateCompany(context.Background())
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "Couldn't list companies: boom")
}

func TestFindOrCreateListHTTPError(t *testing.T) {
	api := &fakeAPI{listErr: &client.APIError{Status: 503, Body: "down for maintenance"}}
	s, _, errOut := newSession(api, append([]string{"Retry Co"}, blankOptional()...)...)

	_, err := s.FindOrCreateCompany(context.Background())
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "Couldn't list companies: api returned 503: down for maintenance")
	assert.NotContains(t, errOut.String(), "API said no")
}

func TestFindOrCreatePostHTTPError(t *testing.T) {
	api := &fakeAPI{createErr: &client.APIError{Status: 422, Body: "bad payload"}}
	s, _, errOut := newSession(api, append([]string{"Fresh Co"}, blankOptional()...)...)

	_, err := s.FindOrCreateCompany(context.Background())
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "API said no: bad payload")
}

func TestCollectSignalsAllYes(t *testing.T) {
	lines := make([]string, domain.SignalCount)
	for i := range lines {
		lines[i] = "y"
	}
	s, out, _ := newSession(&fakeAPI{}, lines...)

	set, err := s.CollectSignals()
	require.NoError(t, err)
	assert.Equal(t, domain.SignalCount, set.Count())
	assert.Contains(t, out.String(), "Does it have: contact page? [y/n]: ")
	assert.Contains(t, out.String(), "Does it have: content matches intent? [y/n]: ")
}

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y", true}, {"YES", true}, {" Yes ", true},
		{"n", false}, {"No", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, _, _ := newSession(&fakeAPI{}, tt.input)
			got, err := s.PromptYesNo("Check?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptYesNoRepromptsOnInvalid(t *testing.T) {
	s, out, _ := newSession(&fakeAPI{}, "maybe", "y")
	got, err := s.PromptYesNo("Check?")
	require.NoError(t, err)
	assert.True(t, got)
	assert.Contains(t, out.String(), "Please answer y/yes or n/no.")
}

func TestPromptEOF(t *testing.T) {
	s, _, errOut := newSession(&fakeAPI{})
	_, err := s.Prompt("Name: ")
	assert.ErrorIs(t, err, ErrAborted)
	assert.Contains(t, errOut.String(), "Bye!")
}

func TestPromptReadErrorIsReported(t *testing.T) {
	var out, errOut bytes.Buffer
	readErr := errors.New("terminal went away")
	s := New(&fakeAPI{}, iotest.ErrReader(readErr), &out, &errOut)

	_, err := s.Prompt("Name: ")
	assert.ErrorIs(t, err, readErr)
	assert.Contains(t, errOut.String(), "Couldn't read input: terminal went away")
	assert.NotContains(t, errOut.String(), "Bye!")
}

func TestPromptLastLineWithoutNewline(t *testing.T) {
	var out, errOut bytes.Buffer
	s := New(&fakeAPI{}, strings.NewReader("Tail Co"), &out, &errOut)
	got, err := s.Prompt("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Tail Co", got)
}

func TestRunHappyPath(t *testing.T) {
	signalInputs := []string{"y", "n", "y", "y", "n", "y", "n", "y", "y", "n"}
	lines := append(append([]string{"CLI Co"}, blankOptional()...), signalInputs...)
	api := &fakeAPI{}
	s, out, _ := newSession(api, lines...)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []client.NewCompany{{Name: "CLI Co"}}, api.created)
	require.Len(t, api.evaluated, 1)
	assert.Equal(t, client.EvaluateRequest{
		CompanyID:                     42,
		HasContactPage:                true,
		HasClearServicesPage:          false,
		HasGMBOrMapsListing:           true,
		HasRecentUpdates:              true,
		HasReviewsOrTestimonials:      false,
		HasOnlineBookingOrForm:        true,
		UsesBasicSchemaMarkup:         false,
		HasConsistentNameAddressPhone: true,
		HasFastLoadTimeClaim:          true,
		ContentMatchesIntent:          false,
	}, api.evaluated[0])

	printed := out.String()
	assert.Contains(t, printed, `"company_id": 42`)
	assert.Contains(t, printed, `"badge": "excellent"`)
	assert.Contains(t, printed, `"+ maps/GMB listing"`)
	assert.Contains(t, printed, "Next steps:")
}

func TestRunEvaluateHTTPError(t *testing.T) {
	lines := append(append([]string{"Err Co"}, blankOptional()...), strings.Split(strings.Repeat("n,", domain.SignalCount-1)+"n", ",")...)
	api := &fakeAPI{evaluateErr: &client.APIError{Status: 500, Body: "evaluation failed"}}
	s, _, errOut := newSession(api, lines...)

	require.Error(t, s.Run(context.Background()))
	assert.Contains(t, errOut.String(), "API said no: evaluation failed")
}

func TestRunEvaluateTransportError(t *testing.T) {
	lines := append(append([]string{"Err Co"}, blankOptional()...), strings.Split(strings.Repeat("y,", domain.SignalCount-1)+"y", ",")...)
	api := &fakeAPI{evaluateErr: errors.New("connection refused")}
	s, _, errOut := newSession(api, lines...)

	require.Error(t, s.Run(context.Background()))
	assert.Contains(t, errOut.String(), "Couldn't call evaluate: connection refused")
}

func TestRunAbortsOnEOFDuringSignals(t *testing.T) {
	lines := append(append([]string{"Half Co"}, blankOptional()...), "y", "n")
	s, _, errOut := newSession(&fakeAPI{}, lines...)
	assert.ErrorIs(t, s.Run(context.Background()), ErrAborted)
	assert.Contains(t, errOut.String(), "Bye!")
}
