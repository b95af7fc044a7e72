package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"findability/internal/ports"
)

// Options configures the HTTP layer. Zero values are usable.
type Options struct {
	Logger         *slog.Logger
	Registry       *prometheus.Registry
	Version        string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server exposes the company and evaluation services over JSON.
type Server struct {
	companies   ports.Companies
	evaluations ports.Evaluations
	store       ports.Pinger
	log         *slog.Logger
	registry    *prometheus.Registry
	metrics     *Metrics
	limiter     *rate.Limiter
	version     string
}

func New(companies ports.Companies, evaluations ports.Evaluations, store ports.Pinger, opts Options) *Server {
	s := &Server{
		companies:   companies,
		evaluations: evaluations,
		store:       store,
		log:         opts.Logger,
		registry:    opts.Registry,
		version:     opts.Version,
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.registry == nil {
		s.registry = NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)
	if opts.RateLimitRPS > 0 {
		burst := max(opts.RateLimitBurst, 1)
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}
	return s
}

// Routes returns the chi router with all endpoints and middleware mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(withRequestID, withVersion(s.version), s.observe, s.recoverer, s.rateLimit)

	r.Get("/health", s.health)
	r.Get("/readyz", s.ready)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/companies", func(r chi.Router) {
		r.Post("/", s.createCompany)
		r.Get("/", s.listCompanies)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getCompany)
			r.Patch("/", s.updateCompany)
			r.Delete("/", s.deleteCompany)
			r.Get("/evaluations", s.listEvaluations)
		})
	})
	r.Post("/evaluate", s.evaluate)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "nothing lives at "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not supported here")
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.log.WarnContext(ctx, "readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID binds the {id} path parameter the way generated handlers do.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) createCompany(w http.ResponseWriter, r *http.Request) {
	var body companyCreate
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "name: field required")
		return
	}
	c, err := s.companies.Create(r.Context(), body.toDomain())
	if err != nil {
		s.fail(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusCreated, toCompanyOut(c))
}

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	var q *string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "q: "+err.Error())
		return
	}
	query := ""
	if q != nil {
		query = *q
	}
	list, err := s.companies.List(r.Context(), query)
	if err != nil {
		s.fail(w, r, err, 0)
		return
	}
	out := make([]companyOut, 0, len(list))
	for _, c := range list {
		out = append(out, toCompanyOut(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := s.companies.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, id)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyOut(c))
}

func (s *Server) updateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body companyUpdate
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name.set && body.Name.value == nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "name: may not be null")
		return
	}
	c, err := s.companies.Update(r.Context(), id, body.toDomain())
	if err != nil {
		s.fail(w, r, err, id)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyOut(c))
}

func (s *Server) deleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.companies.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listEvaluations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := s.evaluations.History(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, id)
		return
	}
	out := make([]evaluationOut, 0, len(list))
	for _, e := range list {
		out = append(out, toEvaluationOut(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var body evaluateRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.CompanyID == nil {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "company_id: field required")
		return
	}
	ev, err := s.evaluations.Evaluate(r.Context(), *body.CompanyID, body.signals())
	if err != nil {
		s.fail(w, r, err, *body.CompanyID)
		return
	}
	s.metrics.RecordEvaluation(ev.Badge)
	s.log.InfoContext(r.Context(), "evaluation stored",
		"company_id", ev.CompanyID, "evaluation_id", ev.ID, "score", ev.Score, "badge", ev.Badge)
	writeJSON(w, http.StatusCreated, toEvaluationOut(ev))
}
