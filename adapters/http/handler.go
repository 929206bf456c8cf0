// Package http provides the HTTP transport for the mock billing API.
package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"

	"github.com/artpar/billmock/adapters/metrics"
	"github.com/artpar/billmock/app"
	_ "github.com/artpar/billmock/docs/swagger" // swagger docs
	"github.com/artpar/billmock/domain/api"
	"github.com/artpar/billmock/domain/apierror"
)

// Handler serves the billing routes by feeding the pipeline and writing
// back its outcomes.
type Handler struct {
	service *app.Service
	logger  zerolog.Logger
	metrics *metrics.Collector
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *app.Service, logger zerolog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// NewHandlerWithMetrics creates a new HTTP handler with metrics.
func NewHandlerWithMetrics(service *app.Service, logger zerolog.Logger, m *metrics.Collector) *Handler {
	return &Handler{service: service, logger: logger, metrics: m}
}

// Ping is the liveness probe. No auth, fixed body.
//
//	@Summary	Liveness check
//	@Tags		Health
//	@Produce	plain
//	@Success	200	{string}	string	"1"
//	@Router		/intern/ping [get]
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("1"))
}

// UsageForPeriod returns the EVN usage export for one month.
//
//	@Summary	Usage export (EVN) for a period
//	@Tags		Billing
//	@Produce	json
//	@Param		contract	path		string	true	"Contract id"
//	@Param		period		path		string	true	"Period YYYY-MM"
//	@Success	200			{object}	billing.UsageExport
//	@Failure	401			{object}	apierror.Response
//	@Failure	422			{object}	apierror.Response
//	@Security	BasicAuth
//	@Router		/{contract}/evn/{period} [get]
func (h *Handler) UsageForPeriod(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.UsageForPeriod)
}

// UsageCurrent returns the running month's usage export without CSV.
//
//	@Summary	Usage export (EVN) for the current month
//	@Tags		Billing
//	@Produce	json
//	@Param		contract	path		string	true	"Contract id"
//	@Success	200			{object}	billing.UsageExport
//	@Security	BasicAuth
//	@Router		/{contract}/evn [get]
func (h *Handler) UsageCurrent(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.UsageCurrent)
}

// InvoiceByID returns a single invoice.
//
//	@Summary	Single invoice lookup
//	@Tags		Billing
//	@Produce	json
//	@Param		contract	path		string	true	"Contract id"
//	@Param		id			path		string	true	"Invoice id"
//	@Success	200			{object}	billing.Invoice
//	@Failure	404			{object}	apierror.Response
//	@Security	BasicAuth
//	@Router		/{contract}/invoices/{id} [get]
func (h *Handler) InvoiceByID(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.InvoiceByID)
}

// Invoices returns the invoice list without datacenter detail.
//
//	@Summary	Invoice list
//	@Tags		Billing
//	@Produce	json
//	@Param		contract	path	string	true	"Contract id"
//	@Success	200			{array}	billing.Invoice
//	@Security	BasicAuth
//	@Router		/{contract}/invoices [get]
func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.Invoices)
}

// Products returns the product catalog. The date query is required.
//
//	@Summary	Product catalog
//	@Tags		Billing
//	@Produce	json
//	@Param		contract	path		string	true	"Contract id"
//	@Param		date		query		string	true	"Date YYYY-MM-DD"
//	@Success	200			{object}	billing.ProductCatalog
//	@Failure	422			{object}	apierror.Response
//	@Security	BasicAuth
//	@Router		/{contract}/products [get]
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.Products)
}

// TrafficForPeriod returns the traffic report for one month.
//
//	@Summary	Traffic report for a period
//	@Tags		Billing
//	@Produce	json
//	@Param		contract	path		string	true	"Contract id"
//	@Param		period		path		string	true	"Period YYYY-MM"
//	@Success	200			{object}	billing.TrafficReport
//	@Security	BasicAuth
//	@Router		/{contract}/traffic/{period} [get]
func (h *Handler) TrafficForPeriod(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.TrafficForPeriod)
}

// TrafficCurrent returns the running month's traffic report, no data.
//
//	@Summary	Traffic report for the current month
//	@Tags		Billing
//	@Produce	json
//	@Param		contract	path		string	true	"Contract id"
//	@Success	200			{object}	billing.TrafficReport
//	@Security	BasicAuth
//	@Router		/{contract}/traffic [get]
func (h *Handler) TrafficCurrent(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.TrafficCurrent)
}

// UtilizationForPeriod returns the utilization report for one month.
// Rate limited.
//
//	@Summary	Utilization report for a period
//	@Tags		Billing
//	@Produce	json
//	@Param		contract	path		string	true	"Contract id"
//	@Param		period		path		string	true	"Period YYYY-MM"
//	@Success	200			{object}	billing.UtilizationReport
//	@Failure	429			{object}	apierror.Response
//	@Security	BasicAuth
//	@Router		/{contract}/utilization/{period} [get]
func (h *Handler) UtilizationForPeriod(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.UtilizationForPeriod)
}

// UtilizationCurrent returns the running month's utilization report,
// no data. Rate limited.
//
//	@Summary	Utilization report for the current month
//	@Tags		Billing
//	@Produce	json
//	@Param		contract	path		string	true	"Contract id"
//	@Success	200			{object}	billing.UtilizationReport
//	@Failure	429			{object}	apierror.Response
//	@Security	BasicAuth
//	@Router		/{contract}/utilization [get]
func (h *Handler) UtilizationCurrent(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.service.UtilizationCurrent)
}

// serve extracts the transport-neutral request, runs one pipeline
// operation, and writes the outcome.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, op func(api.Request) api.Outcome) {
	req := extractRequest(r)
	out := op(req)

	if out.Error != nil {
		h.observeError(out.Error)
		writeErrorEnvelope(w, *out.Error)
		return
	}
	writeJSON(w, out.Status, out.Body)
}

func (h *Handler) observeError(e *apierror.Response) {
	if h.metrics == nil {
		return
	}
	switch e.Status {
	case http.StatusUnauthorized:
		h.metrics.AuthFailures.Inc()
	case http.StatusTooManyRequests:
		h.metrics.RateLimitHits.Inc()
	}
}

// extractRequest maps the chi request onto the pipeline's request type.
func extractRequest(r *http.Request) api.Request {
	params := map[string]string{}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[i]
		}
	}

	query := map[string]string{}
	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			query[key] = vals[0]
		}
	}

	user, pass, ok := r.BasicAuth()

	return api.Request{
		Params:   params,
		Query:    query,
		Auth:     api.Credentials{Username: user, Password: pass, Present: ok},
		ClientIP: extractIP(r),
		TraceID:  middleware.GetReqID(r.Context()),
	}
}

// extractIP extracts the client IP from the request.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeErrorEnvelope writes the error envelope, adding the Basic
// challenge on 401 so browser-driven test clients re-prompt.
func writeErrorEnvelope(w http.ResponseWriter, e apierror.Response) {
	if e.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Basic realm="billing-mock"`)
	}
	writeJSON(w, e.Status, e)
}

// RouterConfig holds optional configuration for the router.
type RouterConfig struct {
	Metrics        *metrics.Collector
	MetricsPath    string // default "/metrics"
	EnableOpenAPI  bool
	RequestTimeout time.Duration // default 30s
}

// NewRouter creates the main HTTP router with default config.
func NewRouter(h *Handler, logger zerolog.Logger) chi.Router {
	return NewRouterWithConfig(h, logger, RouterConfig{})
}

// NewRouterWithConfig creates the main HTTP router.
func NewRouterWithConfig(h *Handler, logger zerolog.Logger, cfg RouterConfig) chi.Router {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(logger))
	r.Use(NewRecoverMiddleware(logger))
	r.Use(middleware.Timeout(timeout))

	if cfg.Metrics != nil {
		r.Use(NewMetricsMiddleware(cfg.Metrics))
	}

	// Health endpoint (no auth required)
	r.Get("/intern/ping", h.Ping)

	// Metrics endpoint
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.Handler())
	}

	// OpenAPI/Swagger endpoints
	if cfg.EnableOpenAPI {
		r.Get("/.well-known/openapi.json", func(w http.ResponseWriter, r *http.Request) {
			doc, err := swag.ReadDoc()
			if err != nil {
				writeErrorEnvelope(w, apierror.ErrUnexpected)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Write([]byte(doc))
		})

		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/.well-known/openapi.json"),
		))
	}

	// Everything unmatched is the endpoint-not-found envelope. Set
	// before mounting the contract subtree so it inherits the handlers.
	notFound := func(w http.ResponseWriter, r *http.Request) {
		writeErrorEnvelope(w, apierror.ErrEndpointNotFound)
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	// Billing routes, all under a contract-id path segment
	r.Route("/{contract}", func(r chi.Router) {
		r.Get("/evn/{period}", h.UsageForPeriod)
		r.Get("/evn", h.UsageCurrent)
		r.Get("/invoices/{id}", h.InvoiceByID)
		r.Get("/invoices", h.Invoices)
		r.Get("/products", h.Products)
		r.Get("/traffic/{period}", h.TrafficForPeriod)
		r.Get("/traffic", h.TrafficCurrent)
		r.Get("/utilization/{period}", h.UtilizationForPeriod)
		r.Get("/utilization", h.UtilizationCurrent)
	})

	return r
}
