// Package app contains the request pipeline: the ordered steps every
// billing request passes through before a generator produces its body.
// The pipeline is transport-independent; the HTTP adapter feeds it
// api.Request values and writes back api.Outcome values.
package app

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/artpar/billmock/domain/api"
	"github.com/artpar/billmock/domain/apierror"
	"github.com/artpar/billmock/domain/billing"
	"github.com/artpar/billmock/domain/validate"
	"github.com/artpar/billmock/ports"
)

// Invoice ids that select the negative lookup paths.
const (
	invoiceIDNotFound      = "INVALID_ID"
	invoiceIDWrongContract = "WRONG_CONTRACT"
)

// Deps carries everything the pipeline needs.
type Deps struct {
	Username string
	Password string
	Sentinel string // contract id (or prefix) treated as not found
	Limiter  ports.RateLimiter
	Clock    ports.Clock
	Fixtures billing.Fixtures
	Logger   zerolog.Logger
}

// Service runs the request pipeline. One instance serves all routes.
// The mutex guards the reloadable fields; limiter, clock and logger are
// fixed for the process lifetime.
type Service struct {
	mu           sync.RWMutex
	username     string
	passwordHash []byte
	sentinel     string
	gen          *billing.Generator

	limiter ports.RateLimiter
	clock   ports.Clock
	logger  zerolog.Logger
}

// New creates the pipeline service. The configured password is hashed
// once here; plaintext is not retained.
func New(d Deps) (*Service, error) {
	s := &Service{
		limiter: d.Limiter,
		clock:   d.Clock,
		logger:  d.Logger,
	}
	if err := s.Reconfigure(d); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconfigure swaps the credential pair, the not-found sentinel and the
// fixture set. Config hot reload calls this; in-flight requests finish
// on the values they started with.
func (s *Service) Reconfigure(d Deps) error {
	// MinCost: the mock fields bursts of test requests, and the hash
	// guards a fixture credential, not a real secret.
	hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = d.Username
	s.passwordHash = hash
	s.sentinel = d.Sentinel
	s.gen = billing.NewGenerator(d.Fixtures)
	return nil
}

func (s *Service) credentials() (username string, hash []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username, s.passwordHash
}

func (s *Service) notFoundSentinel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sentinel
}

func (s *Service) generator() *billing.Generator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// state is the per-request working set threaded through the steps.
type state struct {
	req api.Request
}

// A step inspects the state and either passes or short-circuits the
// request with an error envelope.
type step func(*state) *apierror.Response

// run executes steps in order, stopping at the first failure.
func run(st *state, steps ...step) *apierror.Response {
	for _, s := range steps {
		if e := s(st); e != nil {
			return e
		}
	}
	return nil
}

// sanitize scrubs every path and query parameter in place. Always the
// first step.
func (s *Service) sanitize(st *state) *apierror.Response {
	for k, v := range st.req.Params {
		st.req.Params[k] = validate.Sanitize(v)
	}
	for k, v := range st.req.Query {
		st.req.Query[k] = validate.Sanitize(v)
	}
	return nil
}

// authenticate checks the Basic credential pair. Success is silent.
func (s *Service) authenticate(st *state) *apierror.Response {
	a := st.req.Auth
	username, hash := s.credentials()
	if !a.Present || a.Username != username ||
		bcrypt.CompareHashAndPassword(hash, []byte(a.Password)) != nil {
		s.logger.Warn().
			Str("trace_id", st.req.TraceID).
			Str("client_ip", st.req.ClientIP).
			Msg("authentication failed")
		e := apierror.ErrCredentialsFailed
		return &e
	}
	return nil
}

// rateLimit admits or rejects the request keyed by client address.
// Applied to utilization routes only, after authentication.
func (s *Service) rateLimit(st *state) *apierror.Response {
	key := st.req.ClientIP
	if key == "" {
		key = "127.0.0.1"
	}
	res := s.limiter.Allow(key, s.clock.Now())
	if !res.Allowed {
		s.logger.Warn().
			Str("trace_id", st.req.TraceID).
			Str("client_ip", key).
			Dur("retry_after", res.RetryAfter).
			Msg("rate limit exceeded")
		e := apierror.ErrRateLimited
		return &e
	}
	return nil
}

// validateContract checks the contract path segment: format first (400),
// then the not-found sentinel (404).
func (s *Service) validateContract(st *state) *apierror.Response {
	contract := st.req.Params["contract"]
	if !validate.ContractFormat(contract) {
		e := apierror.ErrInvalidContractFormat
		return &e
	}
	if validate.UnknownContract(contract, s.notFoundSentinel()) {
		e := apierror.ErrContractNotFound
		return &e
	}
	return nil
}

// requirePeriod validates the period path segment.
func (s *Service) requirePeriod(st *state) *apierror.Response {
	if !validate.Period(st.req.Params["period"]) {
		e := apierror.ErrPeriodInvalid
		return &e
	}
	return nil
}

// requireDate validates the date query parameter. An absent parameter
// fails the same way as a malformed one.
func (s *Service) requireDate(st *state) *apierror.Response {
	if !validate.Date(st.req.Query["date"]) {
		e := apierror.ErrDateInvalid
		return &e
	}
	return nil
}

// lookupInvoice maps the fixed sentinel invoice ids to their 404s.
func (s *Service) lookupInvoice(st *state) *apierror.Response {
	switch st.req.Params["id"] {
	case invoiceIDNotFound:
		e := apierror.ErrInvoiceNotFound
		return &e
	case invoiceIDWrongContract:
		e := apierror.ErrInvoiceWrongContract
		return &e
	}
	return nil
}

// UsageForPeriod serves GET /{contract}/evn/{period}.
func (s *Service) UsageForPeriod(req api.Request) api.Outcome {
	st := &state{req: req}
	if e := run(st, s.sanitize, s.authenticate, s.validateContract, s.requirePeriod); e != nil {
		return api.Fail(*e)
	}
	return api.OK(s.generator().Usage(billing.UsageParams{
		ContractID: st.req.Params["contract"],
		Period:     st.req.Params["period"],
	}))
}

// UsageCurrent serves GET /{contract}/evn: the running month, without
// the CSV section.
func (s *Service) UsageCurrent(req api.Request) api.Outcome {
	st := &state{req: req}
	if e := run(st, s.sanitize, s.authenticate, s.validateContract); e != nil {
		return api.Fail(*e)
	}
	includeCSV := false
	return api.OK(s.generator().Usage(billing.UsageParams{
		ContractID: st.req.Params["contract"],
		Period:     validate.CurrentPeriod(s.clock.Now()),
		IncludeCSV: &includeCSV,
	}))
}

// InvoiceByID serves GET /{contract}/invoices/{id}.
func (s *Service) InvoiceByID(req api.Request) api.Outcome {
	st := &state{req: req}
	if e := run(st, s.sanitize, s.authenticate, s.validateContract, s.lookupInvoice); e != nil {
		return api.Fail(*e)
	}
	return api.OK(s.generator().Invoice(billing.InvoiceParams{
		InvoiceID:  st.req.Params["id"],
		ContractID: st.req.Params["contract"],
	}))
}

// Invoices serves GET /{contract}/invoices: a one-element list whose
// entries omit datacenter detail.
func (s *Service) Invoices(req api.Request) api.Outcome {
	st := &state{req: req}
	if e := run(st, s.sanitize, s.authenticate, s.validateContract); e != nil {
		return api.Fail(*e)
	}
	includeDCs := false
	return api.OK([]billing.Invoice{s.generator().Invoice(billing.InvoiceParams{
		ContractID:         st.req.Params["contract"],
		IncludeDatacenters: &includeDCs,
	})})
}

// Products serves GET /{contract}/products?date=YYYY-MM-DD. The date
// parameter is required.
func (s *Service) Products(req api.Request) api.Outcome {
	st := &state{req: req}
	if e := run(st, s.sanitize, s.authenticate, s.validateContract, s.requireDate); e != nil {
		return api.Fail(*e)
	}
	return api.OK(s.generator().Catalog(billing.CatalogParams{
		ContractID: st.req.Params["contract"],
	}))
}

// TrafficForPeriod serves GET /{contract}/traffic/{period}.
func (s *Service) TrafficForPeriod(req api.Request) api.Outcome {
	st := &state{req: req}
	if e := run(st, s.sanitize, s.authenticate, s.validateContract, s.requirePeriod); e != nil {
		return api.Fail(*e)
	}
	return api.OK(s.generator().Traffic(billing.TrafficParams{
		ContractID: st.req.Params["contract"],
		Period:     st.req.Params["period"],
	}))
}

// TrafficCurrent serves GET /{contract}/traffic: the running month with
// empty datacenters.
func (s *Service) TrafficCurrent(req api.Request) api.Outcome {
	st := &state{req: req}
	if e := run(st, s.sanitize, s.authenticate, s.validateContract); e != nil {
		return api.Fail(*e)
	}
	includeData := false
	return api.OK(s.generator().Traffic(billing.TrafficParams{
		ContractID:  st.req.Params["contract"],
		Period:      validate.CurrentPeriod(s.clock.Now()),
		IncludeData: &includeData,
	}))
}

// UtilizationForPeriod serves GET /{contract}/utilization/{period}.
// Rate limited after authentication, before contract validation.
func (s *Service) UtilizationForPeriod(req api.Request) api.Outcome {
	st := &state{req: req}
	if e := run(st, s.sanitize, s.authenticate, s.rateLimit, s.validateContract, s.requirePeriod); e != nil {
		return api.Fail(*e)
	}
	return api.OK(s.generator().Utilization(billing.UtilizationParams{
		ContractID: st.req.Params["contract"],
		Period:     st.req.Params["period"],
	}))
}

// UtilizationCurrent serves GET /{contract}/utilization: the running
// month with empty datacenters. Rate limited like the period variant.
func (s *Service) UtilizationCurrent(req api.Request) api.Outcome {
	st := &state{req: req}
	if e := run(st, s.sanitize, s.authenticate, s.rateLimit, s.validateContract); e != nil {
		return api.Fail(*e)
	}
	includeData := false
	return api.OK(s.generator().Utilization(billing.UtilizationParams{
		ContractID:  st.req.Params["contract"],
		Period:      validate.CurrentPeriod(s.clock.Now()),
		IncludeData: &includeData,
	}))
}
