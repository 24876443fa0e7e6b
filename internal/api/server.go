// Package api serves the calculators, the validator and the input store
// over HTTP with fasthttp.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rpgo/nestegg/internal/calculation"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/observability"
	"github.com/rpgo/nestegg/internal/storage"
	"github.com/rpgo/nestegg/internal/validation"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Routes.
const (
	RouteFutureValue = "/v1/future-value"
	RouteRetirement  = "/v1/retirement"
	RouteValidate    = "/v1/validate"
	RouteScenarios   = "/v1/scenarios"
	RouteInputs      = "/v1/inputs"
	RouteHealth      = "/healthz"
	RouteMetrics     = "/metrics"
)

const (
	maxBodySize    = 1 << 20
	requestTimeout = 10 * time.Second
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server routes requests to the engine and the input store.
type Server struct {
	engine         *calculation.CalculationEngine
	store          storage.InputStore
	metrics        *observability.Metrics
	log            *slog.Logger
	metricsHandler fasthttp.RequestHandler

	// base is the parent of every request context; Serve replaces it.
	base context.Context
}

// New creates a server. A nil metrics disables /metrics; a nil logger discards.
func New(engine *calculation.CalculationEngine, store storage.InputStore, metrics *observability.Metrics, log *slog.Logger) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		engine:  engine,
		store:   store,
		metrics: metrics,
		log:     log,
		base:    context.Background(),
	}
	if metrics != nil {
		s.metricsHandler = fasthttpadaptor.NewFastHTTPHandler(metrics.Handler())
	}
	return s
}

// Handle is the fasthttp request handler.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	route := string(ctx.Path())

	s.route(ctx, route)

	status := ctx.Response.StatusCode()
	if s.metrics != nil && route != RouteMetrics {
		s.metrics.RecordRequest(route, strconv.Itoa(status), time.Since(start))
	}
	s.log.Debug("http.request",
		"method", string(ctx.Method()),
		"path", route,
		"status", status,
		"duration", time.Since(start))
}

func (s *Server) route(ctx *fasthttp.RequestCtx, route string) {
	switch route {
	case RouteFutureValue:
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleFutureValue(ctx)
		}
	case RouteRetirement:
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleRetirement(ctx)
		}
	case RouteValidate:
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleValidate(ctx)
		}
	case RouteScenarios:
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleScenarios(ctx)
		}
	case RouteInputs:
		s.handleInputs(ctx)
	case RouteHealth:
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case RouteMetrics:
		if s.metricsHandler == nil {
			writeError(ctx, fasthttp.StatusNotFound, "metrics are disabled")
			return
		}
		s.metricsHandler(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found: "+route)
	}
}

func (s *Server) handleFutureValue(ctx *fasthttp.RequestCtx) {
	var in domain.ProjectionInput
	if !decodeBody(ctx, &in) {
		return
	}
	res, err := s.engine.Project(in)
	s.recordCalculation("future_value", err)
	if err != nil {
		s.writeFailure(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, res)
}

func (s *Server) handleRetirement(ctx *fasthttp.RequestCtx) {
	var in domain.RetirementInput
	if !decodeBody(ctx, &in) {
		return
	}
	res, err := s.engine.Retire(in)
	s.recordCalculation("retirement", err)
	if err != nil {
		s.writeFailure(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, res)
}

func (s *Server) handleValidate(ctx *fasthttp.RequestCtx) {
	var in domain.ValidationInput
	if !decodeBody(ctx, &in) {
		return
	}
	res := validation.Validate(in)
	if s.metrics != nil {
		s.metrics.RecordValidation(res)
	}
	writeJSON(ctx, fasthttp.StatusOK, res)
}

func (s *Server) handleScenarios(ctx *fasthttp.RequestCtx) {
	var cfg domain.Configuration
	if !decodeBody(ctx, &cfg) {
		return
	}
	if len(cfg.Scenarios) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one scenario is required")
		return
	}

	rctx, cancel := s.requestContext()
	defer cancel()
	cmp, err := s.engine.RunScenarios(rctx, &cfg)
	s.recordCalculation("scenarios", err)
	if err != nil {
		s.writeFailure(ctx, err)
		return
	}
	if s.metrics != nil {
		for _, sc := range cmp.Scenarios {
			s.metrics.RecordValidation(sc.Validation)
		}
	}
	writeJSON(ctx, fasthttp.StatusOK, cmp)
}

func (s *Server) handleInputs(ctx *fasthttp.RequestCtx) {
	if s.store == nil {
		writeError(ctx, fasthttp.StatusServiceUnavailable, "input store is not configured")
		return
	}

	rctx, cancel := s.requestContext()
	defer cancel()

	switch string(ctx.Method()) {
	case fasthttp.MethodGet:
		in, err := s.store.Load(rctx)
		if err != nil {
			s.writeFailure(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, in)
	case fasthttp.MethodPut:
		in := domain.DefaultInputs()
		if !decodeBody(ctx, &in) {
			return
		}
		if !in.ContributionFrequency.Valid() {
			writeError(ctx, fasthttp.StatusBadRequest, "Contribution frequency must be either 'monthly' or 'yearly'")
			return
		}
		if err := s.store.Save(rctx, in); err != nil {
			s.writeFailure(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, in)
	case fasthttp.MethodDelete:
		in, err := s.store.Reset(rctx)
		if err != nil {
			s.writeFailure(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, in)
	default:
		ctx.Response.Header.Set("Allow", "GET, PUT, DELETE")
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.base, requestTimeout)
}

func (s *Server) recordCalculation(calculator string, err error) {
	if s.metrics != nil {
		s.metrics.RecordCalculation(calculator, err)
	}
}

// writeFailure maps engine and store errors to status codes.
func (s *Server) writeFailure(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStorage):
		s.log.Error("http.storage_failure", "path", string(ctx.Path()), "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(ctx, fasthttp.StatusServiceUnavailable, err.Error())
	default:
		s.log.Error("http.failure", "path", string(ctx.Path()), "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
	}
}

func requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func decodeBody(ctx *fasthttp.RequestCtx, v any) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "Request body is required")
		return false
	}
	if len(body) > maxBodySize {
		writeError(ctx, fasthttp.StatusRequestEntityTooLarge, "Request body is too large")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.base = ctx
	srv := &fasthttp.Server{
		Handler:            s.Handle,
		Name:               "nestegg",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
		MaxRequestBodySize: maxBodySize,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Info("http.listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}
