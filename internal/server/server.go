// Package server exposes the projection engine and the scenario store over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/config"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/storage"
	"github.com/rpgo/savings-projector/internal/storage/remote"
)

const defaultRequestTimeout = 10 * time.Second

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server routes requests to the engine and the repository.
type Server struct {
	engine         *calculation.ProjectionEngine
	repo           storage.ScenarioRepository
	parser         *config.InputParser
	logger         *slog.Logger
	requestTimeout time.Duration
	srv            *fasthttp.Server
}

// New creates a server. A nil logger falls back to slog.Default().
func New(engine *calculation.ProjectionEngine, repo storage.ScenarioRepository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:         engine,
		repo:           repo,
		parser:         config.NewInputParser(),
		logger:         logger,
		requestTimeout: defaultRequestTimeout,
	}
	s.srv = &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "savings-projector",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

// ListenAndServe serves on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("projection service starting", "addr", addr)
	return s.srv.ListenAndServe(addr)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.srv.Serve(ln)
}

// Shutdown stops accepting connections and waits for open requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.ShutdownWithContext(ctx)
}

// Handler returns the routing handler wrapped with request logging.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.logRequests(s.route)
}

func (s *Server) logRequests(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		s.logger.Info("request",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"duration", time.Since(start))
	}
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := strings.TrimRight(string(ctx.Path()), "/")

	switch {
	case path == "/healthz":
		if allow(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		}
	case path == "/presets":
		if allow(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, domain.RiskProfiles())
		}
	case path == "/project":
		if allow(ctx, fasthttp.MethodPost) {
			s.handleProject(ctx)
		}
	case path == "/scenarios":
		switch {
		case ctx.IsGet():
			s.handleListScenarios(ctx)
		case ctx.IsPost():
			s.handleSaveScenario(ctx)
		default:
			methodNotAllowed(ctx, fasthttp.MethodGet, fasthttp.MethodPost)
		}
	case strings.HasPrefix(path, "/scenarios/"):
		rest := strings.TrimPrefix(path, "/scenarios/")
		id, sub, _ := strings.Cut(rest, "/")
		if id == "" || (sub != "" && sub != "projection") {
			writeError(ctx, fasthttp.StatusNotFound, "Not found")
			return
		}
		if !allow(ctx, fasthttp.MethodGet) {
			return
		}
		if sub == "projection" {
			s.handleScenarioProjection(ctx, id)
			return
		}
		s.handleLoadScenario(ctx, id)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (s *Server) handleProject(ctx *fasthttp.RequestCtx) {
	var req domain.ProjectRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := config.ValidatePlan(req.Params, req.Extras); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.engine.Calculate(req.Params, req.Extras))
}

func (s *Server) handleListScenarios(ctx *fasthttp.RequestCtx) {
	c, cancel := s.requestContext()
	defer cancel()

	refs, err := s.repo.List(c)
	if err != nil {
		s.writeStoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, refs)
}

func (s *Server) handleSaveScenario(ctx *fasthttp.RequestCtx) {
	var sc domain.Scenario
	if err := json.Unmarshal(ctx.PostBody(), &sc); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	plan := &domain.Configuration{Scenarios: []domain.Scenario{sc}}
	if err := s.parser.ApplyDefaults(plan); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if err := s.parser.ValidateConfiguration(plan); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	c, cancel := s.requestContext()
	defer cancel()

	id, err := s.repo.Save(c, &plan.Scenarios[0])
	if err != nil {
		s.writeStoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleLoadScenario(ctx *fasthttp.RequestCtx, id string) {
	c, cancel := s.requestContext()
	defer cancel()

	sc, err := s.repo.Load(c, id)
	if err != nil {
		s.writeStoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, sc)
}

func (s *Server) handleScenarioProjection(ctx *fasthttp.RequestCtx, id string) {
	c, cancel := s.requestContext()
	defer cancel()

	sc, err := s.repo.Load(c, id)
	if err != nil {
		s.writeStoreError(ctx, err)
		return
	}
	summary, err := s.engine.RunScenario(c, sc)
	if err != nil {
		s.logger.Error("projection failed", "id", id, "error", err)
		captureError(ctx, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Projection failed")
		return
	}
	if ctx.QueryArgs().GetBool("timeline") && summary.Timeline == nil {
		summary.Timeline = calculation.Timeline(sc.Params, sc.Extras)
	}
	writeJSON(ctx, fasthttp.StatusOK, summary)
}

// requestContext bounds repository calls made on behalf of one request.
func (s *Server) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.requestTimeout)
}

func (s *Server) writeStoreError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, storage.ErrScenarioNotFound):
		writeError(ctx, fasthttp.StatusNotFound, "Scenario not found")
	case errors.Is(err, remote.ErrReadOnly):
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Scenario store is read-only")
	default:
		s.logger.Error("scenario store failure", "path", string(ctx.Path()), "error", err)
		captureError(ctx, err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Scenario store unavailable")
	}
}

// captureError reports an internal failure with the request route attached.
// It is a no-op until sentry.Init has been called with a DSN.
func captureError(ctx *fasthttp.RequestCtx, err error) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("http.method", string(ctx.Method()))
		scope.SetTag("http.path", string(ctx.Path()))
		sentry.CaptureException(err)
	})
}

func allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	methodNotAllowed(ctx, method)
	return false
}

func methodNotAllowed(ctx *fasthttp.RequestCtx, methods ...string) {
	ctx.Response.Header.Set("Allow", strings.Join(methods, ", "))
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}
