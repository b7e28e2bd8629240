package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/scriptguard/internal/middleware"
	"github.com/bryanwahyu/scriptguard/internal/response"
)

// maxBodyBytes leaves room for JSON escaping around the largest script.
const maxBodyBytes = 2*middleware.MaxContentBytes + 4096

// Options selects the optional parts of the middleware stack.
type Options struct {
	Logger         *slog.Logger
	APIKeys        map[string]string
	RateLimiter    *middleware.RateLimiter
	CORSOrigins    []string
	HealthCheckers map[string]middleware.HealthChecker
	HealthTimeout  time.Duration
}

type Router struct {
	handler *response.Handler
	logger  *slog.Logger
}

func NewRouter(handler *response.Handler, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rt := &Router{handler: handler, logger: logger}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logging(logger))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(chimw.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}
	if len(opts.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(opts.APIKeys))
	}
	if opts.RateLimiter != nil {
		mux.Use(middleware.RateLimitMiddleware(opts.RateLimiter))
	}

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers, opts.HealthTimeout))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/scripts", func(r chi.Router) {
		r.Post("/analyze", rt.wrap(rt.handleAnalyze))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap turns handler errors into envelopes.
func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeEnvelope(w, response.BadRequest("request body exceeds the size limit"))
				return
			}
			rt.logger.ErrorContext(req.Context(), "request failed", "error", err)
			writeEnvelope(w, response.Error(err.Error()))
		}
	}
}

// POST /v1/scripts/analyze
// Body: {"content": "...", "creator_name": "...", "brief_type": "..."}
func (rt *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	writeEnvelope(w, rt.handler.Handle(req.Context(), body))
	return nil
}

// writeEnvelope sends the envelope body with its status code.
func writeEnvelope(w http.ResponseWriter, env response.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.StatusCode)
	_ = json.NewEncoder(w).Encode(env.Body)
}
