package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/trademinutes/tradeflow/config"
	"github.com/trademinutes/tradeflow/internal/metrics"
)

// Service wires the DSL toolchain into HTTP handlers.
type Service struct {
	logger    *zap.Logger
	cfg       *config.Config
	collector *metrics.Collector
	limiter   *rate.Limiter
}

// NewService creates the HTTP service. The collector may be nil when
// metrics are not wired (tests).
func NewService(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector) *Service {
	s := &Service{
		logger:    logger.With(zap.String("component", "api")),
		cfg:       cfg,
		collector: collector,
	}
	if cfg.Server.RateLimitRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst)
	}
	return s
}

// LoadRoutes registers the toolchain handlers on the given router.
func (s *Service) LoadRoutes(parent *mux.Router) {
	router := parent.PathPrefix("/api/v1").Subrouter()
	router.StrictSlash(false)
	router.Use(s.requestIDMiddleware, s.loggingMiddleware, s.rateLimitMiddleware, jsonMiddleware)

	router.HandleFunc("/parse", s.HandleParse).Methods("POST")
	router.HandleFunc("/validate", s.HandleValidate).Methods("POST")
	router.HandleFunc("/convert", s.HandleConvert).Methods("POST")
	router.HandleFunc("/execute", s.HandleExecute).Methods("POST")

	parent.HandleFunc("/healthz", s.HandleHealth).Methods("GET")
}

// jsonMiddleware sets the Content-Type header to application/json.
func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware assigns each request a uuid, echoed in the
// X-Request-ID response header.
func (s *Service) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for access logging and
// metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Service) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		s.logger.Info("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", duration),
			zap.String("request_id", w.Header().Get("X-Request-ID")))

		if s.collector != nil {
			s.collector.RecordHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(recorder.status), duration)
		}
	})
}

func (s *Service) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
