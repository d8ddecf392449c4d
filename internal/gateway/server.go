// Package gateway is the HTTP boundary: one publish endpoint plus health
// and metrics, behind CORS, request-id, and request-logging middleware.
package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blacktop/hubcast/internal/config"
	"github.com/blacktop/hubcast/internal/logutil"
	"github.com/blacktop/hubcast/internal/social"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Server wraps the router and the underlying http.Server.
type Server struct {
	router   *mux.Router
	server   *http.Server
	handlers *Handlers
	cfg      config.Server
}

// NewServer builds the gateway around a dispatcher.
func NewServer(cfg config.Server, dispatcher *social.Dispatcher) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		handlers: NewHandlers(dispatcher),
		cfg:      cfg,
	}
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)
	s.router.Use(s.corsMiddleware)

	s.router.HandleFunc("/", s.handlers.Publish).Methods(http.MethodPost)
	s.router.HandleFunc("/", s.handlers.Preflight).Methods(http.MethodOptions)
	s.router.HandleFunc("/healthz", s.handlers.Health).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// requestIDMiddleware tags each request with a short unique id.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLoggingMiddleware logs method, path, status, and duration.
func (s *Server) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID, _ := r.Context().Value(requestIDKey).(string)

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		logutil.Infof("req %s %s %s %d %v %s",
			requestID, r.Method, r.URL.Path, wrapper.statusCode, time.Since(start), r.RemoteAddr)
	})
}

// corsMiddleware sets the permissive CORS headers every response carries.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		next.ServeHTTP(w, r)
	})
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	logutil.Infof("gateway listening on %s", s.cfg.Address())
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logutil.Infof("shutting down gateway")
	return s.server.Shutdown(ctx)
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// responseWrapper captures the status code for logging.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
