// Package server provides the HTTP API for askdoc.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/askdoc/internal/config"
	"github.com/hyperjump/askdoc/internal/metrics"
	"github.com/hyperjump/askdoc/internal/models"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Answerer runs the question-answering pipeline.
type Answerer interface {
	AnswerUpload(ctx context.Context, doc models.UploadedDocument, body io.Reader, question string) (*models.UploadAnswer, error)
	AnswerURL(ctx context.Context, url, question string) (*models.ScrapeAnswer, error)
}

// UploadDir reports on the temporary upload directory.
type UploadDir interface {
	Dir() string
	UsageBytes() (int64, error)
}

// Server is the HTTP server for the askdoc API.
type Server struct {
	answerer Answerer
	uploads  UploadDir
	config   *config.Config
	metrics  *metrics.Metrics
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies. m may be nil.
func NewServer(
	answerer Answerer,
	uploads UploadDir,
	cfg *config.Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Server {
	return &Server{
		answerer: answerer,
		uploads:  uploads,
		config:   cfg,
		metrics:  m,
		logger:   logger,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if t := s.config.Server.RequestTimeoutSeconds; t > 0 {
		r.Use(requestDeadline(time.Duration(t) * time.Second))
	}
	r.Use(middleware.Compress(5))
	r.Use(s.countRequests)

	r.Get("/", s.handleIndex)
	r.Post("/upload", s.handleUpload)
	r.Post("/scrape", s.handleScrape)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// requestDeadline bounds the request context. It never writes a response;
// handlers report the canceled outbound call themselves.
func requestDeadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveRequest(route, status)
	})
}
