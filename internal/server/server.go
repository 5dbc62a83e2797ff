// Package server exposes extraction and the article store over HTTP.
//
// Routes:
//
//	GET  /health
//	POST /parse                    TEI body, ?store=true to save
//	POST /process                  PDF body, needs GROBID
//	GET  /articles                 ?limit=&author=
//	GET  /articles/:id
//	GET  /articles/:id/citations
//	GET  /articles/:id/bibtex
//	GET  /search                   ?q=&limit=&author=
//
// The /articles and /search routes exist only when a store is configured.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/matsen/teiextract/internal/extract"
	"github.com/matsen/teiextract/internal/grobid"
	"github.com/matsen/teiextract/internal/pdf"
	"github.com/matsen/teiextract/internal/storage"
	"github.com/matsen/teiextract/internal/tei"
)

const (
	// HeaderRequestID carries the request id; one is generated when absent.
	HeaderRequestID = "X-Request-ID"

	// MaxBodySize bounds uploaded PDFs and TEI documents.
	MaxBodySize = 64 * 1024 * 1024

	// DefaultLimit is the page size of list and search routes.
	DefaultLimit = 50
)

// Server is the HTTP front end.
type Server struct {
	app    *fiber.App
	db     *storage.DB
	ex     *extract.Extractor
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the store routes and ?store=true.
func WithStore(db *storage.DB) Option {
	return func(s *Server) {
		s.db = db
	}
}

// WithExtractor sets the extractor. Without one only TEI can be parsed.
func WithExtractor(ex *extract.Extractor) Option {
	return func(s *Server) {
		s.ex = ex
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// New builds the server and registers its routes.
func New(opts ...Option) *Server {
	s := &Server{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.ex == nil {
		s.ex = extract.New(extract.WithLogger(s.logger))
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "tei",
		BodyLimit:             MaxBodySize,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(s.requestID)
	s.routes()
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", "addr", addr, "store", s.db != nil)
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)
	s.app.Post("/parse", s.parse)
	s.app.Post("/process", s.process)

	if s.db == nil {
		return
	}
	articles := s.app.Group("/articles")
	articles.Get("/", s.listArticles)
	articles.Get("/:id", s.getArticle)
	articles.Get("/:id/citations", s.articleCitations)
	articles.Get("/:id/bibtex", s.articleBibTeX)
	s.app.Get("/search", s.search)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	id, _ := c.Locals(HeaderRequestID).(string)
	return c.Status(code).JSON(ErrorResponse{Error: err.Error(), RequestID: id})
}

func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(HeaderRequestID, id)
	c.Locals(HeaderRequestID, id)

	start := time.Now()
	err := c.Next()
	s.logger.Debug("request",
		"id", id,
		"method", c.Method(),
		"path", c.Path(),
		"duration", time.Since(start),
		"error", err,
	)
	return err
}

// statusFor maps extraction errors to HTTP status codes.
func statusFor(err error) int {
	var apiErr *grobid.APIError
	switch {
	case errors.Is(err, extract.ErrNoGrobid):
		return fiber.StatusNotImplemented
	case errors.Is(err, pdf.ErrNotPDF):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, tei.ErrIllFormed), tei.IsStructural(err):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, grobid.ErrServiceUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, grobid.ErrNetworkError), errors.As(err, &apiErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
