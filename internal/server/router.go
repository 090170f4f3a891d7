package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/five82/bookgrid/internal/books"
	"github.com/five82/bookgrid/internal/page"
	"github.com/five82/bookgrid/internal/state"
)

// Options configure the HTTP surface.
type Options struct {
	// CORSOrigins lists the origins allowed to read /api/state. Empty
	// allows any origin.
	CORSOrigins []string

	// RefreshSeconds is the meta refresh interval of the loading page.
	// Zero uses one second; negative disables it.
	RefreshSeconds int

	Logger *zap.Logger
}

// Server serves the grid of one mount.
type Server struct {
	store   *state.Store
	router  chi.Router
	log     *zap.Logger
	origins []string
	refresh int
}

// New creates a server that renders store. The store is never refreshed
// from here; the caller owns the mount.
func New(store *state.Store, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	refresh := opts.RefreshSeconds
	if refresh == 0 {
		refresh = 1
	}

	s := &Server{
		store:   store,
		router:  chi.NewRouter(),
		log:     logger,
		origins: opts.CORSOrigins,
		refresh: max(refresh, 0),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handlePage)

	s.router.Route("/api", func(r chi.Router) {
		origins := s.origins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept"},
			MaxAge:         300,
		}))
		r.Get("/state", s.handleState)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := page.HTML(w, s.store.Snapshot(), page.Options{RefreshSeconds: s.refresh}); err != nil {
		s.log.Error("render page failed", zap.Error(err), zap.String("request_id", middleware.GetReqID(r.Context())))
	}
}

// stateResponse is the JSON view of a mount. The error cause is never
// exposed; clients get the same static message the page shows.
type stateResponse struct {
	Phase   string       `json:"phase"`
	Data    []books.Item `json:"data"`
	Message string       `json:"message,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	v := s.store.Snapshot()
	resp := stateResponse{Phase: v.Phase().String(), Data: []books.Item{}}
	switch v.Phase() {
	case state.PhaseReady:
		if v.Items != nil {
			resp.Data = v.Items
		}
	case state.PhaseError:
		resp.Message = page.ErrorMessage
	}
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, resp)
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// requestLogger is middleware.Logger writing to zap instead of the
// standard logger.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("http request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
