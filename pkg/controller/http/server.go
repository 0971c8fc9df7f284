package http

import (
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/inquiry/pkg/usecase"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	enableSentry  bool
	searchTimeout time.Duration
}

type Options func(*Server)

// WithSentry installs the Sentry HTTP middleware so panics and request
// scopes are reported
func WithSentry(enabled bool) Options {
	return func(s *Server) {
		s.enableSentry = enabled
	}
}

// WithSearchTimeout bounds each search request. Zero disables the bound.
func WithSearchTimeout(d time.Duration) Options {
	return func(s *Server) {
		s.searchTimeout = d
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	if s.enableSentry {
		r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(sessionMiddleware)

		r.Get("/filters/{fieldID}/values", s.filterValuesHandler)

		r.Route("/screens/{screen}", func(r chi.Router) {
			r.Get("/fields", s.screenFieldsHandler)
			r.Get("/filter-values", s.screenFilterValuesHandler)
			r.Get("/export", s.exportHandler)
			r.Post("/export/archive", s.archiveHandler)
			r.Post("/export/share", s.shareHandler)
			r.Get("/exports", s.exportListHandler)
		})

		r.Group(func(r chi.Router) {
			if s.searchTimeout > 0 {
				r.Use(middleware.Timeout(s.searchTimeout))
			}
			r.Post("/po-items/search", s.poItemSearchHandler)
			r.Post("/production-schedule/search", s.productionScheduleSearchHandler)
			r.Post("/pos-paid/search", s.posPaidSearchHandler)
		})

		r.Post("/production-schedule/validate", s.reportValidateHandler)
		r.Post("/production-schedule/report", s.reportSubmitHandler)
		r.Get("/reports", s.reportListHandler)
		r.Get("/reports/{reportID}", s.reportGetHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
