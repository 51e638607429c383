package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/vogiaan1904/branchqueue/pkg/logger"
)

type RouterConfig struct {
	AllowedOrigins []string
	// Display serves the websocket display feed; Metrics the prometheus
	// exposition. Either may be nil.
	Display http.Handler
	Metrics http.Handler
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
	return c.Handler
}

func NewRouter(h *HTTPHandler, cfg RouterConfig, l logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.HTTPLogger(l))
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	r.Get("/health", h.HealthCheck)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	if cfg.Display != nil {
		r.Method(http.MethodGet, "/ws/display", cfg.Display)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tickets", func(r chi.Router) {
			r.Post("/", h.IssueTicket)
			r.Get("/", h.ListTickets)
			r.Get("/waiting", h.ListWaiting)
			r.Post("/{id}/recall", h.RecallTicket)
			r.Post("/{id}/finish", h.FinishTicket)
		})

		r.Post("/counters/{counter}/call", h.CallNext)
		r.Get("/board", h.GetBoard)

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", h.ListDepartments)
			r.Post("/", h.AddDepartment)
			r.Delete("/{id}", h.RemoveDepartment)
		})

		r.Route("/playlist", func(r chi.Router) {
			r.Get("/", h.ListPlaylist)
			r.Post("/", h.AddMedia)
			r.Delete("/{id}", h.RemoveMedia)
		})
	})

	return r
}
