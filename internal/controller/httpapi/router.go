package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Freeeeeet/interview_scheduler/internal/service"
	"github.com/Freeeeeet/interview_scheduler/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// Pinger проверка доступности хранилища для /healthz
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	CORSOrigins []string
	// RateLimit запросов в секунду с одного IP, 0 отключает ограничение
	RateLimit int
	Health    Pinger
}

type Handler struct {
	candidates *service.CandidateService
	employees  *service.EmployeeService
	slots      *service.SlotService
	health     Pinger
	logger     *zap.Logger
}

func NewHandler(
	candidates *service.CandidateService,
	employees *service.EmployeeService,
	slots *service.SlotService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		candidates: candidates,
		employees:  employees,
		slots:      slots,
		logger:     logger,
	}
}

// NewRouter собирает chi роутер со всеми маршрутами API.
// Завершающий слэш необязателен: /candidates и /candidates/ ведут в один обработчик.
func NewRouter(h *Handler, opts Options) http.Handler {
	h.health = opts.Health

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(h.logger))
	r.Use(telemetry.MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	if opts.RateLimit > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimit, time.Second))
	}
	r.Use(middleware.StripSlashes)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", telemetry.Handler())

	r.Route("/candidates", func(r chi.Router) {
		r.Get("/", h.ListCandidates)
		r.Post("/", h.CreateCandidate)
	})
	r.Route("/candidate/{id}", func(r chi.Router) {
		r.Get("/", h.GetCandidate)
		r.Patch("/", h.UpdateCandidate)
		r.Delete("/", h.DeleteCandidate)
	})

	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.ListEmployees)
		r.Post("/", h.CreateEmployee)
	})
	r.Route("/employee/{id}", func(r chi.Router) {
		r.Get("/", h.GetEmployee)
		r.Patch("/", h.UpdateEmployee)
		r.Delete("/", h.DeleteEmployee)
	})

	r.Route("/slots", func(r chi.Router) {
		r.Get("/", h.Availability)
		r.Post("/", h.CreateSlots)
	})
	r.Route("/slot/{id}", func(r chi.Router) {
		r.Get("/", h.GetSlot)
		r.Delete("/", h.DeleteSlot)
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Error("Health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
