package handler

import (
	"log/slog"
	"net/http"

	"github.com/org-structure-audit/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router настраивает маршруты API
type Router struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	auditHandler *AuditHandler
}

// NewRouter создаёт новый роутер
func NewRouter(auditHandler *AuditHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		logger:       logger,
		auditHandler: auditHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/audits", r.method(http.MethodPost, r.auditHandler.AuditUpload))
	api.HandleFunc("/employees/import", r.method(http.MethodPost, r.auditHandler.Import))
	api.HandleFunc("/employees/audit", r.method(http.MethodGet, r.auditHandler.AuditStored))

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// JSON-маршруты получают Content-Type, /metrics отдаёт свой формат
	r.mux.Handle("/", middleware.ContentType(api))
	r.mux.Handle("/metrics", promhttp.Handler())

	var handler http.Handler = r.mux
	handler = middleware.Metrics(handler)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// method пропускает только запросы с заданным методом
func (r *Router) method(allowed string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != allowed {
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}
		next(w, req)
	}
}
