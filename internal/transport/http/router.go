package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"uenvalidator/pkg/platform/middleware/metadata"
	"uenvalidator/pkg/platform/middleware/request"
	"uenvalidator/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by every handler that mounts its own routes.
type Registrar interface {
	Register(r chi.Router)
}

// Config carries the transport settings the router applies globally.
type Config struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	Metadata       *metadata.Config
}

// NewRouter wires the middleware stack, every handler, and /metrics.
// metrics and metricsHandler may be nil.
func NewRouter(cfg Config, logger *slog.Logger, metrics *request.Metrics, metricsHandler http.Handler, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(requesttime.Middleware)
	r.Use(request.RequestID)
	r.Use(metadata.NewMiddleware(cfg.Metadata).Handler)
	r.Use(request.Logger(logger))
	r.Use(request.LatencyMiddleware(metrics))
	if cfg.RequestTimeout > 0 {
		r.Use(request.Timeout(cfg.RequestTimeout))
	}
	if cfg.MaxBodyBytes > 0 {
		r.Use(request.BodyLimit(cfg.MaxBodyBytes))
	}

	for _, h := range handlers {
		h.Register(r)
	}

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	return r
}
