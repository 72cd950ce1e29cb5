package handler

import (
	"context"
	"embed"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"uenvalidator/internal/platform/web"
	"uenvalidator/internal/uen/models"
	"uenvalidator/pkg/platform/httputil"
	"uenvalidator/pkg/platform/middleware/request"
	"uenvalidator/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

// Service is the slice of the UEN service the HTTP layer needs.
type Service interface {
	Validate(ctx context.Context, rec models.Record) models.Outcome
	Classify(ctx context.Context, value string) (models.Kind, bool)
}

//go:embed templates/*.html
var templateFS embed.FS

const formPage = "templates/form.html"

// Handler serves the HTML validation form and the JSON API.
type Handler struct {
	logger  *slog.Logger
	service Service
	pages   *web.Renderer
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		pages:   web.MustRenderer(templateFS, formPage),
	}
}

// Register mounts the form and API routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleForm)
	r.Get("/uen", h.HandleForm)
	r.With(request.ContentTypeForm).Post("/uen", h.HandleSubmit)

	r.Route("/api/uen", func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Post("/validate", h.HandleValidate)
		r.Post("/classify", h.HandleClassify)
	})
}

// HandleValidate answers 200 with the outcome whether or not the record is
// valid; only malformed or oversized input is an HTTP error.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	out := h.service.Validate(ctx, req.Record())
	httputil.WriteJSON(w, http.StatusOK, toValidateResponse(out))
}

func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ClassifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	kind, valid := h.service.Classify(ctx, req.Value)
	httputil.WriteJSON(w, http.StatusOK, toClassifyResponse(req.Value, kind, valid))
}
