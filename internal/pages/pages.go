// Package pages serves the static informational pages.
package pages

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"uenvalidator/internal/platform/health"
	"uenvalidator/internal/platform/web"
	"uenvalidator/internal/uen/models"
	"uenvalidator/internal/uen/validator"
	dErrors "uenvalidator/pkg/domain-errors"
	"uenvalidator/pkg/platform/httputil"
	"uenvalidator/pkg/requestcontext"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	aboutPage = "templates/about.html"
	helpPage  = "templates/help.html"
)

// Format describes one registration format for the help page.
type Format struct {
	Field   models.Field
	Pattern string
	Example string
}

// Formats lists one well-formed example per format, in field order.
var Formats = []Format{
	{Field: models.FieldBusinessReg, Pattern: "nnnnnnnnX", Example: "53012345D"},
	{Field: models.FieldLocalCompany, Pattern: "yyyynnnnnX (1800-2028)", Example: "201912345K"},
	{Field: models.FieldOtherEntity, Pattern: "TyyPQnnnnX / SyyPQnnnnX / RyyPQnnnnX", Example: "T09LL0001B"},
}

type Handler struct {
	logger *slog.Logger
	pages  *web.Renderer
}

func New(logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		pages:  web.MustRenderer(templateFS, aboutPage, helpPage),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/about", h.HandleAbout)
	r.Get("/help", h.HandleHelp)
}

type aboutView struct {
	Title   string
	Version string
}

type helpView struct {
	Title       string
	Formats     []Format
	EntityCodes []string
}

func (h *Handler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, aboutPage, aboutView{Title: "About", Version: health.Version})
}

func (h *Handler) HandleHelp(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, helpPage, helpView{
		Title:       "Help",
		Formats:     Formats,
		EntityCodes: validator.EntityCodes(),
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	if err := h.pages.Render(w, http.StatusOK, page, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page",
			"page", page,
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, ""))
	}
}
