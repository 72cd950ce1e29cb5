package handler

import (
	"errors"
	"mime"
	"net/http"

	"uenvalidator/internal/uen/models"
	dErrors "uenvalidator/pkg/domain-errors"
	"uenvalidator/pkg/platform/httputil"
	"uenvalidator/pkg/platform/validation"
	"uenvalidator/pkg/requestcontext"
)

// MsgPassed is shown above the form when a submission validates.
const MsgPassed = "Validation passed!"

// formView is the data behind templates/form.html.
type formView struct {
	Title      string
	Values     models.Record
	Errors     map[string][]string
	PageErrors []string
	Passed     bool
	Success    string
}

func newFormView(rec models.Record) formView {
	return formView{Title: "UEN Validation", Values: rec}
}

func (v *formView) apply(out models.Outcome) {
	v.Passed = out.Valid
	if out.Valid {
		v.Success = MsgPassed
		return
	}
	v.PageErrors = append(v.PageErrors, out.RecordErrors...)
	v.Errors = make(map[string][]string, len(out.FieldErrors))
	for _, fe := range out.FieldErrors {
		v.Errors[string(fe.Field)] = fe.Messages
	}
}

// HandleForm renders the empty form.
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, newFormView(models.Record{}))
}

// HandleSubmit validates the posted form and re-renders it with the submitted
// values and any messages.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if err := parseForm(r); err != nil {
		h.logger.WarnContext(ctx, "failed to parse form",
			"error", err,
			"request_id", requestID,
		)
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid form body"))
		return
	}

	req := &ValidateRequest{
		BusinessReg:  r.PostForm.Get(string(models.FieldBusinessReg)),
		LocalCompany: r.PostForm.Get(string(models.FieldLocalCompany)),
		OtherEntity:  r.PostForm.Get(string(models.FieldOtherEntity)),
	}
	if err := httputil.PrepareRequest(req); err != nil {
		h.logger.WarnContext(ctx, "invalid form submission",
			"error", err,
			"request_id", requestID,
		)
		view := newFormView(req.Record())
		view.PageErrors = []string{err.Error()}
		h.render(w, r, http.StatusBadRequest, view)
		return
	}

	view := newFormView(req.Record())
	view.apply(h.service.Validate(ctx, req.Record()))
	h.render(w, r, http.StatusOK, view)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, view formView) {
	if err := h.pages.Render(w, status, formPage, view); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render form",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, ""))
	}
}

func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(validation.MaxBodySize)
	}
	return r.ParseForm()
}
