package api

import (
	"errors"
	"net/http"

	"github.com/ignite/template-hub/internal/pkg/httputil"
	"github.com/ignite/template-hub/internal/service/campaign"
	"github.com/ignite/template-hub/internal/service/template"
	"github.com/ignite/template-hub/internal/service/workspace"
)

// writeServiceError translates service-layer errors into HTTP responses.
// Validation errors (including conflicts and blocked deletes, which the
// services surface as field errors) become 422 envelopes; not-found
// sentinels become 404; anything else is a 500 with the detail logged, not
// leaked.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *template.ValidationError
	if errors.As(err, &verr) {
		httputil.FieldErrors(w, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, template.ErrNotFound),
		errors.Is(err, campaign.ErrNotFound),
		errors.Is(err, workspace.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, campaign.ErrTemplateMissing),
		errors.Is(err, campaign.ErrTemplateRequired):
		httputil.FieldErrors(w, map[string][]string{"template_id": {err.Error()}})
	case errors.Is(err, campaign.ErrNameRequired):
		httputil.FieldErrors(w, map[string][]string{"name": {err.Error()}})
	case errors.Is(err, campaign.ErrNotDeletable),
		errors.Is(err, campaign.ErrInvalidTransition):
		httputil.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, workspace.ErrNameTaken),
		errors.Is(err, workspace.ErrNameRequired):
		httputil.FieldErrors(w, map[string][]string{"name": {err.Error()}})
	default:
		httputil.InternalError(w, err)
	}
}
