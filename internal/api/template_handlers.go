package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/pkg/httputil"
	"github.com/ignite/template-hub/internal/service/template"
)

func (h *Handlers) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	f := template.ListFilter{
		Search: r.URL.Query().Get("search"),
	}
	f.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	f.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	list, total, err := h.Templates.List(r.Context(), workspaceID(r), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []domain.Template{}
	}
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"templates": list,
		"total":     total,
	})
}

func (h *Handlers) HandleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var input template.WriteInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	t, err := h.Templates.Create(r.Context(), workspaceID(r), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, t)
}

func (h *Handlers) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.Templates.Get(r.Context(), workspaceID(r), chi.URLParam(r, "templateID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, t)
}

func (h *Handlers) HandleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var input template.WriteInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	t, err := h.Templates.Update(r.Context(), workspaceID(r), chi.URLParam(r, "templateID"), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, t)
}

func (h *Handlers) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.Templates.Delete(r.Context(), workspaceID(r), chi.URLParam(r, "templateID")); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}

func (h *Handlers) HandlePreviewTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}

	out, err := h.Templates.Preview(r.Context(), workspaceID(r), chi.URLParam(r, "templateID"), body.Data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"output": out})
}
