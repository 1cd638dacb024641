package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/pkg/httputil"
)

func (h *Handlers) HandleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	list, err := h.Workspaces.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []domain.Workspace{}
	}
	httputil.JSON(w, http.StatusOK, map[string]interface{}{"workspaces": list})
}

func (h *Handlers) HandleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if !httputil.Decode(w, r, &input) {
		return
	}

	ws, err := h.Workspaces.Create(r.Context(), input.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, ws)
}

func (h *Handlers) HandleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Workspaces.Get(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, ws)
}
