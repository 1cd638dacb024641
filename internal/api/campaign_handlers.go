package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/pkg/httputil"
	"github.com/ignite/template-hub/internal/service/campaign"
)

func (h *Handlers) HandleListCampaigns(w http.ResponseWriter, r *http.Request) {
	f := campaign.ListFilter{
		Status:     r.URL.Query().Get("status"),
		TemplateID: r.URL.Query().Get("template_id"),
	}
	f.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	f.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	list, total, err := h.Campaigns.List(r.Context(), workspaceID(r), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []domain.Campaign{}
	}
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"campaigns": list,
		"total":     total,
	})
}

func (h *Handlers) HandleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input campaign.CreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	c, err := h.Campaigns.Create(r.Context(), workspaceID(r), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, c)
}

func (h *Handlers) HandleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.Campaigns.Get(r.Context(), workspaceID(r), chi.URLParam(r, "campaignID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, c)
}

func (h *Handlers) HandleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.Campaigns.Delete(r.Context(), workspaceID(r), chi.URLParam(r, "campaignID")); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}

func (h *Handlers) HandleCancelCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.Campaigns.Cancel(r.Context(), workspaceID(r), chi.URLParam(r, "campaignID")); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}
