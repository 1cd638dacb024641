package api

import (
	"net/http"
	"time"

	"github.com/ignite/template-hub/internal/pkg/httputil"
)

var startTime = time.Now()

// HandleHealth reports process liveness.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(startTime).String(),
		"service": "template-hub",
	})
}
