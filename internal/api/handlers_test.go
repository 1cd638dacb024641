package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/template-hub/internal/auth"
	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/render"
	"github.com/ignite/template-hub/internal/repository/memory"
	"github.com/ignite/template-hub/internal/service/campaign"
	"github.com/ignite/template-hub/internal/service/template"
	"github.com/ignite/template-hub/internal/service/workspace"
)

func setupAPI(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	h := &Handlers{
		Templates:  template.NewService(store.Templates(), render.NewEngine(), "content"),
		Campaigns:  campaign.NewService(store.Campaigns()),
		Workspaces: workspace.NewService(store.Workspaces()),
	}
	return SetupRoutes(h, nil, nil), store
}

func seedWorkspace(t *testing.T, store *memory.Store, id, name string) {
	t.Helper()
	now := time.Now()
	err := store.Workspaces().Create(context.Background(), &domain.Workspace{
		ID: id, Name: name, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed workspace: %v", err)
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeFieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var payload struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode errors: %v (body %s)", err, rec.Body.String())
	}
	return payload.Errors
}

func TestCreateTemplateEndpoint(t *testing.T) {
	handler, store := setupAPI(t)
	seedWorkspace(t, store, "ws-1", "Acme")

	rec := doJSON(t, handler, "POST", "/api/workspaces/ws-1/templates", map[string]string{
		"name":    "Welcome",
		"content": "Hello {{ content }}",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.Template
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Content != "Hello {{ content.content }}" {
		t.Errorf("content not normalized: %q", created.Content)
	}
	if created.WorkspaceID != "ws-1" {
		t.Errorf("wrong workspace: %q", created.WorkspaceID)
	}
}

func TestCreateTemplateValidationEndpoint(t *testing.T) {
	handler, store := setupAPI(t)
	seedWorkspace(t, store, "ws-1", "Acme")

	rec := doJSON(t, handler, "POST", "/api/workspaces/ws-1/templates", map[string]string{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	fields := decodeFieldErrors(t, rec)
	if len(fields["name"]) == 0 || len(fields["content"]) == 0 {
		t.Errorf("expected name and content errors, got %v", fields)
	}
}

func TestCreateTemplateConflictEndpoint(t *testing.T) {
	handler, store := setupAPI(t)
	seedWorkspace(t, store, "ws-1", "Acme")

	body := map[string]string{"name": "Welcome", "content": "hi"}
	if rec := doJSON(t, handler, "POST", "/api/workspaces/ws-1/templates", body); rec.Code != http.StatusCreated {
		t.Fatalf("first create: %d", rec.Code)
	}

	rec := doJSON(t, handler, "POST", "/api/workspaces/ws-1/templates", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	fields := decodeFieldErrors(t, rec)
	if len(fields["name"]) == 0 {
		t.Errorf("expected conflict on name, got %v", fields)
	}
}

func TestUpdateTemplateEndpoint(t *testing.T) {
	handler, store := setupAPI(t)
	seedWorkspace(t, store, "ws-1", "Acme")

	rec := doJSON(t, handler, "POST", "/api/workspaces/ws-1/templates", map[string]string{
		"name": "Welcome", "content": "Hello {{ content }}",
	})
	var created domain.Template
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec = doJSON(t, handler, "PUT", "/api/workspaces/ws-1/templates/"+created.ID, map[string]string{
		"name": "Welcome", "content": "Hi {{ content }}",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated domain.Template
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.ID != created.ID {
		t.Errorf("id changed on update")
	}
	if updated.Content != "Hi {{ content.content }}" {
		t.Errorf("updated content not normalized: %q", updated.Content)
	}
}

func TestDeleteReferencedTemplateEndpoint(t *testing.T) {
	handler, store := setupAPI(t)
	seedWorkspace(t, store, "ws-1", "Acme")

	rec := doJSON(t, handler, "POST", "/api/workspaces/ws-1/templates", map[string]string{
		"name": "Welcome", "content": "hi",
	})
	var tpl domain.Template
	json.Unmarshal(rec.Body.Bytes(), &tpl)

	rec = doJSON(t, handler, "POST", "/api/workspaces/ws-1/campaigns", map[string]string{
		"name": "Spring Send", "template_id": tpl.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create campaign: %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, "DELETE", "/api/workspaces/ws-1/templates/"+tpl.ID, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	fields := decodeFieldErrors(t, rec)
	if len(fields["template"]) == 0 {
		t.Errorf("expected template field error, got %v", fields)
	}

	// Template must survive.
	rec = doJSON(t, handler, "GET", "/api/workspaces/ws-1/templates/"+tpl.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("template gone after blocked delete: %d", rec.Code)
	}
}

func TestListTemplatesNegativeOffset(t *testing.T) {
	handler, store := setupAPI(t)
	seedWorkspace(t, store, "ws-1", "Acme")

	if rec := doJSON(t, handler, "POST", "/api/workspaces/ws-1/templates", map[string]string{
		"name": "Welcome", "content": "hi",
	}); rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}

	rec := doJSON(t, handler, "GET", "/api/workspaces/ws-1/templates?offset=-1&limit=-5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for negative pagination, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetTemplateNotFoundEndpoint(t *testing.T) {
	handler, store := setupAPI(t)
	seedWorkspace(t, store, "ws-1", "Acme")

	rec := doJSON(t, handler, "GET", "/api/workspaces/ws-1/templates/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPreviewTemplateEndpoint(t *testing.T) {
	handler, store := setupAPI(t)
	seedWorkspace(t, store, "ws-1", "Acme")

	rec := doJSON(t, handler, "POST", "/api/workspaces/ws-1/templates", map[string]string{
		"name": "Welcome", "content": "Hello {{ first_name }}",
	})
	var tpl domain.Template
	json.Unmarshal(rec.Body.Bytes(), &tpl)

	rec = doJSON(t, handler, "POST", "/api/workspaces/ws-1/templates/"+tpl.ID+"/preview", map[string]interface{}{
		"data": map[string]string{"first_name": "Ada"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out map[string]string
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out["output"] != "Hello Ada" {
		t.Errorf("preview = %q", out["output"])
	}
}

func TestWorkspaceEndpoints(t *testing.T) {
	handler, _ := setupAPI(t)

	rec := doJSON(t, handler, "POST", "/api/workspaces", map[string]string{"name": "Acme"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create workspace: %d: %s", rec.Code, rec.Body.String())
	}
	var ws domain.Workspace
	json.Unmarshal(rec.Body.Bytes(), &ws)

	rec = doJSON(t, handler, "POST", "/api/workspaces", map[string]string{"name": "Acme"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on duplicate name, got %d", rec.Code)
	}
	if fields := decodeFieldErrors(t, rec); len(fields["name"]) == 0 {
		t.Errorf("expected name conflict, got %v", fields)
	}

	rec = doJSON(t, handler, "GET", "/api/workspaces/"+ws.ID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get workspace: %d", rec.Code)
	}
}

func TestWorkspaceAuthorization(t *testing.T) {
	store := memory.NewStore()
	h := &Handlers{
		Templates:  template.NewService(store.Templates(), render.NewEngine(), "content"),
		Campaigns:  campaign.NewService(store.Campaigns()),
		Workspaces: workspace.NewService(store.Workspaces()),
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	manager := auth.NewManager(rdb, time.Hour, false)

	handler := SetupRoutes(h, manager, nil)
	seedWorkspace(t, store, "ws-1", "Acme")
	seedWorkspace(t, store, "ws-2", "Globex")

	token, err := manager.CreateSession(context.Background(), "u-1", "a@b.com", []string{"ws-1"}, false)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	get := func(path string) int {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := get("/api/workspaces/ws-1/templates"); code != http.StatusOK {
		t.Errorf("expected 200 for granted workspace, got %d", code)
	}
	if code := get("/api/workspaces/ws-2/templates"); code != http.StatusForbidden {
		t.Errorf("expected 403 for other workspace, got %d", code)
	}

	// No token at all
	req := httptest.NewRequest("GET", "/api/workspaces/ws-1/templates", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	limiter := NewRateLimiter(rdb, 3)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("expected 429 on 4th request, got %d", last)
	}
}
