package template_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/render"
	"github.com/ignite/template-hub/internal/repository/memory"
	"github.com/ignite/template-hub/internal/service/template"
)

const (
	wsOne = "ws-1"
	wsTwo = "ws-2"
)

func newService() (*template.Service, *memory.Store) {
	store := memory.NewStore()
	return template.NewService(store.Templates(), render.NewEngine(), "content"), store
}

func TestCreateNormalizesContent(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), wsOne, template.WriteInput{
		Name:    "Welcome",
		Content: "Hello {{ content }}",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Content != "Hello {{ content.content }}" {
		t.Errorf("content not normalized: %q", created.Content)
	}

	got, err := svc.Get(context.Background(), wsOne, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != created.Content {
		t.Errorf("stored content %q differs from returned %q", got.Content, created.Content)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), wsOne, template.WriteInput{})
	var verr *template.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields["name"]) == 0 || len(verr.Fields["content"]) == 0 {
		t.Errorf("expected errors on name and content, got %v", verr.Fields)
	}
}

func TestCreateRejectsBadSyntax(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), wsOne, template.WriteInput{
		Name:    "Broken",
		Content: "{% if x %}unclosed",
	})
	var verr *template.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields["content"]) == 0 {
		t.Errorf("expected content error, got %v", verr.Fields)
	}
}

func TestCreateNameConflict(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, wsOne, template.WriteInput{Name: "Welcome", Content: "a"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, wsOne, template.WriteInput{Name: "Welcome", Content: "b"})
	var verr *template.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields["name"]) == 0 {
		t.Errorf("expected conflict surfaced on name, got %v", verr.Fields)
	}

	// Exactly one row with that name survives.
	list, total, err := svc.List(ctx, wsOne, template.ListFilter{Search: "Welcome"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Errorf("expected exactly one Welcome template, got %d", total)
	}
}

func TestListNegativePagination(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, wsOne, template.WriteInput{Name: "Welcome", Content: "a"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Negative pagination values are clamped, not errors.
	list, total, err := svc.List(ctx, wsOne, template.ListFilter{Limit: -5, Offset: -1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Errorf("expected 1 template, got %d (total %d)", len(list), total)
	}
}

func TestSameNameAcrossWorkspaces(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, wsOne, template.WriteInput{Name: "Welcome", Content: "a"}); err != nil {
		t.Fatalf("create in ws-1: %v", err)
	}
	if _, err := svc.Create(ctx, wsTwo, template.WriteInput{Name: "Welcome", Content: "b"}); err != nil {
		t.Fatalf("create in ws-2 should succeed: %v", err)
	}
}

func TestUpdateReplacesContent(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, wsOne, template.WriteInput{
		Name:    "Welcome",
		Content: "Hello {{ content }}",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, wsOne, created.ID, template.WriteInput{
		Name:    "Welcome",
		Content: "Hi {{ content }}",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("update changed id: %s -> %s", created.ID, updated.ID)
	}
	if updated.Content != "Hi {{ content.content }}" {
		t.Errorf("updated content not normalized: %q", updated.Content)
	}

	got, _ := svc.Get(ctx, wsOne, created.ID)
	if got.Content != "Hi {{ content.content }}" {
		t.Errorf("old content still stored: %q", got.Content)
	}
}

func TestUpdateNameConflict(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	svc.Create(ctx, wsOne, template.WriteInput{Name: "Welcome", Content: "a"})
	second, _ := svc.Create(ctx, wsOne, template.WriteInput{Name: "Goodbye", Content: "b"})

	_, err := svc.Update(ctx, wsOne, second.ID, template.WriteInput{Name: "Welcome", Content: "b"})
	var verr *template.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields["name"]) == 0 {
		t.Errorf("expected conflict on name, got %v", verr.Fields)
	}
}

func TestUpdateKeepingOwnName(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, wsOne, template.WriteInput{Name: "Welcome", Content: "a"})
	if _, err := svc.Update(ctx, wsOne, created.ID, template.WriteInput{Name: "Welcome", Content: "c"}); err != nil {
		t.Fatalf("update keeping own name should not conflict: %v", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Update(context.Background(), wsOne, "nonexistent", template.WriteInput{Name: "X", Content: "y"})
	if !errors.Is(err, template.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUnreferenced(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, wsOne, template.WriteInput{Name: "Welcome", Content: "a"})
	if err := svc.Delete(ctx, wsOne, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, wsOne, created.ID); !errors.Is(err, template.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDeleteReferencedBlocked(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, wsOne, template.WriteInput{Name: "Welcome", Content: "a"})
	seedCampaign(t, store, wsOne, created.ID)

	err := svc.Delete(ctx, wsOne, created.ID)
	var verr *template.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields["template"]) == 0 {
		t.Errorf("expected error on template field, got %v", verr.Fields)
	}

	// The row must survive the blocked delete.
	if _, err := svc.Get(ctx, wsOne, created.ID); err != nil {
		t.Fatalf("template should still exist: %v", err)
	}
}

func TestPreview(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, wsOne, template.WriteInput{
		Name:    "Welcome",
		Content: "Hello {{ first_name }}",
	})

	out, err := svc.Preview(ctx, wsOne, created.ID, map[string]interface{}{"first_name": "Ada"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if out != "Hello Ada" {
		t.Errorf("preview = %q, want %q", out, "Hello Ada")
	}
}

// Filtered placeholders are namespaced on write like bare ones, so preview
// data supplied under the scope still reaches them.
func TestPreviewFilteredPlaceholder(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, wsOne, template.WriteInput{
		Name:    "Welcome",
		Content: `Hello {{ first_name | default: "Friend" }}`,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Content != `Hello {{ content.first_name | default: "Friend" }}` {
		t.Fatalf("filtered placeholder not normalized: %q", created.Content)
	}

	out, err := svc.Preview(ctx, wsOne, created.ID, map[string]interface{}{"first_name": "Ada"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if out != "Hello Ada" {
		t.Errorf("preview = %q, want %q", out, "Hello Ada")
	}

	out, err = svc.Preview(ctx, wsOne, created.ID, map[string]interface{}{})
	if err != nil {
		t.Fatalf("preview without data: %v", err)
	}
	if out != "Hello Friend" {
		t.Errorf("preview = %q, want %q", out, "Hello Friend")
	}
}

// seedCampaign inserts a campaign referencing the given template directly
// through the store, bypassing the campaign service.
func seedCampaign(t *testing.T, store *memory.Store, workspaceID, templateID string) {
	t.Helper()
	err := store.Campaigns().Create(context.Background(), &domain.Campaign{
		ID:          "camp-" + templateID,
		WorkspaceID: workspaceID,
		TemplateID:  templateID,
		Name:        "Spring Send",
		Status:      domain.CampaignDraft,
	})
	if err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
}

func TestWorkspaceIsolationOnGet(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, wsOne, template.WriteInput{Name: "Welcome", Content: "a"})
	if _, err := svc.Get(ctx, wsTwo, created.ID); !errors.Is(err, template.ErrNotFound) {
		t.Fatalf("template visible across workspaces: %v", err)
	}
}
