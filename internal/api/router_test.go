package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rexxailabs/client-projects-api/internal/core/domain"
	"github.com/rexxailabs/client-projects-api/internal/core/ports"
	"github.com/rexxailabs/client-projects-api/internal/core/service"
)

// In-memory repositories backing the full-router test.

type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type memClientRepo struct {
	clients map[string]*domain.Client
	nextID  int
}

func (r *memClientRepo) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	r.nextID++
	clone := *client
	clone.ID = fmt.Sprintf("client_%d", r.nextID)
	r.clients[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memClientRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range r.clients {
		if c.OwnerID == ownerID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memClientRepo) FindByID(_ context.Context, id, ownerID string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.OwnerID != ownerID {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memClientRepo) Update(_ context.Context, id string, input ports.UpdateClientInput) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Email != nil {
		c.Email = *input.Email
	}
	if input.Phone != nil {
		c.Phone = *input.Phone
	}
	c.UpdatedAt = time.Now().UTC()
	clone := *c
	return &clone, nil
}

func (r *memClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

type memProjectRepo struct {
	projects map[string]*domain.Project
	nextID   int
}

func (r *memProjectRepo) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	r.nextID++
	clone := *project
	clone.ID = fmt.Sprintf("project_%d", r.nextID)
	r.projects[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memProjectRepo) List(_ context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, error) {
	allowed := make(map[string]struct{}, len(filter.ClientIDs))
	for _, id := range filter.ClientIDs {
		allowed[id] = struct{}{}
	}
	var out []*domain.Project
	for _, p := range r.projects {
		if _, ok := allowed[p.ClientID]; !ok {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memProjectRepo) Update(_ context.Context, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	if input.StartDate != nil {
		p.StartDate = input.StartDate
	} else if input.ClearStartDate {
		p.StartDate = nil
	}
	if input.DeliveryDate != nil {
		p.DeliveryDate = input.DeliveryDate
	} else if input.ClearDeliveryDate {
		p.DeliveryDate = nil
	}
	p.UpdatedAt = time.Now().UTC()
	clone := *p
	return &clone, nil
}

func (r *memProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *memProjectRepo) DeleteByClientID(_ context.Context, clientID string) (int64, error) {
	var n int64
	for id, p := range r.projects {
		if p.ClientID == clientID {
			delete(r.projects, id)
			n++
		}
	}
	return n, nil
}

func doJSON(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	msg, _ := errObj["message"].(string)
	return msg
}

// TestRouter_EndToEnd walks the whole API through the HTTP surface with
// in-memory repositories. The router is built once; the Prometheus
// middleware registers collectors on the default registry and cannot be
// instantiated twice in one process.
func TestRouter_EndToEnd(t *testing.T) {
	e := NewRouter(Deps{
		Users:       &memUserRepo{users: make(map[string]*domain.User)},
		Clients:     &memClientRepo{clients: make(map[string]*domain.Client)},
		Projects:    &memProjectRepo{projects: make(map[string]*domain.Project)},
		Tokens:      service.NewTokenService("test-secret", time.Hour),
		Logger:      zerolog.Nop(),
		Development: true,
	})

	var aliceToken, bobToken string
	var clientID, projectID string

	t.Run("register", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/auth/register", "", map[string]string{
			"email": "alice@example.com", "password": "secret1",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if strings.Contains(rec.Body.String(), "passwordHash") {
			t.Fatalf("password hash leaked: %s", rec.Body.String())
		}
	})

	t.Run("register duplicate email", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/auth/register", "", map[string]string{
			"email": "alice@example.com", "password": "another1",
		})
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		if msg := errorMessage(t, rec); msg != domain.ErrEmailTaken.Error() {
			t.Fatalf("unexpected message %q", msg)
		}
	})

	t.Run("register validation failure", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/auth/register", "", map[string]string{
			"email": "not-an-email", "password": "short",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		if msg := errorMessage(t, rec); msg != "Validation failed" {
			t.Fatalf("unexpected message %q", msg)
		}
		// Development mode keeps the per-field details.
		if !strings.Contains(rec.Body.String(), "\"path\"") {
			t.Fatalf("expected field details in development mode: %s", rec.Body.String())
		}
	})

	t.Run("login wrong password", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "wrongpass",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
		if msg := errorMessage(t, rec); msg != domain.ErrInvalidCredentials.Error() {
			t.Fatalf("unexpected message %q", msg)
		}
	})

	t.Run("login", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "secret1",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		aliceToken, _ = body["token"].(string)
		if aliceToken == "" {
			t.Fatalf("expected token in response: %s", rec.Body.String())
		}
	})

	t.Run("me", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/auth/me", aliceToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if body := decodeBody(t, rec); body["email"] != "alice@example.com" {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("protected routes require token", func(t *testing.T) {
		for _, path := range []string{"/auth/me", "/clients", "/projects"} {
			rec := doJSON(e, http.MethodGet, path, "", nil)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("%s: expected 401, got %d", path, rec.Code)
			}
		}
	})

	t.Run("create client", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/clients", aliceToken, map[string]string{
			"name": "Acme", "email": "contact@acme.test",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		clientID, _ = body["id"].(string)
		if clientID == "" {
			t.Fatalf("expected client id: %s", rec.Body.String())
		}
	})

	t.Run("create project", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/projects", aliceToken, map[string]string{
			"name": "P1", "clientId": clientID,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		projectID, _ = body["id"].(string)
		if projectID == "" {
			t.Fatalf("expected project id: %s", rec.Body.String())
		}
		if body["status"] != "PENDING" {
			t.Fatalf("expected default PENDING status: %s", rec.Body.String())
		}
	})

	t.Run("list projects", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/projects", aliceToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var list []map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(list) != 1 || list[0]["name"] != "P1" {
			t.Fatalf("expected exactly P1, got %s", rec.Body.String())
		}
		client, _ := list[0]["client"].(map[string]any)
		if client["name"] != "Acme" {
			t.Fatalf("expected embedded client summary: %s", rec.Body.String())
		}
	})

	t.Run("invalid status filter", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/projects?status=BOGUS", aliceToken, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("second user cannot see foreign resources", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/auth/register", "", map[string]string{
			"email": "bob@example.com", "password": "secret1",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("register bob: expected 201, got %d", rec.Code)
		}
		rec = doJSON(e, http.MethodPost, "/auth/login", "", map[string]string{
			"email": "bob@example.com", "password": "secret1",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("login bob: expected 200, got %d", rec.Code)
		}
		bobToken, _ = decodeBody(t, rec)["token"].(string)

		rec = doJSON(e, http.MethodGet, "/clients/"+clientID, bobToken, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("foreign client: expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		foreignMsg := errorMessage(t, rec)

		rec = doJSON(e, http.MethodGet, "/clients/does_not_exist", bobToken, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("missing client: expected 404, got %d", rec.Code)
		}
		if missingMsg := errorMessage(t, rec); missingMsg != foreignMsg {
			t.Fatalf("foreign and missing must be indistinguishable: %q vs %q", foreignMsg, missingMsg)
		}

		rec = doJSON(e, http.MethodGet, "/projects/"+projectID, bobToken, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("foreign project: expected 404, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(e, http.MethodPost, "/projects", bobToken, map[string]string{
			"name": "Sneaky", "clientId": clientID,
		})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("project under foreign client: expected 404, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(e, http.MethodGet, "/projects", bobToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("list: expected 200, got %d", rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Fatalf("expected empty list for bob, got %s", body)
		}
	})

	t.Run("update project", func(t *testing.T) {
		rec := doJSON(e, http.MethodPut, "/projects/"+projectID, aliceToken, map[string]string{
			"status": "IN_PROGRESS",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["status"] != "IN_PROGRESS" || body["name"] != "P1" {
			t.Fatalf("partial update failed: %s", rec.Body.String())
		}
	})

	t.Run("delete client cascades", func(t *testing.T) {
		rec := doJSON(e, http.MethodDelete, "/clients/"+clientID, aliceToken, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(e, http.MethodGet, "/projects/"+projectID, aliceToken, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("cascaded project: expected 404, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(e, http.MethodGet, "/projects", aliceToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("list: expected 200, got %d", rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Fatalf("expected empty list after cascade, got %s", body)
		}
	})

	t.Run("operational endpoints", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/health", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("health: expected 200, got %d", rec.Code)
		}
		rec = doJSON(e, http.MethodGet, "/metrics", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("metrics: expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "clientprojects_") {
			t.Fatalf("expected namespaced metrics in output")
		}
	})
}
