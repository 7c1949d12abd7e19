package clients

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth/authtest"
)

func doRequest(t *testing.T, app *fiber.App, method, path, user, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(authtest.HeaderUserID, user)
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestSubmit_UpsertsClientByEmail(t *testing.T) {
	repo := NewInMemoryRepository()
	app := authtest.NewApp()
	h := NewHandler(NewService(repo, nil))
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)

	lead := `{"name":"Mario Rossi","email":"Mario@Example.com","phone":"333","requestType":"acquisto","propertyType":"Villa","zona":"Udine"}`
	code, body := doRequest(t, app, "POST", "/api/v1/requests", "", lead)
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", code, body)
	}
	var first SubmitResult
	if err := json.Unmarshal([]byte(body), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !first.Success || first.ClientID == "" {
		t.Fatalf("unexpected result: %+v", first)
	}

	code, body = doRequest(t, app, "POST", "/api/v1/requests", "", `{"name":"Mario R.","email":"mario@example.com","phone":"444","requestType":"locazione"}`)
	var second SubmitResult
	_ = json.Unmarshal([]byte(body), &second)
	if code != fiber.StatusCreated || second.ClientID != first.ClientID {
		t.Fatalf("expected same client, got %d: %s", code, body)
	}

	code, body = doRequest(t, app, "GET", "/api/v1/clients", "admin", "")
	if code != fiber.StatusOK || strings.Count(body, `"id"`) != 1 || !strings.Contains(body, `"phone":"444"`) {
		t.Fatalf("unexpected clients %d: %s", code, body)
	}

	code, body = doRequest(t, app, "GET", "/api/v1/requests?status=pending", "admin", "")
	if code != fiber.StatusOK || strings.Count(body, `"clientId"`) != 2 || !strings.Contains(body, `"requestType":"rental"`) {
		t.Fatalf("unexpected requests %d: %s", code, body)
	}
}

func TestSubmit_Validation(t *testing.T) {
	app := authtest.NewApp()
	NewHandler(NewService(NewInMemoryRepository(), nil)).RegisterPublicRoutes(app)

	code, body := doRequest(t, app, "POST", "/api/v1/requests", "", `{"name":"","email":"nope","requestType":"barter"}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	for _, field := range []string{"name", "email", "phone", "requestType"} {
		if !strings.Contains(body, `"`+field+`"`) {
			t.Fatalf("expected error for %s: %s", field, body)
		}
	}
}

func TestUpdateRequestStatus(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, nil)
	app := authtest.NewApp()
	NewHandler(svc).RegisterProtectedRoutes(app)

	_, req, _ := repo.SaveLead(t.Context(), Client{ID: "c1", Email: "a@b.it"}, Request{ID: "r1", Status: StatusPending})

	if code, _ := doRequest(t, app, "PATCH", "/api/v1/requests/"+req.ID, "", `{"status":"contacted"}`); code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if code, _ := doRequest(t, app, "PATCH", "/api/v1/requests/"+req.ID, "agent-1", `{"status":"lost"}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if code, _ := doRequest(t, app, "PATCH", "/api/v1/requests/missing", "agent-1", `{"status":"contacted"}`); code != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	code, body := doRequest(t, app, "PATCH", "/api/v1/requests/"+req.ID, "agent-1", `{"status":"contacted"}`)
	if code != fiber.StatusOK || !strings.Contains(body, `"processedBy":"agent-1"`) || !strings.Contains(body, "processedAt") {
		t.Fatalf("unexpected update %d: %s", code, body)
	}
}
