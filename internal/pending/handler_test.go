package pending

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth/authtest"
	"github.com/wichananm65/estate-crm/internal/clients"
)

// onlyAdmin lets the "admin" test user through.
func onlyAdmin(c *fiber.Ctx) error {
	if c.Get(authtest.HeaderUserID) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin role required"})
	}
	return c.Next()
}

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

func TestPendingFlow(t *testing.T) {
	clientRepo := clients.NewInMemoryRepository()
	svc := NewService(NewInMemoryRepository(), clients.NewService(clientRepo, nil))
	app := authtest.NewApp()
	h := NewHandler(svc, onlyAdmin)
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)

	code, body := doRequest(t, app, "POST", "/api/v1/pending-requests", "",
		`{"name":"Giulia","email":"giulia@example.com","phone":"333","requestType":"vendita","zona":"Trieste"}`)
	if code != fiber.StatusAccepted || !strings.Contains(body, `"success":true`) {
		t.Fatalf("unexpected create %d: %s", code, body)
	}
	if code, _ := doRequest(t, app, "POST", "/api/v1/pending-requests", "", `{"name":"x"}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}

	if code, _ := doRequest(t, app, "GET", "/api/v1/pending-requests", "agent", ""); code != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	code, body = doRequest(t, app, "GET", "/api/v1/pending-requests", "admin", "")
	var list []Request
	if err := json.Unmarshal([]byte(body), &list); err != nil || code != fiber.StatusOK || len(list) != 1 {
		t.Fatalf("unexpected list %d: %s", code, body)
	}
	if list[0].Location != "Trieste" {
		t.Fatalf("unexpected pending request: %+v", list[0])
	}

	code, body = doRequest(t, app, "POST", "/api/v1/pending-requests/"+list[0].ID+"/process", "admin", "")
	if code != fiber.StatusOK || !strings.Contains(body, `"clientId"`) {
		t.Fatalf("unexpected process %d: %s", code, body)
	}
	if code, _ := doRequest(t, app, "POST", "/api/v1/pending-requests/"+list[0].ID+"/process", "admin", ""); code != fiber.StatusConflict {
		t.Fatalf("expected 409 on second process, got %d", code)
	}
	if code, _ := doRequest(t, app, "POST", "/api/v1/pending-requests/missing/process", "admin", ""); code != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}

	_, body = doRequest(t, app, "GET", "/api/v1/pending-requests", "admin", "")
	if body != "[]" {
		t.Fatalf("expected no unprocessed requests, got %s", body)
	}
	_, body = doRequest(t, app, "GET", "/api/v1/pending-requests?processed=all", "admin", "")
	if !strings.Contains(body, `"processed":true`) {
		t.Fatalf("expected processed request in full list, got %s", body)
	}
	if code, _ := doRequest(t, app, "GET", "/api/v1/pending-requests?processed=maybe", "admin", ""); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}

	reqs, _ := clientRepo.ListRequests(t.Context(), clients.StatusPending)
	if len(reqs) != 1 || reqs[0].RequestType != clients.RequestSale {
		t.Fatalf("expected one sale client request, got %+v", reqs)
	}
}
