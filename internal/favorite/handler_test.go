package favorite

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth/authtest"
)

func makeAppWithFavoriteHandler(repo Repository) *fiber.App {
	app := authtest.NewApp()
	NewHandler(NewService(repo)).RegisterProtectedRoutes(app)
	return app
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

func TestFavoriteToggle(t *testing.T) {
	app := makeAppWithFavoriteHandler(NewInMemoryRepository(nil))

	if code, _ := doRequest(t, app, "GET", "/api/v1/favorites", "", ""); code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}

	code, body := doRequest(t, app, "POST", "/api/v1/favorites/toggle", "u1", `{"clientId":"b1","clientType":"buyer"}`)
	if code != fiber.StatusOK || !strings.Contains(body, `"favorite":true`) {
		t.Fatalf("unexpected toggle on %d: %s", code, body)
	}
	_, body = doRequest(t, app, "GET", "/api/v1/favorites/check?clientId=b1&type=buyer", "u1", "")
	if body != `{"favorite":true}` {
		t.Fatalf("expected favorite, got %s", body)
	}
	_, body = doRequest(t, app, "GET", "/api/v1/favorites/check?clientId=b1&type=seller", "u1", "")
	if body != `{"favorite":false}` {
		t.Fatalf("same id as seller must not be favorite, got %s", body)
	}

	code, body = doRequest(t, app, "POST", "/api/v1/favorites/toggle", "u1", `{"clientId":"b1","clientType":"buyer"}`)
	if code != fiber.StatusOK || !strings.Contains(body, `"favorite":false`) {
		t.Fatalf("unexpected toggle off %d: %s", code, body)
	}

	if code, _ := doRequest(t, app, "POST", "/api/v1/favorites/toggle", "u1", `{"clientId":"b1","clientType":"landlord"}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestFavoriteAddListRemove(t *testing.T) {
	app := makeAppWithFavoriteHandler(NewInMemoryRepository(nil))

	for _, body := range []string{`{"clientId":"b1","clientType":"buyer"}`, `{"clientId":"s1","clientType":"seller"}`} {
		if code, resp := doRequest(t, app, "POST", "/api/v1/favorites", "u1", body); code != fiber.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", code, resp)
		}
	}
	if code, _ := doRequest(t, app, "POST", "/api/v1/favorites", "u1", `{"clientId":"b1","clientType":"buyer"}`); code != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}

	_, body := doRequest(t, app, "GET", "/api/v1/favorites?type=seller", "u1", "")
	if !strings.Contains(body, `"clientId":"s1"`) || strings.Contains(body, `"clientId":"b1"`) {
		t.Fatalf("unexpected filtered list: %s", body)
	}
	_, body = doRequest(t, app, "GET", "/api/v1/favorites", "u2", "")
	if body != "[]" {
		t.Fatalf("expected empty list for other user, got %s", body)
	}
	// stored ids must not change when later requests carry another user
	_, body = doRequest(t, app, "GET", "/api/v1/favorites", "u1", "")
	if strings.Count(body, `"userId":"u1"`) != 2 {
		t.Fatalf("expected both favorites to stay with u1, got %s", body)
	}

	if code, _ := doRequest(t, app, "DELETE", "/api/v1/favorites", "u1", `{"clientId":"b1","clientType":"buyer"}`); code != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code, _ := doRequest(t, app, "DELETE", "/api/v1/favorites", "u1", `{"clientId":"b1","clientType":"buyer"}`); code != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}
