package property

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth/authtest"
)

type ownerMap map[string]string

func (o ownerMap) OwnsSeller(_ context.Context, userID, sellerID string) (bool, error) {
	return o[sellerID] == userID, nil
}

func makeAppWithPropertyHandler(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	seed := []Property{
		{ID: "p1", SellerID: "s1", PropertyType: "Appartamento", Location: "Udine", Price: "200000", OperationType: OperationSale, CreatedAt: time.Unix(1, 0)},
		{ID: "p2", SellerID: "s2", PropertyType: "Villa", Location: "Trieste", OperationType: OperationRent, CreatedAt: time.Unix(2, 0)},
	}
	svc := NewService(NewInMemoryRepository(seed), ownerMap{"s1": "u1", "s2": "u2"})
	app := authtest.NewApp()
	NewHandler(svc).RegisterProtectedRoutes(app)
	return app, svc
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

func TestPropertyRoutes(t *testing.T) {
	app, _ := makeAppWithPropertyHandler(t)

	if code, _ := doRequest(t, app, "GET", "/api/v1/sellers/s1/properties", "", ""); code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}

	code, body := doRequest(t, app, "GET", "/api/v1/sellers/s1/properties", "u1", "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var list []Property
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].ID != "p1" {
		t.Fatalf("unexpected list: %s", body)
	}

	// another agent's seller is invisible
	if code, _ := doRequest(t, app, "GET", "/api/v1/sellers/s2/properties", "u1", ""); code != fiber.StatusNotFound {
		t.Fatalf("expected 404 for foreign seller, got %d", code)
	}
	if code, _ := doRequest(t, app, "GET", "/api/v1/properties/p2", "u1", ""); code != fiber.StatusNotFound {
		t.Fatalf("expected 404 for foreign property, got %d", code)
	}

	code, body = doRequest(t, app, "POST", "/api/v1/sellers/s1/properties", "u1", `{"propertyType":"Casa","location":"Codroipo","price":"150.000","operationType":"Locazione"}`)
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", code, body)
	}
	var created Property
	_ = json.Unmarshal([]byte(body), &created)
	if created.OperationType != OperationRent || created.SellerID != "s1" || created.ID == "" {
		t.Fatalf("unexpected created property: %s", body)
	}

	code, body = doRequest(t, app, "POST", "/api/v1/sellers/s1/properties", "u1", `{"location":"Codroipo"}`)
	if code != fiber.StatusBadRequest || !strings.Contains(body, "propertyType") {
		t.Fatalf("expected validation error, got %d: %s", code, body)
	}

	code, body = doRequest(t, app, "PUT", "/api/v1/properties/"+created.ID, "u1", `{"propertyType":"Casa singola","location":"Codroipo","operationType":"vendita"}`)
	if code != fiber.StatusOK || !strings.Contains(body, `"operationType":"sale"`) {
		t.Fatalf("update failed: %d %s", code, body)
	}

	if code, _ := doRequest(t, app, "DELETE", "/api/v1/properties/"+created.ID, "u1", ""); code != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code, _ := doRequest(t, app, "GET", "/api/v1/properties/"+created.ID, "u1", ""); code != fiber.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
}

func TestService_OnChange(t *testing.T) {
	_, svc := makeAppWithPropertyHandler(t)
	var calls []string
	svc.OnChange(func(_ context.Context, userID string) { calls = append(calls, userID) })

	p, err := svc.Create(context.Background(), "u1", "s1", Input{PropertyType: "Villa"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.OperationType != OperationSale {
		t.Fatalf("expected default operation sale, got %q", p.OperationType)
	}
	if err := svc.Delete(context.Background(), "u1", p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", "s2", Input{PropertyType: "Villa"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign seller, got %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 change callbacks, got %v", calls)
	}
}

func TestParseOperationType(t *testing.T) {
	cases := map[string]OperationType{
		"vendita":   OperationSale,
		" Vendita ": OperationSale,
		"locazione": OperationRent,
		"affitto":   OperationRent,
		"rent":      OperationRent,
		"":          "",
		"permuta":   "permuta",
	}
	for in, want := range cases {
		if got := ParseOperationType(in); got != want {
			t.Fatalf("ParseOperationType(%q) = %q, want %q", in, got, want)
		}
	}
}
