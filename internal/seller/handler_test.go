package seller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth/authtest"
	"github.com/wichananm65/estate-crm/internal/kvstore"
	"github.com/wichananm65/estate-crm/internal/logging"
	"github.com/wichananm65/estate-crm/internal/property"
)

func newTestService(backend kvstore.Backend) (*Service, *property.InMemoryRepository) {
	sellers := []Seller{
		{ID: "s1", UserID: "u1", Name: "Giulia Neri", Phone: "0432 123456", Status: StatusReadyToSell, CreatedAt: time.Unix(10, 0)},
		{ID: "s2", UserID: "u2", Name: "Paolo Gialli", Status: StatusInManagement, CreatedAt: time.Unix(20, 0)},
	}
	props := property.NewInMemoryRepository([]property.Property{
		{ID: "p1", SellerID: "s1", PropertyType: "Villa", OperationType: property.OperationSale},
		{ID: "p2", SellerID: "s2", PropertyType: "Casa", OperationType: property.OperationRent},
	})
	svc := NewService(NewInMemoryRepository(sellers), props)
	if backend != nil {
		svc.WithCache(backend, logging.Nop())
	}
	return svc, props
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

func TestSellerRoutes(t *testing.T) {
	svc, _ := newTestService(nil)
	app := authtest.NewApp()
	NewHandler(svc).RegisterProtectedRoutes(app)

	if code, _ := doRequest(t, app, "GET", "/api/v1/sellers", "", ""); code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}

	code, body := doRequest(t, app, "GET", "/api/v1/sellers", "u1", "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var list []Seller
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || len(list[0].Properties) != 1 || list[0].Properties[0].ID != "p1" {
		t.Fatalf("unexpected sellers: %s", body)
	}

	code, body = doRequest(t, app, "POST", "/api/v1/sellers", "u1", `{"name":"Marco Blu","status":"da vendere"}`)
	if code != fiber.StatusCreated || !strings.Contains(body, `"status":"ready_to_sell"`) || !strings.Contains(body, `"properties":[]`) {
		t.Fatalf("create failed %d: %s", code, body)
	}
	var created Seller
	_ = json.Unmarshal([]byte(body), &created)

	code, body = doRequest(t, app, "POST", "/api/v1/sellers", "u1", `{"name":"X","status":"boh"}`)
	if code != fiber.StatusBadRequest || !strings.Contains(body, "status") {
		t.Fatalf("expected status validation error, got %d: %s", code, body)
	}

	code, body = doRequest(t, app, "PUT", "/api/v1/sellers/"+created.ID, "u1", `{"name":"Marco Blu","status":"in gestione"}`)
	if code != fiber.StatusOK || !strings.Contains(body, `"status":"in_management"`) {
		t.Fatalf("update failed %d: %s", code, body)
	}

	if code, _ := doRequest(t, app, "GET", "/api/v1/sellers/s2", "u1", ""); code != fiber.StatusNotFound {
		t.Fatalf("expected 404 for another agent's seller, got %d", code)
	}

	code, body = doRequest(t, app, "GET", "/api/v1/sellers/s1/whatsapp", "u1", "")
	if code != fiber.StatusOK || !strings.Contains(body, "https://wa.me/39432123456") {
		t.Fatalf("unexpected whatsapp link %d: %s", code, body)
	}

	if code, _ := doRequest(t, app, "DELETE", "/api/v1/sellers/"+created.ID, "u1", ""); code != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
}

func TestService_OwnsSeller(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	if ok, err := svc.OwnsSeller(ctx, "u1", "s1"); err != nil || !ok {
		t.Fatalf("expected u1 to own s1, got %v %v", ok, err)
	}
	if ok, err := svc.OwnsSeller(ctx, "u1", "s2"); err != nil || ok {
		t.Fatalf("expected u1 not to own s2, got %v %v", ok, err)
	}
}

func TestService_PropertyChangeInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	backend := kvstore.NewMemoryBackend()
	svc, props := newTestService(backend)
	propSvc := property.NewService(props, svc)
	propSvc.OnChange(svc.Invalidate)

	list, err := svc.List(ctx, "u1")
	if err != nil || len(list[0].Properties) != 1 {
		t.Fatalf("unexpected first list: %v %v", list, err)
	}

	if _, err := propSvc.Create(ctx, "u1", "s1", property.Input{PropertyType: "Appartamento"}); err != nil {
		t.Fatalf("create property: %v", err)
	}

	list, err = svc.List(ctx, "u1")
	if err != nil || len(list[0].Properties) != 2 {
		t.Fatalf("expected refreshed list with 2 properties, got %v %v", list, err)
	}
}

// stallingProperties takes its snapshot, then holds the first call until
// release is closed.
type stallingProperties struct {
	*property.InMemoryRepository
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (r *stallingProperties) ListBySellers(ctx context.Context, sellerIDs []string) ([]property.Property, error) {
	out, err := r.InMemoryRepository.ListBySellers(ctx, sellerIDs)
	r.once.Do(func() {
		close(r.loaded)
		<-r.release
	})
	return out, err
}

func TestService_SlowListDoesNotCacheOverPropertyCreate(t *testing.T) {
	ctx := context.Background()
	props := &stallingProperties{
		InMemoryRepository: property.NewInMemoryRepository(nil),
		loaded:             make(chan struct{}),
		release:            make(chan struct{}),
	}
	sellers := NewInMemoryRepository([]Seller{{ID: "s1", UserID: "u1", Name: "Giulia Neri", CreatedAt: time.Unix(10, 0)}})
	svc := NewService(sellers, props).WithCache(kvstore.NewMemoryBackend(), logging.Nop())
	propSvc := property.NewService(props.InMemoryRepository, svc)
	propSvc.OnChange(svc.Invalidate)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.List(ctx, "u1")
	}()
	<-props.loaded

	if _, err := propSvc.Create(ctx, "u1", "s1", property.Input{PropertyType: "Villa"}); err != nil {
		t.Fatalf("create property: %v", err)
	}
	close(props.release)
	<-done

	list, err := svc.List(ctx, "u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected list: %v %v", list, err)
	}
	if len(list[0].Properties) != 1 {
		t.Fatalf("expected the new property after a concurrent list, got %+v", list[0].Properties)
	}
}
