package operation

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wichananm65/estate-crm/internal/auth/authtest"
	"github.com/wichananm65/estate-crm/internal/contract"
	"github.com/wichananm65/estate-crm/internal/kvstore"
)

type failingContracts struct{}

func (failingContracts) CreateFromOperation(context.Context, string, contract.OperationSummary) (contract.Contract, error) {
	return contract.Contract{}, errors.New("cache down")
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

func TestOperationRoutes_CreatesContract(t *testing.T) {
	seed := []Operation{
		{ID: "o1", UserID: "u1", Type: KindRent, SellerName: "Old", BuyerName: "Deal", CompletedAt: time.Unix(100, 0)},
		{ID: "o2", UserID: "u1", Type: KindSale, SellerName: "Newer", BuyerName: "Deal", CompletedAt: time.Unix(200, 0)},
	}
	contracts := contract.NewService(kvstore.NewMemoryBackend())
	svc := NewService(NewInMemoryRepository(seed), contracts, nil)
	app := authtest.NewApp()
	NewHandler(svc).RegisterProtectedRoutes(app)

	code, body := doRequest(t, app, "GET", "/api/v1/operations", "u1", "")
	if code != fiber.StatusOK || strings.Index(body, "Newer") > strings.Index(body, "Old") {
		t.Fatalf("expected newest first, got %d: %s", code, body)
	}

	code, body = doRequest(t, app, "POST", "/api/v1/operations", "u1",
		`{"type":"Vendita eseguita","sellerName":"Mario","buyerName":"Anna","propertyType":"Villa","location":"Grado","price":"€ 400.000"}`)
	if code != fiber.StatusCreated || !strings.Contains(body, `"type":"sale"`) {
		t.Fatalf("unexpected create %d: %s", code, body)
	}

	list, err := contracts.List(context.Background(), "u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one contract, got %v %v", list, err)
	}
	if list[0].Description != "Sale contract - Villa in Grado" || list[0].Amount != 400000 {
		t.Fatalf("unexpected contract: %+v", list[0])
	}

	if code, _ := doRequest(t, app, "POST", "/api/v1/operations", "u1", `{"type":"barter"}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if code, _ := doRequest(t, app, "DELETE", "/api/v1/operations/o1", "u2", ""); code != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if code, _ := doRequest(t, app, "DELETE", "/api/v1/operations/o1", "u1", ""); code != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
}

func TestCreate_ContractFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewService(NewInMemoryRepository(nil), failingContracts{}, zap.New(core).Sugar())

	op, err := svc.Create(context.Background(), "u1", Input{Type: "rent", SellerName: "L", BuyerName: "T"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if op.Type != KindRent {
		t.Fatalf("unexpected type %q", op.Type)
	}
	if logs.FilterMessage("contract creation failed").Len() != 1 {
		t.Fatalf("expected contract failure to be logged, got %v", logs.All())
	}
}
