package match

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/estate-crm/internal/auth/authtest"
	"github.com/wichananm65/estate-crm/internal/buyer"
	"github.com/wichananm65/estate-crm/internal/property"
	"github.com/wichananm65/estate-crm/internal/seller"
)

func makeAppWithMatchHandler() *fiber.App {
	b1 := sampleBuyer()
	b1.UserID = "u1"
	b2 := sampleBuyer()
	b2.ID = "b2"
	b2.UserID = "u1"
	b2.Zone = "Trieste"
	foreign := sampleBuyer()
	foreign.ID = "b9"
	foreign.UserID = "u2"

	buyers := buyer.NewService(buyer.NewInMemoryRepository([]buyer.Buyer{b1, b2, foreign}))

	p2 := sampleProperty()
	p2.ID = "p2"
	p2.Location = "Gorizia"
	props := property.NewInMemoryRepository([]property.Property{sampleProperty(), p2})
	sellers := seller.NewService(seller.NewInMemoryRepository([]seller.Seller{
		{ID: "s1", UserID: "u1", Name: "Giulia Neri", Status: seller.StatusReadyToSell},
	}), props)

	app := authtest.NewApp()
	NewHandler(NewService(buyers, sellers)).RegisterProtectedRoutes(app)
	return app
}

func get(t *testing.T, app *fiber.App, path, user string) (int, Result) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if user != "" {
		req.Header.Set(authtest.HeaderUserID, user)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	var out Result
	if res.StatusCode == fiber.StatusOK {
		b, _ := io.ReadAll(res.Body)
		require.NoError(t, json.Unmarshal(b, &out))
	}
	return res.StatusCode, out
}

func TestMatchRoutes(t *testing.T) {
	app := makeAppWithMatchHandler()

	code, _ := get(t, app, "/api/v1/matches", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, res := get(t, app, "/api/v1/matches", "u1")
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, res.Sales, 4)
	assert.Empty(t, res.Rentals)
	assert.Equal(t, 90, res.Sales[0].Score)

	code, res = get(t, app, "/api/v1/matches?limit=2", "u1")
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, res.Sales, 2)

	code, res = get(t, app, "/api/v1/matches/buyers/b2", "u1")
	require.Equal(t, fiber.StatusOK, code)
	require.Len(t, res.Sales, 2)
	for _, m := range res.Sales {
		assert.Equal(t, "b2", m.BuyerID)
	}

	code, _ = get(t, app, "/api/v1/matches/buyers/b9", "u1")
	assert.Equal(t, fiber.StatusNotFound, code)
}
