// Package authtest fakes a verified identity in handler tests.
package authtest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/golang-jwt/jwt/v4"

	"github.com/wichananm65/estate-crm/internal/auth"
)

// HeaderUserID and HeaderEmail carry the fake identity on test requests.
const (
	HeaderUserID = "X-User-ID"
	HeaderEmail  = "X-User-Email"
)

// InjectUser stores a token with the header values as claims, the way the
// JWT middleware would after verifying a real token. Header values are
// copied since the claims outlive the request buffers.
func InjectUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if v := c.Get(HeaderUserID); v != "" {
			claims := jwt.MapClaims{"sub": utils.CopyString(v)}
			if e := c.Get(HeaderEmail); e != "" {
				claims["email"] = utils.CopyString(e)
			}
			c.Locals(auth.ContextKey, &jwt.Token{Claims: claims})
		}
		return c.Next()
	}
}

// NewApp returns a fiber app with InjectUser installed, configured like the
// API server.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{Immutable: true})
	app.Use(InjectUser())
	return app
}
