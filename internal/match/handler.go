package match

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/matches", h.getMatches)
	app.Get("/api/v1/matches/buyers/:id", h.getBuyerMatches)
}

// limit reads ?limit=N; anything else means no limit.
func limit(c *fiber.Ctx) int {
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			return v
		}
	}
	return 0
}

func (h *Handler) getMatches(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	res, err := h.service.ForUser(c.UserContext(), userID, limit(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(res)
}

func (h *Handler) getBuyerMatches(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	res, err := h.service.ForBuyer(c.UserContext(), userID, c.Params("id"), limit(c))
	if err != nil {
		if errors.Is(err, ErrBuyerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "buyer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(res)
}
