package whatsapp

import "github.com/gofiber/fiber/v2"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/whatsapp/link", h.link)
}

func (h *Handler) link(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if FormatPhone(phone) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "phone is required"})
	}
	return c.JSON(fiber.Map{
		"phone": FormatPhone(phone),
		"url":   URL(phone, c.Query("text")),
	})
}
