package buyer

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth"
	"github.com/wichananm65/estate-crm/internal/whatsapp"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/buyers", h.listBuyers)
	app.Post("/api/v1/buyers", h.createBuyer)
	app.Get("/api/v1/buyers/:id", h.getBuyer)
	app.Put("/api/v1/buyers/:id", h.updateBuyer)
	app.Patch("/api/v1/buyers/:id", h.updateBuyer)
	app.Delete("/api/v1/buyers/:id", h.deleteBuyer)
	app.Get("/api/v1/buyers/:id/whatsapp", h.whatsappLink)
}

func writeError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ve.Fields})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "buyer not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func (h *Handler) listBuyers(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	buyers, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(buyers)
}

func (h *Handler) getBuyer(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	b, err := h.service.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(b)
}

func (h *Handler) createBuyer(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	in := new(Input)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.Create(c.UserContext(), userID, *in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateBuyer(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	in := new(Input)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	updated, err := h.service.Update(c.UserContext(), userID, c.Params("id"), *in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) deleteBuyer(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	if err := h.service.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) whatsappLink(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	b, err := h.service.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if whatsapp.FormatPhone(b.Phone) == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "buyer has no phone number"})
	}
	return c.JSON(fiber.Map{"url": whatsapp.URL(b.Phone, c.Query("text"))})
}
