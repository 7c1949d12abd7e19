package contract

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth"
)

// DefaultDeadlineDays is the window of GET /contracts/deadlines without ?days.
const DefaultDeadlineDays = 14

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/contracts", h.listContracts)
	app.Post("/api/v1/contracts", h.createContract)
	app.Get("/api/v1/contracts/deadlines", h.deadlines)
	app.Put("/api/v1/contracts/:id", h.updateContract)
	app.Delete("/api/v1/contracts/:id", h.deleteContract)
	app.Post("/api/v1/contracts/:id/register", h.registerContract)
}

func writeError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ve.Fields})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "contract not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

// listContracts accepts ?status=to_register to return only pending registrations.
func (h *Handler) listContracts(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	var cs []Contract
	if Status(c.Query("status")) == StatusToRegister {
		cs, err = h.service.ToRegister(c.UserContext(), userID)
	} else {
		cs, err = h.service.List(c.UserContext(), userID)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cs)
}

func (h *Handler) createContract(c *fiber.Ctx) error {
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

func (h *Handler) updateContract(c *fiber.Ctx) error {
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

func (h *Handler) deleteContract(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	if err := h.service.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) registerContract(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	registered, err := h.service.Register(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(registered)
}

func (h *Handler) deadlines(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	days := c.QueryInt("days", DefaultDeadlineDays)
	if days < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "days must not be negative"})
	}
	upcoming, err := h.service.Upcoming(c.UserContext(), userID, days)
	if err != nil {
		return writeError(c, err)
	}
	critical, err := h.service.Critical(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"upcoming": upcoming, "critical": critical})
}
