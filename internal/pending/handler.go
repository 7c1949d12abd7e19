package pending

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/clients"
)

type Handler struct {
	service *Service
	admin   fiber.Handler
}

// NewHandler guards the processing routes with admin.
func NewHandler(s *Service, admin fiber.Handler) *Handler {
	return &Handler{service: s, admin: admin}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/pending-requests", h.create)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/pending-requests", h.admin, h.list)
	app.Post("/api/v1/pending-requests/:id/process", h.admin, h.process)
}

func (h *Handler) create(c *fiber.Ctx) error {
	lead := new(clients.Lead)
	if err := c.BodyParser(lead); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if _, err := h.service.Create(c.UserContext(), *lead); err != nil {
		var ve *clients.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "errors": ve.Fields})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": clients.MessageFailed})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"success": true, "message": MessageQueued})
}

// list defaults to unprocessed requests; ?processed=all lists everything.
func (h *Handler) list(c *fiber.Ctx) error {
	var filter *bool
	switch v := c.Query("processed", "false"); v {
	case "all":
	default:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "processed must be true, false or all"})
		}
		filter = &b
	}
	list, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(list)
}

func (h *Handler) process(c *fiber.Ctx) error {
	res, err := h.service.Process(c.UserContext(), c.Params("id"))
	if err != nil {
		var ve *clients.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": ve.Fields})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "pending request not found"})
		case errors.Is(err, ErrAlreadyProcessed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "pending request already processed"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(res)
}
