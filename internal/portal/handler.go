package portal

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth"
	"github.com/wichananm65/estate-crm/internal/property"
	"github.com/wichananm65/estate-crm/internal/seller"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/properties/:id/publish", h.publish)
	app.Put("/api/v1/portals/:portal/listings/:listingId", h.update)
	app.Delete("/api/v1/portals/:portal/listings/:listingId", h.remove)
	app.Get("/api/v1/portals/:portal/listings/:listingId/status", h.status)
}

func writeError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": ve.Errors})
	case errors.Is(err, ErrNoUser):
		return auth.Unauthorized(c)
	case errors.Is(err, ErrUnknownPortal):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "portal not found"})
	case errors.Is(err, property.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "property not found"})
	case errors.Is(err, seller.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "seller not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

// writeResult answers 502 when the portal refused the call.
func writeResult(c *fiber.Ctx, okStatus int, res Result) error {
	if !res.Success {
		return c.Status(fiber.StatusBadGateway).JSON(res)
	}
	return c.Status(okStatus).JSON(res)
}

type publishRequest struct {
	Portal string `json:"portal"`
	Extra
}

func (h *Handler) publish(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	payload := new(publishRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	res, err := h.service.Publish(c.UserContext(), userID, c.Params("id"), payload.Portal, payload.Extra)
	if err != nil {
		return writeError(c, err)
	}
	return writeResult(c, fiber.StatusCreated, res)
}

type updateRequest struct {
	PropertyID string `json:"propertyId"`
	Extra
}

func (h *Handler) update(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.PropertyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "propertyId is required"})
	}
	res, err := h.service.Update(c.UserContext(), userID, c.Params("portal"), c.Params("listingId"), payload.PropertyID, payload.Extra)
	if err != nil {
		return writeError(c, err)
	}
	return writeResult(c, fiber.StatusOK, res)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	res, err := h.service.Delete(c.UserContext(), userID, c.Params("portal"), c.Params("listingId"))
	if err != nil {
		return writeError(c, err)
	}
	return writeResult(c, fiber.StatusOK, res)
}

func (h *Handler) status(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	res, err := h.service.Status(c.UserContext(), userID, c.Params("portal"), c.Params("listingId"))
	if err != nil {
		return writeError(c, err)
	}
	return writeResult(c, fiber.StatusOK, res)
}
