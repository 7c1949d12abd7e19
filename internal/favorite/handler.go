package favorite

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth"
)

// Handler delegates favorite operations to the favorite service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/favorites", h.getFavorites)
	app.Get("/api/v1/favorites/check", h.checkFavorite)
	app.Post("/api/v1/favorites", h.addFavorite)
	app.Post("/api/v1/favorites/toggle", h.toggleFavorite)
	app.Delete("/api/v1/favorites", h.removeFavorite)
}

type favoriteRequest struct {
	ClientID   string `json:"clientId"`
	ClientType string `json:"clientType"`
}

func parseRequest(c *fiber.Ctx) (string, ClientType, error) {
	payload := new(favoriteRequest)
	if err := c.BodyParser(payload); err != nil {
		return "", "", err
	}
	if payload.ClientID == "" {
		return "", "", errors.New("clientId is required")
	}
	typ := ParseClientType(payload.ClientType)
	if typ == "" {
		return "", "", ErrInvalidClientType
	}
	return payload.ClientID, typ, nil
}

func (h *Handler) addFavorite(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	clientID, typ, err := parseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	fav, err := h.service.Add(c.UserContext(), userID, clientID, typ)
	if err != nil {
		if errors.Is(err, ErrAlreadyFavorite) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "client already in favorites"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fav)
}

func (h *Handler) removeFavorite(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	clientID, typ, err := parseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.Remove(c.UserContext(), userID, clientID, typ); err != nil {
		if errors.Is(err, ErrNotFavorite) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "client not in favorites"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) toggleFavorite(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	clientID, typ, err := parseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	on, err := h.service.Toggle(c.UserContext(), userID, clientID, typ)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"clientId": clientID, "clientType": typ, "favorite": on})
}

func (h *Handler) getFavorites(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	var typ ClientType
	if raw := c.Query("type"); raw != "" {
		if typ = ParseClientType(raw); typ == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ErrInvalidClientType.Error()})
		}
	}
	favs, err := h.service.List(c.UserContext(), userID, typ)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(favs)
}

func (h *Handler) checkFavorite(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	typ := ParseClientType(c.Query("type"))
	if typ == "" || c.Query("clientId") == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "clientId and type are required"})
	}
	ok, err := h.service.IsFavorite(c.UserContext(), userID, c.Query("clientId"), typ)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"favorite": ok})
}
