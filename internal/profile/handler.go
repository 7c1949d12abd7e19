package profile

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/estate-crm/internal/auth"
)

// AvatarRoute is the public URL prefix of uploaded avatars.
const AvatarRoute = "/uploads/avatars/"

type Handler struct {
	service   *Service
	avatarDir string
}

// NewHandler stores avatar uploads under avatarDir.
func NewHandler(s *Service, avatarDir string) *Handler {
	return &Handler{service: s, avatarDir: avatarDir}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/approved-emails/check", h.checkApproved)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/profile", h.getProfile)
	// PUT and PATCH both take partial payloads
	app.Put("/api/v1/profile", h.updateProfile)
	app.Patch("/api/v1/profile", h.updateProfile)
	app.Post("/api/v1/profile/avatar", h.uploadAvatar)
	app.Delete("/api/v1/profile/avatar", h.removeAvatar)

	admin := RequireAdmin(h.service)
	app.Get("/api/v1/approved-emails", admin, h.listApproved)
	app.Post("/api/v1/approved-emails", admin, h.approve)
	app.Delete("/api/v1/approved-emails/:id", admin, h.removeApproved)
}

// RequireAdmin rejects callers whose profile is not an admin with 403.
func RequireAdmin(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromCtx(c)
		if err != nil {
			return auth.Unauthorized(c)
		}
		ok, err := s.IsAdmin(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin role required"})
		}
		return c.Next()
	}
}

func writeError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ve.Fields})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "profile not found"})
	case errors.Is(err, ErrEmailNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "approved email not found"})
	case errors.Is(err, ErrEmailExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "email already approved"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	p, err := h.service.Get(c.UserContext(), userID, auth.EmailFromCtx(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	var payload Update
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	updated, err := h.service.Update(c.UserContext(), userID, auth.EmailFromCtx(c), payload)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

// uploadAvatar accepts the file under "avatar" or the generic "file" key.
func (h *Handler) uploadAvatar(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	var file *multipart.FileHeader
	if f, e := c.FormFile("avatar"); e == nil && f != nil {
		file = f
	} else if f, e := c.FormFile("file"); e == nil && f != nil {
		file = f
	}
	if file == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}

	name := userID + "_" + filepath.Base(file.Filename)
	if err := os.MkdirAll(h.avatarDir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if err := c.SaveFile(file, filepath.Join(h.avatarDir, name)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	url := AvatarRoute + name
	updated, err := h.service.SetAvatar(c.UserContext(), userID, auth.EmailFromCtx(c), &url)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) removeAvatar(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return auth.Unauthorized(c)
	}
	updated, err := h.service.SetAvatar(c.UserContext(), userID, auth.EmailFromCtx(c), nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) checkApproved(c *fiber.Ctx) error {
	ok, err := h.service.IsApproved(c.UserContext(), c.Query("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"approved": ok})
}

func (h *Handler) listApproved(c *fiber.Ctx) error {
	list, err := h.service.ListApproved(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

type approveRequest struct {
	Email string `json:"email"`
}

func (h *Handler) approve(c *fiber.Ctx) error {
	userID, _ := auth.UserIDFromCtx(c)
	payload := new(approveRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.Approve(c.UserContext(), payload.Email, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) removeApproved(c *fiber.Ctx) error {
	if err := h.service.RemoveApproved(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
