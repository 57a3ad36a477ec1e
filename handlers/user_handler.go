package handlers

import (
	"errors"

	"revuea.app/configs/configslog"
	"revuea.app/middlewares"
	"revuea.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler profil uçları için handler.
type UserHandler struct {
	service services.IUserService
}

// NewUserHandler yeni bir UserHandler örneği oluşturur.
func NewUserHandler() *UserHandler {
	return &UserHandler{service: services.NewUserService()}
}

// Profile (GET /api/user/profile)
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)

	user, err := h.service.GetProfile(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
		}
		configslog.Log.Error("Get Profile Error", zap.Uint("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": profileData(user)})
}

type updateNameRequest struct {
	Name string `json:"name"`
}

// UpdateName (PATCH /api/user/update)
func (h *UserHandler) UpdateName(c *fiber.Ctx) error {
	userID := middlewares.CurrentUserID(c)

	var req updateNameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid name"})
	}

	user, err := h.service.UpdateName(c.UserContext(), userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid name"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
		default:
			configslog.Log.Error("Update Name Error", zap.Uint("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Name updated successfully",
		"data":    profileData(user),
	})
}
