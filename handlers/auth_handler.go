package handlers

import (
	"errors"

	"revuea.app/configs/configslog"
	"revuea.app/models"
	"revuea.app/pkg/mailer"
	"revuea.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler kayıt/doğrulama/giriş uçları için handler.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{service: services.NewAuthService(mailer.NewSMTPMailer())}
}

// NewAuthHandlerWithService bağımlılıkları dışarıdan almak için (testler).
func NewAuthHandlerWithService(service services.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// profileData kullanıcıyı API sözleşmesindeki dar biçimde döndürür.
func profileData(user *models.User) fiber.Map {
	return fiber.Map{"id": user.ID, "name": user.Name, "email": user.Email}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup (POST /api/auth/signup)
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	email, err := h.service.Signup(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAuthInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "User already exists"})
		default:
			configslog.Log.Error("Signup Error", zap.String("email", req.Email), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "OTP sent to email",
		"data":    fiber.Map{"email": email},
	})
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Verify (POST /api/auth/verify)
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	result, err := h.service.Verify(c.UserContext(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAuthInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
		case errors.Is(err, services.ErrInvalidOTP):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid or expired OTP"})
		default:
			configslog.Log.Error("Verify Error", zap.String("email", req.Email), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Email verified successfully",
		"data":    fiber.Map{"token": result.Token, "user": profileData(result.User)},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login (POST /api/auth/login)
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid input"})
	}

	result, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid credentials"})
		}
		configslog.Log.Error("Login Error", zap.String("email", req.Email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    fiber.Map{"token": result.Token, "user": profileData(result.User)},
	})
}
