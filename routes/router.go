package routes

import (
	"revuea.app/configs"
	"revuea.app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
// Özet servisi dış sağlayıcıya bağımlı olduğu için main tarafından verilir.
func SetupRoutes(app *fiber.App, summaryService services.ISummaryService) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(configs.SetupCORS())

	app.Get("/api/ping", pingHandler)

	// --- Rota Grupları ---
	registerAuthRoutes(app)
	registerFormRoutes(app, summaryService)
	registerResponseRoutes(app)
	registerUserRoutes(app)

	// --- 404 Handler ---
	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

func pingHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "pong"})
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Resource not found"})
}
