package routes

import (
	"revuea.app/handlers"
	"revuea.app/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerResponseRoutes(app *fiber.App) {
	responseHandler := handlers.NewResponseHandler()
	responseGroup := app.Group("/api/response")

	// Gönderim anonimdir; dışa aktarma yalnızca form sahibine açıktır.
	responseGroup.Post("/submit/:formId", responseHandler.Submit)
	responseGroup.Get("/form/:formId/export", middlewares.AuthMiddleware, responseHandler.Export)
}
