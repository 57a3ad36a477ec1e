package routes

import (
	"revuea.app/handlers"
	"revuea.app/middlewares"
	"revuea.app/services"

	"github.com/gofiber/fiber/v2"
)

func registerFormRoutes(app *fiber.App, summaryService services.ISummaryService) {
	formHandler := handlers.NewFormHandler(summaryService)
	formGroup := app.Group("/api/form")

	// Sıra önemli: sabit path'ler :formId parametresinden önce kayıt edilir.
	formGroup.Post("/create", middlewares.AuthMiddleware, formHandler.Create)
	formGroup.Get("/my-forms", middlewares.AuthMiddleware, formHandler.MyForms)
	formGroup.Get("/key/:shareKey", formHandler.GetByShareKey)
	formGroup.Get("/:formId", formHandler.GetByID)
	formGroup.Put("/:formId", middlewares.AuthMiddleware, formHandler.Update)
	formGroup.Patch("/:formId/end", middlewares.AuthMiddleware, formHandler.End)
	formGroup.Delete("/:formId", middlewares.AuthMiddleware, formHandler.Delete)
	formGroup.Get("/:formId/analytics", middlewares.AuthMiddleware, formHandler.Analytics)
	formGroup.Get("/:formId/summary", middlewares.AuthMiddleware, formHandler.Summary)
}
