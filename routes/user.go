package routes

import (
	"revuea.app/handlers"
	"revuea.app/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerUserRoutes(app *fiber.App) {
	userHandler := handlers.NewUserHandler()
	userGroup := app.Group("/api/user")
	userGroup.Use(middlewares.AuthMiddleware)

	userGroup.Get("/profile", userHandler.Profile)
	userGroup.Patch("/update", userHandler.UpdateName)
}
