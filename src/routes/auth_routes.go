package routes

import (
	"Backend-FacilityWatch-001/src/controllers"
	"Backend-FacilityWatch-001/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// authRoutes กำหนด route สำหรับ auth (login / me)
func authRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/login", controllers.Login) // 🔐 login
	auth.Get("/me", middleware.AuthJWT, controllers.GetMe)
}
