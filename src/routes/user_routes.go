package routes

import (
	"Backend-FacilityWatch-001/src/controllers"
	"Backend-FacilityWatch-001/src/middleware"
	"Backend-FacilityWatch-001/src/models"

	"github.com/gofiber/fiber/v2"
)

// userRoutes กำหนดเส้นทางสำหรับ User API (admin เท่านั้น)
func userRoutes(app *fiber.App) {
	users := app.Group("/api/users")
	users.Use(middleware.AuthJWT, middleware.RequireRole(models.RoleAdmin))

	users.Get("/", controllers.GetUsers)
	users.Post("/", controllers.CreateUser)
}
