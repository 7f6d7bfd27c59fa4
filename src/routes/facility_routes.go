package routes

import (
	"Backend-FacilityWatch-001/src/controllers"
	"Backend-FacilityWatch-001/src/middleware"
	"Backend-FacilityWatch-001/src/models"

	"github.com/gofiber/fiber/v2"
)

// facilityRoutes กำหนดเส้นทางสำหรับ Facility API
func facilityRoutes(app *fiber.App) {
	facilities := app.Group("/api/facilities")
	facilities.Use(middleware.AuthJWT)

	facilities.Get("/", controllers.GetFacilities)
	facilities.Get("/:id", controllers.GetFacilityByID)

	admin := middleware.RequireRole(models.RoleAdmin)
	facilities.Post("/", admin, controllers.CreateFacility)
	facilities.Put("/:id", admin, controllers.UpdateFacility)
	facilities.Delete("/:id", admin, controllers.DeleteFacility)
}
