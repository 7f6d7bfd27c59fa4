package routes

import (
	"Backend-FacilityWatch-001/src/controllers"
	"Backend-FacilityWatch-001/src/middleware"
	"Backend-FacilityWatch-001/src/models"

	"github.com/gofiber/fiber/v2"
)

// activityRoutes กำหนดเส้นทางสำหรับ Activity API รวมถึง form builder
func activityRoutes(app *fiber.App) {
	activities := app.Group("/api/activities")
	activities.Use(middleware.AuthJWT)

	activities.Get("/", controllers.GetActivities)
	activities.Get("/:id", controllers.GetActivityByID)

	// เฉพาะ admin เท่านั้นที่จัดการ activity และแก้ไขฟอร์มได้
	admin := middleware.RequireRole(models.RoleAdmin)
	activities.Post("/", admin, controllers.CreateActivity)
	activities.Put("/:id", admin, controllers.UpdateActivity)
	activities.Delete("/:id", admin, controllers.DeleteActivity)

	// form definition ของ activity
	activities.Get("/:id/form", controllers.GetFormDefinition)
	activities.Put("/:id/form", admin, controllers.SaveFormDefinition)
	activities.Post("/:id/form/import", admin, controllers.ImportFormQuestions)
	activities.Post("/:id/form/preview", controllers.PreviewForm)

	// reports ของ activity
	activities.Get("/:id/reports", controllers.GetReportsByActivity)
	activities.Post("/:id/reports", controllers.SubmitReport)
}
