package routes

import (
	"Backend-FacilityWatch-001/src/controllers"
	"Backend-FacilityWatch-001/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// reportRoutes กำหนดเส้นทางสำหรับ Report API (อ่านรายงานรายตัว)
func reportRoutes(app *fiber.App) {
	reports := app.Group("/api/reports")
	reports.Use(middleware.AuthJWT)

	reports.Get("/:id", controllers.GetReportByID)
	reports.Get("/:id/answers", controllers.GetReportAnswers)
}
