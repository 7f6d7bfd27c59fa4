package routes

import (
	"Backend-FacilityWatch-001/src/controllers"
	"Backend-FacilityWatch-001/src/middleware"
	"Backend-FacilityWatch-001/src/models"

	"github.com/gofiber/fiber/v2"
)

// testDataRoutes กำหนด routes สำหรับสร้างข้อมูลทดสอบ
func testDataRoutes(app *fiber.App) {
	testGroup := app.Group("/api/test")
	testGroup.Use(middleware.AuthJWT, middleware.RequireRole(models.RoleAdmin))

	// สร้างฟอร์มตัวอย่างให้ activity
	testGroup.Post("/form/:id", controllers.CreateTestForm)
}
