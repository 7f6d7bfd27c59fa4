package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FacilityWatch-001/src/seeder"
	"Backend-FacilityWatch-001/src/utils"
)

// CreateTestForm godoc
// @Summary      Seed a demo inspection form for an activity
// @Tags         test-data
// @Produce      json
// @Param        id path string true "Activity ID"
// @Success      201 {object} map[string]string
// @Router       /test/form/{id} [post]
func CreateTestForm(c *fiber.Ctx) error {
	activityID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid activity ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := seeder.SeedSampleForm(ctx, activityID); err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Sample form seeded"})
}
