package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FacilityWatch-001/src/models"
	activitysvc "Backend-FacilityWatch-001/src/services/activities"
	"Backend-FacilityWatch-001/src/utils"
)

// CreateActivity godoc
// @Summary      Create a monitoring activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        activity body models.Activity true "Activity"
// @Success      201 {object} models.Activity
// @Router       /activities [post]
func CreateActivity(c *fiber.Ctx) error {
	var activity models.Activity
	if err := c.BodyParser(&activity); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := utils.ValidateStruct(&activity); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := activitysvc.CreateActivity(ctx, &activity)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(created)
}

// GetActivities godoc
// @Summary      List activities
// @Tags         activities
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Items per page"
// @Param        search query string false "Search by title"
// @Success      200 {object} models.PaginatedResponse
// @Router       /activities [get]
func GetActivities(c *fiber.Ctx) error {
	var params models.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid query parameters")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := activitysvc.GetActivities(ctx, params)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(result)
}

// GetActivityByID godoc
// @Summary      Get one activity
// @Tags         activities
// @Produce      json
// @Param        id path string true "Activity ID"
// @Success      200 {object} models.Activity
// @Router       /activities/{id} [get]
func GetActivityByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid activity ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	activity, err := activitysvc.GetActivityByID(ctx, id)
	if err != nil {
		return utils.HandleError(c, http.StatusNotFound, "Activity not found")
	}

	return c.JSON(activity)
}

// UpdateActivity godoc
// @Summary      Update an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID"
// @Param        activity body models.Activity true "Activity"
// @Success      200 {object} models.Activity
// @Router       /activities/{id} [put]
func UpdateActivity(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid activity ID")
	}

	var activity models.Activity
	if err := c.BodyParser(&activity); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := utils.ValidateStruct(&activity); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updated, err := activitysvc.UpdateActivity(ctx, id, &activity)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(updated)
}

// DeleteActivity godoc
// @Summary      Delete an activity
// @Tags         activities
// @Produce      json
// @Param        id path string true "Activity ID"
// @Success      200 {object} map[string]string
// @Router       /activities/{id} [delete]
func DeleteActivity(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid activity ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := activitysvc.DeleteActivity(ctx, id); err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"message": "Activity deleted successfully"})
}
