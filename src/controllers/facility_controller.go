package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FacilityWatch-001/src/models"
	facilitysvc "Backend-FacilityWatch-001/src/services/facilities"
	"Backend-FacilityWatch-001/src/utils"
)

// CreateFacility godoc
// @Summary      Register a facility
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Param        facility body models.Facility true "Facility"
// @Success      201 {object} models.Facility
// @Router       /facilities [post]
func CreateFacility(c *fiber.Ctx) error {
	var facility models.Facility
	if err := c.BodyParser(&facility); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := utils.ValidateStruct(&facility); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := facilitysvc.CreateFacility(ctx, &facility)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(created)
}

// GetFacilities godoc
// @Summary      List facilities
// @Tags         facilities
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Items per page"
// @Param        search query string false "Search by name"
// @Success      200 {object} models.PaginatedResponse
// @Router       /facilities [get]
func GetFacilities(c *fiber.Ctx) error {
	var params models.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid query parameters")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := facilitysvc.GetFacilities(ctx, params)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(result)
}

// GetFacilityByID godoc
// @Summary      Get one facility
// @Tags         facilities
// @Produce      json
// @Param        id path string true "Facility ID"
// @Success      200 {object} models.Facility
// @Router       /facilities/{id} [get]
func GetFacilityByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid facility ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	facility, err := facilitysvc.GetFacilityByID(ctx, id)
	if err != nil {
		return utils.HandleError(c, http.StatusNotFound, "Facility not found")
	}

	return c.JSON(facility)
}

// UpdateFacility godoc
// @Summary      Update a facility
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Param        id path string true "Facility ID"
// @Param        facility body models.Facility true "Facility"
// @Success      200 {object} models.Facility
// @Router       /facilities/{id} [put]
func UpdateFacility(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid facility ID")
	}

	var facility models.Facility
	if err := c.BodyParser(&facility); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := utils.ValidateStruct(&facility); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updated, err := facilitysvc.UpdateFacility(ctx, id, &facility)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(updated)
}

// DeleteFacility godoc
// @Summary      Delete a facility
// @Tags         facilities
// @Produce      json
// @Param        id path string true "Facility ID"
// @Success      200 {object} map[string]string
// @Router       /facilities/{id} [delete]
func DeleteFacility(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid facility ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := facilitysvc.DeleteFacility(ctx, id); err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"message": "Facility deleted successfully"})
}
