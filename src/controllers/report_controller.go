package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FacilityWatch-001/src/models"
	reportsvc "Backend-FacilityWatch-001/src/services/reports"
	"Backend-FacilityWatch-001/src/utils"
)

// SubmitReport godoc
// @Summary      Submit a filled report for an activity
// @Description  Answers are evaluated against the activity's form definition. Visible required questions must be answered; scores are computed on submit.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID"
// @Param        report body models.ActivityReport true "Report"
// @Success      201 {object} models.ActivityReport
// @Router       /activities/{id}/reports [post]
func SubmitReport(c *fiber.Ctx) error {
	activityID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid activity ID")
	}

	var report models.ActivityReport
	if err := c.BodyParser(&report); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	report.ActivityID = activityID
	if uid, ok := c.Locals("userId").(string); ok && report.UserID == nil {
		if oid, err := primitive.ObjectIDFromHex(uid); err == nil {
			report.UserID = &oid
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := reportsvc.SubmitReport(ctx, &report)
	if err != nil {
		var ma *reportsvc.ErrMissingAnswers
		if errors.As(err, &ma) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error":   "required questions are unanswered",
				"missing": ma.Questions,
			})
		}
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(created)
}

// GetReportsByActivity godoc
// @Summary      List reports submitted for an activity
// @Tags         reports
// @Produce      json
// @Param        id path string true "Activity ID"
// @Param        page query int false "Page"
// @Param        limit query int false "Items per page"
// @Success      200 {object} models.PaginatedResponse
// @Router       /activities/{id}/reports [get]
func GetReportsByActivity(c *fiber.Ctx) error {
	activityID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid activity ID")
	}

	var params models.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid query parameters")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := reportsvc.GetReportsByActivity(ctx, activityID, params)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(result)
}

// GetReportByID godoc
// @Summary      Get a single report
// @Tags         reports
// @Produce      json
// @Param        id path string true "Report ID"
// @Success      200 {object} models.ActivityReport
// @Router       /reports/{id} [get]
func GetReportByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid report ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	report, err := reportsvc.GetReportByID(ctx, id)
	if err != nil {
		return utils.HandleError(c, http.StatusNotFound, "Report not found")
	}

	return c.JSON(report)
}

// GetReportAnswers godoc
// @Summary      Get the raw answer set of a report
// @Tags         reports
// @Produce      json
// @Param        id path string true "Report ID"
// @Success      200 {object} models.AnswerSet
// @Router       /reports/{id}/answers [get]
func GetReportAnswers(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid report ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	answers, err := reportsvc.GetAnswers(ctx, id)
	if err != nil {
		return utils.HandleError(c, http.StatusNotFound, "Report not found")
	}

	return c.JSON(answers)
}
