package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FacilityWatch-001/src/database"
	"Backend-FacilityWatch-001/src/jobs"
	"Backend-FacilityWatch-001/src/models"
	formsvc "Backend-FacilityWatch-001/src/services/forms"
	"Backend-FacilityWatch-001/src/utils"
)

// GetFormDefinition godoc
// @Summary      Get the form definition of an activity
// @Tags         forms
// @Produce      json
// @Param        id path string true "Activity ID"
// @Success      200 {object} models.FormDefinition
// @Router       /activities/{id}/form [get]
func GetFormDefinition(c *fiber.Ctx) error {
	activityID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid activity ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	def, err := formsvc.GetFormDefinition(ctx, activityID)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}
	if def == nil {
		return utils.HandleError(c, http.StatusNotFound, "Activity has no form definition")
	}

	return c.JSON(def)
}

// SaveFormDefinition godoc
// @Summary      Validate and save the whole form definition of an activity
// @Description  The definition is saved wholesale. Any validation error blocks the save and is returned per question.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID"
// @Param        definition body models.FormDefinition true "Form definition"
// @Success      200 {object} models.ValidationResult
// @Failure      422 {object} models.ValidationResult
// @Router       /activities/{id}/form [put]
func SaveFormDefinition(c *fiber.Ctx) error {
	activityID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid activity ID")
	}

	var def models.FormDefinition
	if err := c.BodyParser(&def); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	def.ActivityID = activityID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := formsvc.SaveFormDefinition(ctx, &def)
	if err != nil {
		var ve *formsvc.ErrValidation
		if errors.As(err, &ve) {
			return c.Status(http.StatusUnprocessableEntity).JSON(ve.Result)
		}
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(result)
}

// ImportFormQuestions godoc
// @Summary      Bulk import questions from an xlsx workbook
// @Description  Primary sheet holds questions; an optional "options" sheet holds option lists keyed by field_name. With async=true the import runs as a background job.
// @Tags         forms
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Activity ID"
// @Param        file formData file true "Workbook"
// @Param        async query bool false "Run in background"
// @Success      200 {object} models.ValidationResult
// @Failure      422 {object} models.ValidationResult
// @Router       /activities/{id}/form/import [post]
func ImportFormQuestions(c *fiber.Ctx) error {
	activityID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid activity ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Workbook file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Cannot open uploaded file")
	}
	defer file.Close()

	workbook, err := io.ReadAll(file)
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Cannot read uploaded file")
	}

	if c.QueryBool("async") {
		if database.AsynqClient == nil {
			return utils.HandleError(c, http.StatusServiceUnavailable, "Background imports are not available")
		}
		task, err := jobs.NewFormImportTask(activityID.Hex(), workbook)
		if err != nil {
			return utils.HandleError(c, http.StatusInternalServerError, err.Error())
		}
		if _, err := database.AsynqClient.Enqueue(task); err != nil {
			return utils.HandleError(c, http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusAccepted).JSON(fiber.Map{"queued": true})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, count, err := formsvc.ImportWorkbook(ctx, activityID, workbook)
	if err != nil {
		var ve *formsvc.ErrValidation
		if errors.As(err, &ve) {
			return c.Status(http.StatusUnprocessableEntity).JSON(ve.Result)
		}
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"imported": count, "validation": result})
}

// PreviewForm godoc
// @Summary      Evaluate the form definition against an answer set
// @Description  Returns per-question visibility, computed values and scores. This is the live render contract the fill UI consumes.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID"
// @Param        answers body models.AnswerSet true "Current answers"
// @Success      200 {object} forms.RenderResult
// @Router       /activities/{id}/form/preview [post]
func PreviewForm(c *fiber.Ctx) error {
	activityID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid activity ID")
	}

	var answers models.AnswerSet
	if err := c.BodyParser(&answers); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := formsvc.Preview(ctx, activityID, answers)
	if err != nil {
		return utils.HandleError(c, http.StatusNotFound, err.Error())
	}

	return c.JSON(result)
}
