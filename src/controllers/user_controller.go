package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FacilityWatch-001/src/models"
	usersvc "Backend-FacilityWatch-001/src/services/users"
	"Backend-FacilityWatch-001/src/utils"
)

// Login godoc
// @Summary      Authenticate and receive a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body models.LoginRequest true "Credentials"
// @Success      200 {object} models.LoginResponse
// @Router       /auth/login [post]
func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := usersvc.Login(ctx, &req)
	if err != nil {
		return utils.HandleError(c, http.StatusUnauthorized, "Invalid email or password")
	}

	return c.JSON(resp)
}

// GetMe godoc
// @Summary      Get the authenticated user
// @Tags         auth
// @Produce      json
// @Success      200 {object} models.User
// @Router       /auth/me [get]
func GetMe(c *fiber.Ctx) error {
	uid, _ := c.Locals("userId").(string)
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return utils.HandleError(c, http.StatusUnauthorized, "Invalid token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := usersvc.GetUserByID(ctx, id)
	if err != nil {
		return utils.HandleError(c, http.StatusNotFound, "User not found")
	}

	return c.JSON(user)
}

// CreateUser godoc
// @Summary      Create a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user body models.CreateUserRequest true "User"
// @Success      201 {object} models.User
// @Router       /users [post]
func CreateUser(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid input")
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := usersvc.CreateUser(ctx, &req)
	if err != nil {
		return utils.HandleError(c, http.StatusConflict, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(user)
}

// GetUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Items per page"
// @Param        search query string false "Search by name or email"
// @Success      200 {object} models.PaginatedResponse
// @Router       /users [get]
func GetUsers(c *fiber.Ctx) error {
	var params models.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return utils.HandleError(c, http.StatusBadRequest, "Invalid query parameters")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := usersvc.GetUsers(ctx, params)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(result)
}
