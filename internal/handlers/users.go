package handlers

import (
	"net/http"

	"tira/backend/internal/models"
	"tira/backend/internal/query"
	"tira/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db          *gorm.DB
	userService services.UserService
}

func NewUserHandler(db *gorm.DB, userService services.UserService) *UserHandler {
	return &UserHandler{db: db, userService: userService}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := models.UserFilter{
		UserID:   strQuery(c, "user_id"),
		Username: strQuery(c, "username"),
		Email:    strQuery(c, "email"),
	}
	if role := strQuery(c, "role"); role != nil {
		r := models.Role(*role)
		filter.Role = &r
	}
	page := query.ParsePage(c.Query("page"), c.Query("pageSize"))

	result, err := h.userService.ListUsers(h.db, filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var input services.CreateUserInput
	if err := bindRequired(c, &input, "username", "email", "role", "password"); err != nil {
		c.Error(err)
		return
	}
	user, err := h.userService.CreateUser(h.db, input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var input services.UpdateUserInput
	if err := bindRequired(c, &input); err != nil {
		c.Error(err)
		return
	}
	user, err := h.userService.UpdateUser(h.db, c.Param("user_id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(h.db, c.Param("user_id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
