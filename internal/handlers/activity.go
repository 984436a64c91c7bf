package handlers

import (
	"net/http"

	"tira/backend/internal/query"
	"tira/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ActivityHandler struct {
	db              *gorm.DB
	activityService services.ActivityService
}

func NewActivityHandler(db *gorm.DB, activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{db: db, activityService: activityService}
}

func (h *ActivityHandler) GetUserActivity(c *gin.Context) {
	page := query.ParsePage(c.Query("page"), c.Query("pageSize"))
	result, err := h.activityService.GetUserActivity(h.db, c.Param("user_id"), page)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}
