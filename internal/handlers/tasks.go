package handlers

import (
	"net/http"

	"tira/backend/internal/apperrors"
	"tira/backend/internal/models"
	"tira/backend/internal/query"
	"tira/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter := models.TaskFilter{
		TaskID:     strQuery(c, "task_id"),
		TeamID:     strQuery(c, "team_id"),
		AssignedTo: strQuery(c, "assigned_to"),
		CreatedBy:  strQuery(c, "created_by"),
		Title:      strQuery(c, "title"),
	}
	if status := strQuery(c, "status"); status != nil {
		s := models.TaskStatus(*status)
		filter.Status = &s
	}
	if priority := strQuery(c, "priority"); priority != nil {
		p := models.TaskPriority(*priority)
		filter.Priority = &p
	}
	if raw := strQuery(c, "date_start"); raw != nil {
		t, ok := services.ParseTimestamp(*raw)
		if !ok {
			c.Error(apperrors.Validation("Invalid date format"))
			return
		}
		filter.DateStart = &t
	}
	if raw := strQuery(c, "date_end"); raw != nil {
		t, ok := services.ParseTimestamp(*raw)
		if !ok {
			c.Error(apperrors.Validation("Invalid date format"))
			return
		}
		filter.DateEnd = &t
	}
	page := query.ParsePage(c.Query("page"), c.Query("pageSize"))

	result, err := h.taskService.ListTasks(h.db, filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTaskByID(h.db, c.Param("task_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input services.CreateTaskInput
	err := bindRequired(c, &input,
		"created_by", "team_id", "assigned_to", "title", "status", "priority", "deadline")
	if err != nil {
		c.Error(err)
		return
	}
	task, err := h.taskService.CreateTask(h.db, input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var input services.UpdateTaskInput
	if err := bindRequired(c, &input); err != nil {
		c.Error(err)
		return
	}
	task, err := h.taskService.UpdateTask(h.db, c.Param("task_id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(h.db, c.Param("task_id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
