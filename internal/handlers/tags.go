package handlers

import (
	"net/http"

	"tira/backend/internal/query"
	"tira/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TagHandler struct {
	db         *gorm.DB
	tagService services.TagService
}

func NewTagHandler(db *gorm.DB, tagService services.TagService) *TagHandler {
	return &TagHandler{db: db, tagService: tagService}
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := bindRequired(c, &input, "name"); err != nil {
		c.Error(err)
		return
	}
	tag, err := h.tagService.CreateTag(h.db, c.Param("team_id"), input.Name)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) GetTagsByTeam(c *gin.Context) {
	tags, err := h.tagService.GetTagsByTeam(h.db, c.Param("team_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	tag, err := h.tagService.GetTagByID(h.db, c.Param("team_id"), c.Param("tag_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := bindRequired(c, &input, "name"); err != nil {
		c.Error(err)
		return
	}
	tag, err := h.tagService.UpdateTag(h.db, c.Param("team_id"), c.Param("tag_id"), input.Name)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	if err := h.tagService.DeleteTag(h.db, c.Param("team_id"), c.Param("tag_id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *TagHandler) AddTagToTask(c *gin.Context) {
	var input struct {
		TagID string `json:"tag_id"`
	}
	if err := bindRequired(c, &input, "tag_id"); err != nil {
		c.Error(err)
		return
	}
	link, err := h.tagService.AddTagToTask(h.db, c.Param("task_id"), input.TagID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *TagHandler) RemoveTagFromTask(c *gin.Context) {
	if err := h.tagService.RemoveTagFromTask(h.db, c.Param("task_id"), c.Param("tag_id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TagHandler) GetTagsByTask(c *gin.Context) {
	tags, err := h.tagService.ListTagsByTask(h.db, c.Param("task_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) GetTasksByTag(c *gin.Context) {
	page := query.ParsePage(c.Query("page"), c.Query("pageSize"))
	result, err := h.tagService.ListTasksByTag(h.db, c.Param("team_id"), c.Param("tag_id"), page)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}
