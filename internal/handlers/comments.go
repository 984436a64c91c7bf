package handlers

import (
	"net/http"

	"tira/backend/internal/models"
	"tira/backend/internal/query"
	"tira/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct {
	db             *gorm.DB
	commentService services.CommentService
}

func NewCommentHandler(db *gorm.DB, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{db: db, commentService: commentService}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input struct {
		AuthorID string `json:"author_id"`
		Content  string `json:"content"`
	}
	if err := bindRequired(c, &input, "author_id", "content"); err != nil {
		c.Error(err)
		return
	}
	comment, err := h.commentService.CreateComment(h.db, c.Param("task_id"), input.AuthorID, input.Content)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	filter := models.CommentFilter{
		CommentID: strQuery(c, "comment_id"),
		TaskID:    strQuery(c, "task_id"),
		AuthorID:  strQuery(c, "author_id"),
	}
	page := query.ParsePage(c.Query("page"), c.Query("pageSize"))

	result, err := h.commentService.ListComments(h.db, filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var input struct {
		Content string `json:"content"`
	}
	if err := bindRequired(c, &input, "content"); err != nil {
		c.Error(err)
		return
	}
	comment, err := h.commentService.UpdateComment(h.db, c.Param("comment_id"), input.Content)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.commentService.DeleteComment(h.db, c.Param("comment_id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
