package services

import (
	"time"

	"tira/backend/internal/apperrors"
	"tira/backend/internal/models"
	"tira/backend/internal/query"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(db *gorm.DB, taskID, authorID, content string) (models.Comment, error)
	ListComments(db *gorm.DB, filter models.CommentFilter, page query.Page) (query.Result[models.Comment], error)
	UpdateComment(db *gorm.DB, commentID, content string) (models.Comment, error)
	DeleteComment(db *gorm.DB, commentID string) error
}

type CommentServiceImpl struct{}

func NewCommentService() *CommentServiceImpl {
	return &CommentServiceImpl{}
}

func (s *CommentServiceImpl) CreateComment(db *gorm.DB, taskID, authorID, content string) (models.Comment, error) {
	if !isValidCommentContent(content) {
		return models.Comment{}, apperrors.Validation("Comment content must be between 1 and 300 characters")
	}
	if _, found, err := query.SelectOne[models.Task](db, models.TaskFilter{TaskID: &taskID}); err != nil {
		return models.Comment{}, err
	} else if !found {
		return models.Comment{}, apperrors.NotFound("Task")
	}
	if _, found, err := query.SelectOne[models.User](db, models.UserFilter{UserID: &authorID}); err != nil {
		return models.Comment{}, err
	} else if !found {
		return models.Comment{}, apperrors.NotFound("User")
	}

	comment := models.Comment{
		CommentID: newID(),
		TaskID:    taskID,
		AuthorID:  &authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(&comment).Error; err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// ListComments checks that any referenced task or author actually exists
// before filtering, so a dangling id reads as 404 rather than an empty
// page. A comment_id filter that matches nothing is a miss, not an empty
// list.
func (s *CommentServiceImpl) ListComments(db *gorm.DB, filter models.CommentFilter, page query.Page) (query.Result[models.Comment], error) {
	if filter.TaskID != nil {
		if _, found, err := query.SelectOne[models.Task](db, models.TaskFilter{TaskID: filter.TaskID}); err != nil {
			return query.Result[models.Comment]{}, err
		} else if !found {
			return query.Result[models.Comment]{}, apperrors.NotFound("Task")
		}
	}
	if filter.AuthorID != nil {
		if _, found, err := query.SelectOne[models.User](db, models.UserFilter{UserID: filter.AuthorID}); err != nil {
			return query.Result[models.Comment]{}, err
		} else if !found {
			return query.Result[models.Comment]{}, apperrors.NotFound("User")
		}
	}
	result, err := query.SelectPage[models.Comment](db, filter, "created_at DESC", page)
	if err != nil {
		return query.Result[models.Comment]{}, err
	}
	if filter.CommentID != nil && result.Pagination.Total == 0 {
		return query.Result[models.Comment]{}, apperrors.NotFound("Comment")
	}
	return result, nil
}

func (s *CommentServiceImpl) UpdateComment(db *gorm.DB, commentID, content string) (models.Comment, error) {
	if !isValidCommentContent(content) {
		return models.Comment{}, apperrors.Validation("Comment content must be between 1 and 300 characters")
	}
	if _, found, err := query.SelectOne[models.Comment](db, models.CommentFilter{CommentID: &commentID}); err != nil {
		return models.Comment{}, err
	} else if !found {
		return models.Comment{}, apperrors.NotFound("Comment")
	}
	if err := db.Model(&models.Comment{}).Where("comment_id = ?", commentID).Update("content", content).Error; err != nil {
		return models.Comment{}, err
	}
	comment, _, err := query.SelectOne[models.Comment](db, models.CommentFilter{CommentID: &commentID})
	return comment, err
}

func (s *CommentServiceImpl) DeleteComment(db *gorm.DB, commentID string) error {
	res := db.Where("comment_id = ?", commentID).Delete(&models.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Comment")
	}
	return nil
}
