package services

import (
	"tira/backend/internal/apperrors"
	"tira/backend/internal/models"
	"tira/backend/internal/query"

	"gorm.io/gorm"
)

type ActivityService interface {
	GetUserActivity(db *gorm.DB, userID string, page query.Page) (query.Result[models.TaskHistory], error)
}

type ActivityServiceImpl struct{}

func NewActivityService() *ActivityServiceImpl {
	return &ActivityServiceImpl{}
}

// GetUserActivity pages the history of every task belonging to any team
// the user is a member of, newest change first.
func (s *ActivityServiceImpl) GetUserActivity(db *gorm.DB, userID string, page query.Page) (query.Result[models.TaskHistory], error) {
	if _, found, err := query.SelectOne[models.User](db, models.UserFilter{UserID: &userID}); err != nil {
		return query.Result[models.TaskHistory]{}, err
	} else if !found {
		return query.Result[models.TaskHistory]{}, apperrors.NotFound("User")
	}

	var taskIDs []string
	err := db.Table("tasks").
		Distinct("tasks.task_id").
		Joins("JOIN team_members ON team_members.team_id = tasks.team_id").
		Where("team_members.user_id = ?", userID).
		Pluck("tasks.task_id", &taskIDs).Error
	if err != nil {
		return query.Result[models.TaskHistory]{}, err
	}
	if len(taskIDs) == 0 {
		return query.NewResult([]models.TaskHistory{}, 0, page), nil
	}

	window := db.Table("task_history").Where("task_id IN ?", taskIDs)
	count := db.Table("task_history").Where("task_id IN ?", taskIDs)
	return query.ScanPage[models.TaskHistory](window, count, "task_history.*", "changed_at DESC", page)
}
