package services

import (
	"time"

	"tira/backend/internal/apperrors"
	"tira/backend/internal/models"
	"tira/backend/internal/query"

	"gorm.io/gorm"
)

type CreateTaskInput struct {
	CreatedBy   string  `json:"created_by"`
	TeamID      string  `json:"team_id"`
	AssignedTo  string  `json:"assigned_to"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Deadline    string  `json:"deadline"`
	Content     *string `json:"content"`
}

type UpdateTaskInput struct {
	AssignedTo  *string `json:"assigned_to"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Deadline    *string `json:"deadline"`
	Content     *string `json:"content"`
}

func (in UpdateTaskInput) empty() bool {
	return in.AssignedTo == nil && in.Title == nil && in.Description == nil &&
		in.Status == nil && in.Priority == nil && in.Deadline == nil && in.Content == nil
}

type TaskService interface {
	ListTasks(db *gorm.DB, filter models.TaskFilter, page query.Page) (query.Result[models.Task], error)
	GetTaskByID(db *gorm.DB, taskID string) (models.Task, error)
	CreateTask(db *gorm.DB, input CreateTaskInput) (models.Task, error)
	UpdateTask(db *gorm.DB, taskID string, input UpdateTaskInput) (models.Task, error)
	DeleteTask(db *gorm.DB, taskID string) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) ListTasks(db *gorm.DB, filter models.TaskFilter, page query.Page) (query.Result[models.Task], error) {
	return query.SelectPage[models.Task](db, filter, "deadline DESC", page)
}

func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, taskID string) (models.Task, error) {
	task, found, err := query.SelectOne[models.Task](db, models.TaskFilter{TaskID: &taskID})
	if err != nil {
		return models.Task{}, err
	}
	if !found {
		return models.Task{}, apperrors.NotFound("Task")
	}
	return task, nil
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, input CreateTaskInput) (models.Task, error) {
	if !isValidTitle(input.Title) {
		return models.Task{}, apperrors.Validation("Invalid task title")
	}
	status := models.TaskStatus(input.Status)
	if !status.Valid() {
		return models.Task{}, apperrors.Validation("Invalid task status")
	}
	priority := models.TaskPriority(input.Priority)
	if !priority.Valid() {
		return models.Task{}, apperrors.Validation("Invalid task priority")
	}
	deadline, ok := ParseTimestamp(input.Deadline)
	if !ok {
		return models.Task{}, apperrors.Validation("Invalid deadline")
	}

	if _, found, err := query.SelectOne[models.User](db, models.UserFilter{UserID: &input.CreatedBy}); err != nil {
		return models.Task{}, err
	} else if !found {
		return models.Task{}, apperrors.NotFound("User")
	}
	if _, found, err := query.SelectOne[models.Team](db, models.TeamFilter{TeamID: &input.TeamID}); err != nil {
		return models.Task{}, err
	} else if !found {
		return models.Task{}, apperrors.NotFound("Team")
	}
	if _, found, err := query.SelectOne[models.User](db, models.UserFilter{UserID: &input.AssignedTo}); err != nil {
		return models.Task{}, err
	} else if !found {
		return models.Task{}, apperrors.NotFound("Assigned user")
	}
	if err := s.requireMembership(db, input.TeamID, input.AssignedTo); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		TaskID:         newID(),
		TeamID:         input.TeamID,
		AssignedTo:     input.AssignedTo,
		CreatedBy:      input.CreatedBy,
		Title:          input.Title,
		Description:    input.Description,
		Status:         status,
		Priority:       priority,
		Deadline:       deadline,
		Content:        input.Content,
		LastModifiedAt: time.Now().UTC(),
	}
	if err := db.Create(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, taskID string, input UpdateTaskInput) (models.Task, error) {
	if input.empty() {
		return models.Task{}, apperrors.Validation("No fields to update")
	}

	updates := map[string]any{}
	if input.Title != nil {
		if !isValidTitle(*input.Title) {
			return models.Task{}, apperrors.Validation("Invalid task title")
		}
		updates["title"] = *input.Title
	}
	if input.Status != nil {
		if !models.TaskStatus(*input.Status).Valid() {
			return models.Task{}, apperrors.Validation("Invalid task status")
		}
		updates["status"] = *input.Status
	}
	if input.Priority != nil {
		if !models.TaskPriority(*input.Priority).Valid() {
			return models.Task{}, apperrors.Validation("Invalid task priority")
		}
		updates["priority"] = *input.Priority
	}
	if input.Deadline != nil {
		deadline, ok := ParseTimestamp(*input.Deadline)
		if !ok {
			return models.Task{}, apperrors.Validation("Invalid deadline")
		}
		updates["deadline"] = deadline
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}

	task, err := s.GetTaskByID(db, taskID)
	if err != nil {
		return models.Task{}, err
	}

	// Reassignment repeats the creation-time membership invariant.
	if input.AssignedTo != nil {
		if _, found, err := query.SelectOne[models.User](db, models.UserFilter{UserID: input.AssignedTo}); err != nil {
			return models.Task{}, err
		} else if !found {
			return models.Task{}, apperrors.NotFound("Assigned user")
		}
		if err := s.requireMembership(db, task.TeamID, *input.AssignedTo); err != nil {
			return models.Task{}, err
		}
		updates["assigned_to"] = *input.AssignedTo
	}

	updates["last_modified_at"] = time.Now().UTC()
	if err := db.Model(&models.Task{}).Where("task_id = ?", taskID).Updates(updates).Error; err != nil {
		return models.Task{}, err
	}
	return s.GetTaskByID(db, taskID)
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, taskID string) error {
	if _, err := s.GetTaskByID(db, taskID); err != nil {
		return err
	}
	return db.Where("task_id = ?", taskID).Delete(&models.Task{}).Error
}

// requireMembership re-fetches the team's membership and tests that the
// user is on it.
func (s *TaskServiceImpl) requireMembership(db *gorm.DB, teamID, userID string) error {
	var memberIDs []string
	if err := db.Model(&models.TeamMember{}).
		Where("team_id = ?", teamID).
		Pluck("user_id", &memberIDs).Error; err != nil {
		return err
	}
	for _, id := range memberIDs {
		if id == userID {
			return nil
		}
	}
	return apperrors.Validation("Assigned user is not a member of the team")
}
