package services

import (
	"tira/backend/internal/apperrors"
	"tira/backend/internal/models"
	"tira/backend/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagService interface {
	CreateTag(db *gorm.DB, teamID, name string) (models.Tag, error)
	GetTagsByTeam(db *gorm.DB, teamID string) ([]models.Tag, error)
	GetTagByID(db *gorm.DB, teamID, tagID string) (models.Tag, error)
	UpdateTag(db *gorm.DB, teamID, tagID, name string) (models.Tag, error)
	DeleteTag(db *gorm.DB, teamID, tagID string) error
	AddTagToTask(db *gorm.DB, taskID, tagID string) (models.TaskTag, error)
	RemoveTagFromTask(db *gorm.DB, taskID, tagID string) error
	ListTagsByTask(db *gorm.DB, taskID string) ([]models.Tag, error)
	ListTasksByTag(db *gorm.DB, teamID, tagID string, page query.Page) (query.Result[models.Task], error)
}

type TagServiceImpl struct{}

func NewTagService() *TagServiceImpl {
	return &TagServiceImpl{}
}

func (s *TagServiceImpl) CreateTag(db *gorm.DB, teamID, name string) (models.Tag, error) {
	if !isValidTagName(name) {
		return models.Tag{}, apperrors.Validation("Invalid tag name")
	}
	if _, found, err := query.SelectOne[models.Team](db, models.TeamFilter{TeamID: &teamID}); err != nil {
		return models.Tag{}, err
	} else if !found {
		return models.Tag{}, apperrors.NotFound("Team")
	}
	if _, found, err := query.SelectOne[models.Tag](db, models.TagFilter{TeamID: &teamID, Name: &name}); err != nil {
		return models.Tag{}, err
	} else if found {
		return models.Tag{}, apperrors.Conflict("Tag name already exists in this team")
	}

	tag := models.Tag{TagID: newID(), TeamID: teamID, Name: name}
	if err := db.Create(&tag).Error; err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *TagServiceImpl) GetTagsByTeam(db *gorm.DB, teamID string) ([]models.Tag, error) {
	if _, found, err := query.SelectOne[models.Team](db, models.TeamFilter{TeamID: &teamID}); err != nil {
		return nil, err
	} else if !found {
		return nil, apperrors.NotFound("Team")
	}
	var tags []models.Tag
	err := query.Apply(db, models.TagFilter{TeamID: &teamID}).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (s *TagServiceImpl) GetTagByID(db *gorm.DB, teamID, tagID string) (models.Tag, error) {
	tag, found, err := query.SelectOne[models.Tag](db, models.TagFilter{TagID: &tagID, TeamID: &teamID})
	if err != nil {
		return models.Tag{}, err
	}
	if !found {
		return models.Tag{}, apperrors.NotFound("Tag")
	}
	return tag, nil
}

func (s *TagServiceImpl) UpdateTag(db *gorm.DB, teamID, tagID, name string) (models.Tag, error) {
	if !isValidTagName(name) {
		return models.Tag{}, apperrors.Validation("Invalid tag name")
	}
	if _, err := s.GetTagByID(db, teamID, tagID); err != nil {
		return models.Tag{}, err
	}
	clash, found, err := query.SelectOne[models.Tag](db, models.TagFilter{TeamID: &teamID, Name: &name})
	if err != nil {
		return models.Tag{}, err
	}
	if found && clash.TagID != tagID {
		return models.Tag{}, apperrors.Conflict("Tag name already exists in this team")
	}
	if err := db.Model(&models.Tag{}).Where("tag_id = ?", tagID).Update("name", name).Error; err != nil {
		return models.Tag{}, err
	}
	return s.GetTagByID(db, teamID, tagID)
}

func (s *TagServiceImpl) DeleteTag(db *gorm.DB, teamID, tagID string) error {
	if _, err := s.GetTagByID(db, teamID, tagID); err != nil {
		return err
	}
	return db.Where("tag_id = ?", tagID).Delete(&models.Tag{}).Error
}

func (s *TagServiceImpl) AddTagToTask(db *gorm.DB, taskID, tagID string) (models.TaskTag, error) {
	task, found, err := query.SelectOne[models.Task](db, models.TaskFilter{TaskID: &taskID})
	if err != nil {
		return models.TaskTag{}, err
	}
	if !found {
		return models.TaskTag{}, apperrors.NotFound("Task")
	}
	// The tag must belong to the task's team.
	tag, found, err := query.SelectOne[models.Tag](db, models.TagFilter{TagID: &tagID})
	if err != nil {
		return models.TaskTag{}, err
	}
	if !found || tag.TeamID != task.TeamID {
		return models.TaskTag{}, apperrors.NotFound("Tag")
	}

	link := models.TaskTag{TaskTagsID: newID(), TaskID: taskID, TagID: tagID}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
	if res.Error != nil {
		return models.TaskTag{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.TaskTag{}, apperrors.Conflict("Tag already assigned to this task")
	}
	return link, nil
}

func (s *TagServiceImpl) RemoveTagFromTask(db *gorm.DB, taskID, tagID string) error {
	res := db.Where("task_id = ? AND tag_id = ?", taskID, tagID).Delete(&models.TaskTag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundMessage("Tag not found on task")
	}
	return nil
}

func (s *TagServiceImpl) ListTagsByTask(db *gorm.DB, taskID string) ([]models.Tag, error) {
	if _, found, err := query.SelectOne[models.Task](db, models.TaskFilter{TaskID: &taskID}); err != nil {
		return nil, err
	} else if !found {
		return nil, apperrors.NotFound("Task")
	}
	var tags []models.Tag
	err := db.Table("tags").
		Select("tags.*").
		Joins("JOIN task_tags ON task_tags.tag_id = tags.tag_id").
		Where("task_tags.task_id = ?", taskID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}

func (s *TagServiceImpl) ListTasksByTag(db *gorm.DB, teamID, tagID string, page query.Page) (query.Result[models.Task], error) {
	if _, err := s.GetTagByID(db, teamID, tagID); err != nil {
		return query.Result[models.Task]{}, err
	}
	window := db.Table("tasks").
		Joins("JOIN task_tags ON task_tags.task_id = tasks.task_id").
		Where("task_tags.tag_id = ?", tagID)
	count := db.Table("tasks").
		Joins("JOIN task_tags ON task_tags.task_id = tasks.task_id").
		Where("task_tags.tag_id = ?", tagID)
	return query.ScanPage[models.Task](window, count, "tasks.*", "tasks.deadline DESC", page)
}
