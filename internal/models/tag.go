package models

import "tira/backend/internal/query"

type Tag struct {
	TagID  string `json:"tag_id" gorm:"column:tag_id;primaryKey"`
	TeamID string `json:"team_id" gorm:"column:team_id;not null"`
	Name   string `json:"name" gorm:"column:name;not null"`
}

func (Tag) TableName() string { return "tags" }

// TaskTag is the task/tag junction row. The (task_id, tag_id) pair is
// unique; inserts no-op on conflict.
type TaskTag struct {
	TaskTagsID string `json:"task_tags_id" gorm:"column:task_tags_id;primaryKey"`
	TaskID     string `json:"task_id" gorm:"column:task_id;not null"`
	TagID      string `json:"tag_id" gorm:"column:tag_id;not null"`
}

func (TaskTag) TableName() string { return "task_tags" }

type TagFilter struct {
	TagID  *string
	TeamID *string
	Name   *string
}

func (f TagFilter) Conditions() []query.Condition {
	var conds []query.Condition
	if f.TagID != nil {
		conds = append(conds, query.Condition{Column: "tag_id", Match: query.MatchEquals, Value: *f.TagID})
	}
	if f.TeamID != nil {
		conds = append(conds, query.Condition{Column: "team_id", Match: query.MatchEquals, Value: *f.TeamID})
	}
	if f.Name != nil {
		conds = append(conds, query.Condition{Column: "name", Match: query.MatchEquals, Value: *f.Name})
	}
	return conds
}
