package models

import "time"

type ChangeType string

const (
	ChangeCreate ChangeType = "CREATE"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

type HistoryEntity string

const (
	EntityTask    HistoryEntity = "TASK"
	EntityComment HistoryEntity = "COMMENT"
	EntityTag     HistoryEntity = "TAG"
)

// TaskHistory is append-only and written by store triggers, never by
// application code.
type TaskHistory struct {
	HistoryID  string        `json:"history_id" gorm:"column:history_id;primaryKey"`
	TaskID     string        `json:"task_id" gorm:"column:task_id;not null"`
	ChangeType ChangeType    `json:"change_type" gorm:"column:change_type;not null"`
	Entity     HistoryEntity `json:"entity" gorm:"column:entity;not null"`
	Field      *string       `json:"field" gorm:"column:field"`
	OldValue   *string       `json:"old_value" gorm:"column:old_value"`
	NewValue   *string       `json:"new_value" gorm:"column:new_value"`
	ChangedAt  time.Time     `json:"changed_at" gorm:"column:changed_at"`
}

func (TaskHistory) TableName() string { return "task_history" }
