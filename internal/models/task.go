package models

import (
	"time"

	"tira/backend/internal/query"
)

type TaskStatus string

const (
	StatusPending  TaskStatus = "pending"
	StatusOngoing  TaskStatus = "ongoing"
	StatusDone     TaskStatus = "done"
	StatusCanceled TaskStatus = "canceled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusOngoing, StatusDone, StatusCanceled:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Task struct {
	TaskID         string       `json:"task_id" gorm:"column:task_id;primaryKey"`
	TeamID         string       `json:"team_id" gorm:"column:team_id;not null"`
	AssignedTo     string       `json:"assigned_to" gorm:"column:assigned_to;not null"`
	CreatedBy      string       `json:"created_by" gorm:"column:created_by;not null"`
	Title          string       `json:"title" gorm:"column:title;not null"`
	Description    *string      `json:"description" gorm:"column:description"`
	Status         TaskStatus   `json:"status" gorm:"column:status;not null"`
	Priority       TaskPriority `json:"priority" gorm:"column:priority;not null"`
	Deadline       time.Time    `json:"deadline" gorm:"column:deadline;not null"`
	Content        *string      `json:"content" gorm:"column:content"`
	LastModifiedAt time.Time    `json:"last_modified_at" gorm:"column:last_modified_at"`
}

func (Task) TableName() string { return "tasks" }

// TaskFilter narrows task listings. Title matches as a case-insensitive
// substring; DateStart/DateEnd bound the deadline from below/above.
type TaskFilter struct {
	TaskID     *string
	TeamID     *string
	AssignedTo *string
	CreatedBy  *string
	Title      *string
	Status     *TaskStatus
	Priority   *TaskPriority
	DateStart  *time.Time
	DateEnd    *time.Time
}

func (f TaskFilter) Conditions() []query.Condition {
	var conds []query.Condition
	if f.TaskID != nil {
		conds = append(conds, query.Condition{Column: "task_id", Match: query.MatchEquals, Value: *f.TaskID})
	}
	if f.TeamID != nil {
		conds = append(conds, query.Condition{Column: "team_id", Match: query.MatchEquals, Value: *f.TeamID})
	}
	if f.AssignedTo != nil {
		conds = append(conds, query.Condition{Column: "assigned_to", Match: query.MatchEquals, Value: *f.AssignedTo})
	}
	if f.CreatedBy != nil {
		conds = append(conds, query.Condition{Column: "created_by", Match: query.MatchEquals, Value: *f.CreatedBy})
	}
	if f.Title != nil {
		conds = append(conds, query.Condition{Column: "title", Match: query.MatchSubstring, Value: *f.Title})
	}
	if f.Status != nil {
		conds = append(conds, query.Condition{Column: "status", Match: query.MatchEquals, Value: string(*f.Status)})
	}
	if f.Priority != nil {
		conds = append(conds, query.Condition{Column: "priority", Match: query.MatchEquals, Value: string(*f.Priority)})
	}
	if f.DateStart != nil {
		conds = append(conds, query.Condition{Column: "deadline", Match: query.MatchRangeStart, Value: *f.DateStart})
	}
	if f.DateEnd != nil {
		conds = append(conds, query.Condition{Column: "deadline", Match: query.MatchRangeEnd, Value: *f.DateEnd})
	}
	return conds
}
