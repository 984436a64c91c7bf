package models

import (
	"time"

	"tira/backend/internal/query"
)

// Comment on a task. AuthorID goes null if the author is later deleted.
type Comment struct {
	CommentID string    `json:"comment_id" gorm:"column:comment_id;primaryKey"`
	TaskID    string    `json:"task_id" gorm:"column:task_id;not null"`
	AuthorID  *string   `json:"author_id" gorm:"column:author_id"`
	Content   string    `json:"content" gorm:"column:content;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Comment) TableName() string { return "comments" }

type CommentFilter struct {
	CommentID *string
	TaskID    *string
	AuthorID  *string
}

func (f CommentFilter) Conditions() []query.Condition {
	var conds []query.Condition
	if f.CommentID != nil {
		conds = append(conds, query.Condition{Column: "comment_id", Match: query.MatchEquals, Value: *f.CommentID})
	}
	if f.TaskID != nil {
		conds = append(conds, query.Condition{Column: "task_id", Match: query.MatchEquals, Value: *f.TaskID})
	}
	if f.AuthorID != nil {
		conds = append(conds, query.Condition{Column: "author_id", Match: query.MatchEquals, Value: *f.AuthorID})
	}
	return conds
}
