package models

import (
	"time"

	"tira/backend/internal/query"
)

type Team struct {
	TeamID    string    `json:"team_id" gorm:"column:team_id;primaryKey"`
	OwnerID   string    `json:"owner_id" gorm:"column:owner_id;not null"`
	Name      string    `json:"name" gorm:"column:name;unique;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Team) TableName() string { return "teams" }

// TeamMember is the membership row joining a user to a team. The role is
// copied from the user at invite time; joined_at stays null while the
// invite is pending.
type TeamMember struct {
	TeamMembersID string     `json:"team_members_id" gorm:"column:team_members_id;primaryKey"`
	TeamID        string     `json:"team_id" gorm:"column:team_id;not null"`
	UserID        string     `json:"user_id" gorm:"column:user_id;not null"`
	Role          Role       `json:"role" gorm:"column:role;not null"`
	InvitedAt     time.Time  `json:"invited_at" gorm:"column:invited_at"`
	JoinedAt      *time.Time `json:"joined_at" gorm:"column:joined_at"`
}

func (TeamMember) TableName() string { return "team_members" }

type TeamFilter struct {
	TeamID  *string
	OwnerID *string
	Name    *string
}

func (f TeamFilter) Conditions() []query.Condition {
	var conds []query.Condition
	if f.TeamID != nil {
		conds = append(conds, query.Condition{Column: "team_id", Match: query.MatchEquals, Value: *f.TeamID})
	}
	if f.OwnerID != nil {
		conds = append(conds, query.Condition{Column: "owner_id", Match: query.MatchEquals, Value: *f.OwnerID})
	}
	if f.Name != nil {
		conds = append(conds, query.Condition{Column: "name", Match: query.MatchSubstring, Value: *f.Name})
	}
	return conds
}
