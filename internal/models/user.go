package models

import (
	"time"

	"tira/backend/internal/query"
)

type Role string

const (
	RoleLeader Role = "leader"
	RoleUser   Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleLeader || r == RoleUser
}

type User struct {
	UserID    string     `json:"user_id" gorm:"column:user_id;primaryKey"`
	Username  string     `json:"username" gorm:"column:username;unique;not null"`
	Email     string     `json:"email" gorm:"column:email;unique;not null"`
	Role      Role       `json:"role" gorm:"column:role;not null"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at"`
	LastLogin *time.Time `json:"last_login" gorm:"column:last_login"`
	PwdHash   string     `json:"-" gorm:"column:pwd_hash;not null"`
}

func (User) TableName() string { return "users" }

// Safe returns a projection with the credential hash stripped. Every user
// value that crosses the service boundary goes through this.
func (u User) Safe() User {
	u.PwdHash = ""
	return u
}

type UserFilter struct {
	UserID   *string
	Username *string
	Email    *string
	Role     *Role
}

func (f UserFilter) Conditions() []query.Condition {
	var conds []query.Condition
	if f.UserID != nil {
		conds = append(conds, query.Condition{Column: "user_id", Match: query.MatchEquals, Value: *f.UserID})
	}
	if f.Username != nil {
		conds = append(conds, query.Condition{Column: "username", Match: query.MatchSubstring, Value: *f.Username})
	}
	if f.Email != nil {
		conds = append(conds, query.Condition{Column: "email", Match: query.MatchEquals, Value: *f.Email})
	}
	if f.Role != nil {
		conds = append(conds, query.Condition{Column: "role", Match: query.MatchEquals, Value: string(*f.Role)})
	}
	return conds
}
