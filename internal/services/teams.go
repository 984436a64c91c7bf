package services

import (
	"time"

	"tira/backend/internal/apperrors"
	"tira/backend/internal/models"
	"tira/backend/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamService interface {
	CreateTeam(db *gorm.DB, ownerID, name string) (models.Team, error)
	GetUserTeams(db *gorm.DB, userID string) ([]models.Team, error)
	UpdateTeam(db *gorm.DB, teamID, name string) (models.Team, error)
	AddMember(db *gorm.DB, teamID, userID string) (models.TeamMember, error)
	RemoveMember(db *gorm.DB, teamID, userID string) error
	ListMembers(db *gorm.DB, teamID string) ([]models.User, error)
	DeleteTeam(db *gorm.DB, teamID string) error
}

type TeamServiceImpl struct{}

func NewTeamService() *TeamServiceImpl {
	return &TeamServiceImpl{}
}

// CreateTeam inserts the team and its owner membership in one
// transaction so a crash cannot leave a team without its owner.
func (s *TeamServiceImpl) CreateTeam(db *gorm.DB, ownerID, name string) (models.Team, error) {
	if !isValidTeamName(name) {
		return models.Team{}, apperrors.Validation("Invalid team name")
	}
	owner, found, err := query.SelectOne[models.User](db, models.UserFilter{UserID: &ownerID})
	if err != nil {
		return models.Team{}, err
	}
	if !found {
		return models.Team{}, apperrors.NotFound("User")
	}
	if owner.Role != models.RoleLeader {
		return models.Team{}, apperrors.Forbidden("Only leaders can create teams")
	}
	var clash []models.Team
	if err := db.Where("name = ?", name).Limit(1).Find(&clash).Error; err != nil {
		return models.Team{}, err
	}
	if len(clash) > 0 {
		return models.Team{}, apperrors.Conflict("Team name already exists")
	}

	now := time.Now().UTC()
	team := models.Team{
		TeamID:    newID(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
	}
	membership := models.TeamMember{
		TeamMembersID: newID(),
		TeamID:        team.TeamID,
		UserID:        ownerID,
		Role:          owner.Role,
		InvitedAt:     now,
		JoinedAt:      &now,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return models.Team{}, err
	}
	return team, nil
}

func (s *TeamServiceImpl) GetUserTeams(db *gorm.DB, userID string) ([]models.Team, error) {
	if _, found, err := query.SelectOne[models.User](db, models.UserFilter{UserID: &userID}); err != nil {
		return nil, err
	} else if !found {
		return nil, apperrors.NotFound("User")
	}
	var teams []models.Team
	err := db.Table("teams").
		Select("teams.*").
		Joins("INNER JOIN team_members ON teams.team_id = team_members.team_id").
		Where("team_members.user_id = ?", userID).
		Order("teams.created_at DESC").
		Find(&teams).Error
	return teams, err
}

func (s *TeamServiceImpl) UpdateTeam(db *gorm.DB, teamID, name string) (models.Team, error) {
	if !isValidTeamName(name) {
		return models.Team{}, apperrors.Validation("Invalid team name")
	}
	_, found, err := query.SelectOne[models.Team](db, models.TeamFilter{TeamID: &teamID})
	if err != nil {
		return models.Team{}, err
	}
	if !found {
		return models.Team{}, apperrors.NotFound("Team")
	}
	var clash []models.Team
	if err := db.Where("name = ? AND team_id <> ?", name, teamID).Limit(1).Find(&clash).Error; err != nil {
		return models.Team{}, err
	}
	if len(clash) > 0 {
		return models.Team{}, apperrors.Conflict("Team name already exists")
	}
	if err := db.Model(&models.Team{}).Where("team_id = ?", teamID).Update("name", name).Error; err != nil {
		return models.Team{}, err
	}
	team, _, err := query.SelectOne[models.Team](db, models.TeamFilter{TeamID: &teamID})
	return team, err
}

// AddMember records an invite. The (team, user) pair is unique in the
// store and the insert no-ops on conflict; a zero rows-affected result is
// the duplicate signal and surfaces as a conflict, not a silent success.
func (s *TeamServiceImpl) AddMember(db *gorm.DB, teamID, userID string) (models.TeamMember, error) {
	if _, found, err := query.SelectOne[models.Team](db, models.TeamFilter{TeamID: &teamID}); err != nil {
		return models.TeamMember{}, err
	} else if !found {
		return models.TeamMember{}, apperrors.NotFound("Team")
	}
	user, found, err := query.SelectOne[models.User](db, models.UserFilter{UserID: &userID})
	if err != nil {
		return models.TeamMember{}, err
	}
	if !found {
		return models.TeamMember{}, apperrors.NotFound("User")
	}

	membership := models.TeamMember{
		TeamMembersID: newID(),
		TeamID:        teamID,
		UserID:        userID,
		Role:          user.Role,
		InvitedAt:     time.Now().UTC(),
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership)
	if res.Error != nil {
		return models.TeamMember{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.TeamMember{}, apperrors.Conflict("User is already a member of this team")
	}
	return membership, nil
}

func (s *TeamServiceImpl) RemoveMember(db *gorm.DB, teamID, userID string) error {
	res := db.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&models.TeamMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Member")
	}
	return nil
}

func (s *TeamServiceImpl) ListMembers(db *gorm.DB, teamID string) ([]models.User, error) {
	if _, found, err := query.SelectOne[models.Team](db, models.TeamFilter{TeamID: &teamID}); err != nil {
		return nil, err
	} else if !found {
		return nil, apperrors.NotFound("Team")
	}
	var members []models.User
	err := db.Table("team_members").
		Select("users.user_id, users.username, users.email, users.role, users.created_at, users.last_login").
		Joins("INNER JOIN users ON team_members.user_id = users.user_id").
		Where("team_members.team_id = ?", teamID).
		Order("users.created_at ASC").
		Find(&members).Error
	return members, err
}

// DeleteTeam removes the team and, through the store, its memberships.
// Referential violations from remaining tasks propagate to the
// translator rather than being swallowed here.
func (s *TeamServiceImpl) DeleteTeam(db *gorm.DB, teamID string) error {
	res := db.Where("team_id = ?", teamID).Delete(&models.Team{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Team")
	}
	return nil
}
