package handlers

import (
	"net/http"

	"tira/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TeamHandler struct {
	db          *gorm.DB
	teamService services.TeamService
}

func NewTeamHandler(db *gorm.DB, teamService services.TeamService) *TeamHandler {
	return &TeamHandler{db: db, teamService: teamService}
}

func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var input struct {
		OwnerID string `json:"owner_id"`
		Name    string `json:"name"`
	}
	if err := bindRequired(c, &input, "owner_id", "name"); err != nil {
		c.Error(err)
		return
	}
	team, err := h.teamService.CreateTeam(h.db, input.OwnerID, input.Name)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

func (h *TeamHandler) GetUserTeams(c *gin.Context) {
	teams, err := h.teamService.GetUserTeams(h.db, c.Param("user_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := bindRequired(c, &input, "name"); err != nil {
		c.Error(err)
		return
	}
	team, err := h.teamService.UpdateTeam(h.db, c.Param("team_id"), input.Name)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *TeamHandler) AddMember(c *gin.Context) {
	var input struct {
		UserID string `json:"user_id"`
	}
	if err := bindRequired(c, &input, "user_id"); err != nil {
		c.Error(err)
		return
	}
	member, err := h.teamService.AddMember(h.db, c.Param("team_id"), input.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *TeamHandler) RemoveMember(c *gin.Context) {
	if err := h.teamService.RemoveMember(h.db, c.Param("team_id"), c.Param("user_id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TeamHandler) ListMembers(c *gin.Context) {
	members, err := h.teamService.ListMembers(h.db, c.Param("team_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	if err := h.teamService.DeleteTeam(h.db, c.Param("team_id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
