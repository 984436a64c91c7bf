package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tira/backend/internal/config"
	"tira/backend/internal/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *RouterTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.db = db
	createTestSchema(suite.T(), db)

	cfg := &config.Config{}
	suite.router = handlers.NewRouter(cfg, db, zap.NewNop().Sugar())
}

func createTestSchema(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, stmt := range []string{
		`CREATE TABLE users (
			user_id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL,
			created_at DATETIME,
			last_login DATETIME,
			pwd_hash TEXT NOT NULL
		)`,
		`CREATE TABLE teams (
			team_id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME
		)`,
		`CREATE TABLE team_members (
			team_members_id TEXT PRIMARY KEY,
			team_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			role TEXT NOT NULL,
			invited_at DATETIME,
			joined_at DATETIME,
			UNIQUE (team_id, user_id)
		)`,
		`CREATE TABLE tasks (
			task_id TEXT PRIMARY KEY,
			team_id TEXT NOT NULL,
			assigned_to TEXT NOT NULL,
			created_by TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL,
			priority TEXT NOT NULL,
			deadline DATETIME NOT NULL,
			content TEXT,
			last_modified_at DATETIME
		)`,
		`CREATE TABLE tags (
			tag_id TEXT PRIMARY KEY,
			team_id TEXT NOT NULL,
			name TEXT NOT NULL,
			UNIQUE (team_id, name)
		)`,
		`CREATE TABLE task_tags (
			task_tags_id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			tag_id TEXT NOT NULL,
			UNIQUE (task_id, tag_id)
		)`,
		`CREATE TABLE comments (
			comment_id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			author_id TEXT,
			content TEXT NOT NULL,
			created_at DATETIME
		)`,
		`CREATE TABLE task_history (
			history_id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			change_type TEXT NOT NULL,
			entity TEXT NOT NULL,
			field TEXT,
			old_value TEXT,
			new_value TEXT,
			changed_at DATETIME
		)`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}
}

func (suite *RouterTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *RouterTestSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var payload map[string]any
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func (suite *RouterTestSuite) createUser(username, email, role string) map[string]any {
	rec := suite.do(http.MethodPost, "/users", gin.H{
		"username": username,
		"email":    email,
		"role":     role,
		"password": "Sup3r$ecret",
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return suite.decode(rec)
}

func (suite *RouterTestSuite) TestCreateUserMissingFields() {
	rec := suite.do(http.MethodPost, "/users", gin.H{"username": "alice", "email": "alice@example.com"})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Missing fields: role, password", suite.decode(rec)["error"])
}

func (suite *RouterTestSuite) TestCreateUserMalformedJSON() {
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte("{nope")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Invalid JSON format in request body", suite.decode(rec)["error"])
}

func (suite *RouterTestSuite) TestCreateAndListUsersEnvelope() {
	created := suite.createUser("alice", "alice@example.com", "leader")
	suite.NotEmpty(created["user_id"])
	suite.NotContains(created, "pwd_hash")

	rec := suite.do(http.MethodGet, "/users?page=1&pageSize=10", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	payload := suite.decode(rec)

	data, ok := payload["data"].([]any)
	suite.Require().True(ok)
	suite.Len(data, 1)

	pagination, ok := payload["pagination"].(map[string]any)
	suite.Require().True(ok)
	suite.EqualValues(1, pagination["total"])
	suite.EqualValues(1, pagination["page"])
	suite.EqualValues(10, pagination["pageSize"])
	suite.EqualValues(1, pagination["totalPages"])
}

func (suite *RouterTestSuite) TestValidationErrorShape() {
	rec := suite.do(http.MethodPost, "/users", gin.H{
		"username": "x",
		"email":    "alice@example.com",
		"role":     "user",
		"password": "Sup3r$ecret",
	})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Invalid username", suite.decode(rec)["error"])
}

func (suite *RouterTestSuite) TestConflictOnDuplicateUser() {
	suite.createUser("alice", "alice@example.com", "user")

	rec := suite.do(http.MethodPost, "/users", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"role":     "user",
		"password": "Sup3r$ecret",
	})
	suite.Equal(http.StatusConflict, rec.Code)
	suite.Equal("Username already exists", suite.decode(rec)["error"])
}

func (suite *RouterTestSuite) TestTeamLifecycle() {
	leader := suite.createUser("lead", "lead@example.com", "leader")
	worker := suite.createUser("worker", "worker@example.com", "user")

	rec := suite.do(http.MethodPost, "/teams", gin.H{"owner_id": leader["user_id"], "name": "Platform"})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	team := suite.decode(rec)

	teamPath := "/teams/" + team["team_id"].(string)

	rec = suite.do(http.MethodPost, teamPath+"/members", gin.H{"user_id": worker["user_id"]})
	suite.Require().Equal(http.StatusCreated, rec.Code)

	rec = suite.do(http.MethodGet, teamPath+"/members", nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	var members []map[string]any
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &members))
	suite.Len(members, 2)

	rec = suite.do(http.MethodDelete, teamPath+"/members/"+worker["user_id"].(string), nil)
	suite.Equal(http.StatusNoContent, rec.Code)

	rec = suite.do(http.MethodDelete, teamPath, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(true, suite.decode(rec)["success"])
}

func (suite *RouterTestSuite) TestTaskLifecycle() {
	leader := suite.createUser("lead", "lead@example.com", "leader")

	rec := suite.do(http.MethodPost, "/teams", gin.H{"owner_id": leader["user_id"], "name": "Platform"})
	suite.Require().Equal(http.StatusCreated, rec.Code)
	team := suite.decode(rec)

	rec = suite.do(http.MethodPost, "/tasks", gin.H{
		"created_by":  leader["user_id"],
		"team_id":     team["team_id"],
		"assigned_to": leader["user_id"],
		"title":       "Ship the release",
		"status":      "pending",
		"priority":    "high",
		"deadline":    "2026-09-15",
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	task := suite.decode(rec)

	taskPath := "/tasks/" + task["task_id"].(string)

	rec = suite.do(http.MethodGet, taskPath, nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal("Ship the release", suite.decode(rec)["title"])

	rec = suite.do(http.MethodPatch, taskPath, gin.H{"status": "done"})
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal("done", suite.decode(rec)["status"])

	rec = suite.do(http.MethodDelete, taskPath, nil)
	suite.Equal(http.StatusNoContent, rec.Code)

	rec = suite.do(http.MethodGet, taskPath, nil)
	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Equal("Task not found", suite.decode(rec)["error"])
}

func (suite *RouterTestSuite) TestCommentRoutes() {
	leader := suite.createUser("lead", "lead@example.com", "leader")

	rec := suite.do(http.MethodPost, "/teams", gin.H{"owner_id": leader["user_id"], "name": "Platform"})
	suite.Require().Equal(http.StatusCreated, rec.Code)
	team := suite.decode(rec)

	rec = suite.do(http.MethodPost, "/tasks", gin.H{
		"created_by":  leader["user_id"],
		"team_id":     team["team_id"],
		"assigned_to": leader["user_id"],
		"title":       "Ship the release",
		"status":      "pending",
		"priority":    "high",
		"deadline":    "2026-09-15",
	})
	suite.Require().Equal(http.StatusCreated, rec.Code)
	task := suite.decode(rec)

	rec = suite.do(http.MethodPost, "/comments/tasks/"+task["task_id"].(string), gin.H{
		"author_id": leader["user_id"],
		"content":   "Looks good",
	})
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	comment := suite.decode(rec)

	rec = suite.do(http.MethodGet, "/comments?task_id="+task["task_id"].(string), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Len(suite.decode(rec)["data"], 1)

	rec = suite.do(http.MethodPatch, "/comments/"+comment["comment_id"].(string), gin.H{"content": "Revised"})
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal("Revised", suite.decode(rec)["content"])

	rec = suite.do(http.MethodDelete, "/comments/"+comment["comment_id"].(string), nil)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.Equal(true, suite.decode(rec)["success"])
}

func (suite *RouterTestSuite) TestUnknownRoute() {
	rec := suite.do(http.MethodGet, "/nope", nil)
	suite.Equal(http.StatusNotFound, rec.Code)
	payload := suite.decode(rec)
	suite.Equal("Route not found", payload["error"])
	suite.Equal("/nope", payload["path"])
	suite.Equal("GET", payload["method"])
}

func (suite *RouterTestSuite) TestInvalidDateFilter() {
	rec := suite.do(http.MethodGet, "/tasks?date_start=yesterday", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Invalid date format", suite.decode(rec)["error"])
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
