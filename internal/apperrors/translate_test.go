package apperrors_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"tira/backend/internal/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateDomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{apperrors.Validation("Invalid username"), http.StatusBadRequest, "Invalid username"},
		{apperrors.NotFound("Task"), http.StatusNotFound, "Task not found"},
		{apperrors.NotFoundMessage("Tag not found on task"), http.StatusNotFound, "Tag not found on task"},
		{apperrors.Forbidden("Only leaders can create teams"), http.StatusForbidden, "Only leaders can create teams"},
		{apperrors.Conflict("Email already exists"), http.StatusConflict, "Email already exists"},
		{apperrors.Internal("boom"), http.StatusInternalServerError, "boom"},
	}
	for _, tc := range cases {
		status, msg := apperrors.Translate(tc.err)
		assert.Equal(t, tc.status, status)
		assert.Equal(t, tc.message, msg)
	}
}

func TestTranslateWrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("creating user: %w", apperrors.Conflict("Username already exists"))
	status, msg := apperrors.Translate(wrapped)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Username already exists", msg)
}

func TestTranslateUniqueViolations(t *testing.T) {
	cases := []struct {
		name       string
		constraint string
		detail     string
		message    string
	}{
		{"known constraint", "users_username_uq", "", "Username already exists"},
		{"known team constraint", "teams_name_uq", "", "Team name already exists"},
		{"tag per team", "tags_name_team_uq", "", "Tag name already exists in this team"},
		{"junction", "task_tags_task_tag_uq", "", "Tag already assigned to this task"},
		{"unknown constraint with detail", "some_other_uq", "Key (serial_number)=(42) already exists.", "serial number already exists"},
		{"unknown constraint no detail", "some_other_uq", "", "This record already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := apperrors.Translate(&pgconn.PgError{
				Code:           "23505",
				ConstraintName: tc.constraint,
				Detail:         tc.detail,
			})
			assert.Equal(t, http.StatusConflict, status)
			assert.Equal(t, tc.message, msg)
		})
	}
}

func TestTranslateForeignKeyViolations(t *testing.T) {
	status, msg := apperrors.Translate(&pgconn.PgError{Code: "23503", ConstraintName: "tasks_assigned_to_fk"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Assigned user does not exist", msg)

	status, msg = apperrors.Translate(&pgconn.PgError{Code: "23503", ConstraintName: "mystery_fk"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Referenced resource does not exist", msg)
}

func TestTranslateOtherPostgresCodes(t *testing.T) {
	cases := []struct {
		code    string
		column  string
		status  int
		message string
	}{
		{"23502", "team_id", http.StatusBadRequest, "team id is required"},
		{"23502", "", http.StatusBadRequest, "Required field is missing"},
		{"23514", "", http.StatusBadRequest, "Data validation failed: Invalid value provided"},
		{"22P02", "", http.StatusBadRequest, "Invalid data format provided"},
		{"22001", "", http.StatusBadRequest, "Input data is too long"},
		{"22003", "", http.StatusBadRequest, "Numeric value out of range"},
		{"42P01", "", http.StatusInternalServerError, "Database configuration error"},
		{"42703", "", http.StatusInternalServerError, "Database configuration error"},
		{"57014", "", http.StatusInternalServerError, "Database error occurred"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			status, msg := apperrors.Translate(&pgconn.PgError{Code: tc.code, ColumnName: tc.column})
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, msg)
		})
	}
}

func TestTranslateExplicitStatus(t *testing.T) {
	status, msg := apperrors.Translate(&apperrors.HTTPError{
		Status:  http.StatusBadRequest,
		Message: "Missing fields: username, email",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing fields: username, email", msg)
}

func TestTranslateMalformedJSON(t *testing.T) {
	var syntaxTarget struct{}
	jsonErr := json.Unmarshal([]byte("{nope"), &syntaxTarget)

	for _, err := range []error{jsonErr, io.EOF, io.ErrUnexpectedEOF} {
		status, msg := apperrors.Translate(err)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid JSON format in request body", msg)
	}

	var typed struct {
		Count int `json:"count"`
	}
	typeErr := json.Unmarshal([]byte(`{"count": "three"}`), &typed)
	status, msg := apperrors.Translate(typeErr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid JSON format in request body", msg)
}

func TestTranslateFallback(t *testing.T) {
	status, msg := apperrors.Translate(errors.New("socket closed unexpectedly"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Something went wrong", msg)
}

// A domain error wrapping a database failure must read as the domain
// error; matcher order decides this.
func TestTranslateOrderPrefersDomain(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_uq"}
	err := fmt.Errorf("%w: %v", apperrors.Conflict("Email already exists"), inner)
	status, msg := apperrors.Translate(err)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Email already exists", msg)
}
