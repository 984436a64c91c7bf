package apperrors

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes.
// Reference: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
	pgStringTooLong       = "22001"
	pgNumericOutOfRange   = "22003"
	pgUndefinedTable      = "42P01"
	pgUndefinedColumn     = "42703"
)

// constraintMessages maps named database constraints to user-facing text.
var constraintMessages = map[string]string{
	// Users
	"users_username_uq": "Username already exists",
	"users_email_uq":    "Email already exists",

	// Teams
	"teams_name_uq": "Team name already exists",

	// Tags
	"tags_name_team_uq": "Tag name already exists in this team",

	// Task tags
	"task_tags_task_tag_uq": "Tag already assigned to this task",

	// Foreign keys
	"tasks_team_id_fk":        "Team does not exist",
	"tasks_assigned_to_fk":    "Assigned user does not exist",
	"tasks_created_by_fk":     "Creator user does not exist",
	"comments_task_id_fk":     "Task does not exist",
	"comments_author_id_fk":   "Author does not exist",
	"tags_team_id_fk":         "Team does not exist",
	"task_tags_task_id_fk":    "Task does not exist",
	"task_tags_tag_id_fk":     "Tag does not exist",
	"team_members_team_id_fk": "Team does not exist",
	"team_members_user_id_fk": "User does not exist",
}

var detailKeyPattern = regexp.MustCompile(`Key \((.+?)\)=`)

// Translate converts any failure raised in the request path into one
// {status, message} pair. Matchers run in a fixed priority order and the
// first one that claims the error wins; several could overlap on
// ambiguous errors, so the order is part of the contract.
func Translate(err error) (int, string) {
	for _, match := range matchers {
		if status, msg, ok := match(err); ok {
			return status, msg
		}
	}
	// Never leak internals past this point.
	return http.StatusInternalServerError, "Something went wrong"
}

type matcher func(err error) (int, string, bool)

var matchers = []matcher{
	matchDomain,
	matchPostgres,
	matchExplicitStatus,
	matchMalformedJSON,
	matchBindingValidation,
}

func matchDomain(err error) (int, string, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message, true
	}
	return 0, "", false
}

func matchPostgres(err error) (int, string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return 0, "", false
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return http.StatusConflict, uniqueViolationMessage(pgErr), true
	case pgForeignKeyViolation:
		return http.StatusBadRequest, foreignKeyViolationMessage(pgErr), true
	case pgNotNullViolation:
		return http.StatusBadRequest, notNullViolationMessage(pgErr), true
	case pgCheckViolation:
		return http.StatusBadRequest, "Data validation failed: Invalid value provided", true
	case pgInvalidText:
		return http.StatusBadRequest, "Invalid data format provided", true
	case pgStringTooLong:
		return http.StatusBadRequest, "Input data is too long", true
	case pgNumericOutOfRange:
		return http.StatusBadRequest, "Numeric value out of range", true
	case pgUndefinedTable, pgUndefinedColumn:
		// Schema mismatch; never leak schema details to the client.
		return http.StatusInternalServerError, "Database configuration error", true
	default:
		return http.StatusInternalServerError, "Database error occurred", true
	}
}

func uniqueViolationMessage(pgErr *pgconn.PgError) string {
	if msg, ok := lookupConstraint(pgErr.ConstraintName); ok {
		return msg
	}
	// Best effort: extract the violating field from the error detail.
	if m := detailKeyPattern.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		field := strings.ReplaceAll(m[1], "_", " ")
		return field + " already exists"
	}
	return "This record already exists"
}

func foreignKeyViolationMessage(pgErr *pgconn.PgError) string {
	if msg, ok := lookupConstraint(pgErr.ConstraintName); ok {
		return msg
	}
	return "Referenced resource does not exist"
}

func notNullViolationMessage(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName == "" {
		return "Required field is missing"
	}
	return strings.ReplaceAll(pgErr.ColumnName, "_", " ") + " is required"
}

func lookupConstraint(name string) (string, bool) {
	lower := strings.ToLower(name)
	for key, msg := range constraintMessages {
		if strings.Contains(lower, key) {
			return msg, true
		}
	}
	return "", false
}

func matchExplicitStatus(err error) (int, string, bool) {
	var statusErr interface{ HTTPStatus() int }
	if errors.As(err, &statusErr) {
		msg := err.Error()
		if msg == "" {
			msg = "Request failed"
		}
		return statusErr.HTTPStatus(), msg, true
	}
	return 0, "", false
}

func matchMalformedJSON(err error) (int, string, bool) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return http.StatusBadRequest, "Invalid JSON format in request body", true
	}
	return 0, "", false
}

func matchBindingValidation(err error) (int, string, bool) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest, vErrs.Error(), true
	}
	return 0, "", false
}
