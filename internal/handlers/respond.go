// Package handlers binds the HTTP routes to the domain services. Handlers
// parse and presence-check the request, call a service, and either write
// the success body or attach the error for the boundary middleware to
// translate.
package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"tira/backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// bindRequired decodes the JSON body into dst after checking that every
// required top-level key is present. Malformed JSON is returned as-is so
// the translator can map it.
func bindRequired(c *gin.Context, dst any, required ...string) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return err
	}
	var missing []string
	for _, field := range required {
		if _, ok := keys[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &apperrors.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "Missing fields: " + strings.Join(missing, ", "),
		}
	}
	return json.Unmarshal(body, dst)
}

func strQuery(c *gin.Context, name string) *string {
	if v, ok := c.GetQuery(name); ok && v != "" {
		return &v
	}
	return nil
}
