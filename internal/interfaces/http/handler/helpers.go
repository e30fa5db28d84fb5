package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uuidQuery parses a required UUID query parameter
func uuidQuery(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, errors.New(name + " is required")
	}
	return uuid.Parse(raw)
}
