package handlers

import (
	"strconv"
	"time"

	"servio/models"
	"servio/utils"

	"github.com/gin-gonic/gin"
)

// dateQuery parses a required YYYY-MM-DD query parameter as a UTC date.
func dateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, models.NewValidationError(name, "is required (YYYY-MM-DD)")
	}
	d, err := time.ParseInLocation(utils.DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, models.NewValidationError(name, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// optionalIntQuery returns nil when the parameter is absent.
func optionalIntQuery(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, models.NewValidationError(name, "must be an integer number of minutes")
	}
	return &n, nil
}

func bindError(err error) error {
	return models.NewValidationError("body", err.Error())
}
