package utils

import (
	"errors"
	"net/http"

	"servio/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Field   string            `json:"field,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
	Details string            `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindConflict:
		return http.StatusConflict
	case models.KindCollaborator:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err using the kind-to-status mapping. Client errors are logged at
// warn level, server-side ones at error level.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	logger := GetLogger().With(zap.String("path", c.FullPath()), zap.Int("status", status))

	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		logger.Error("unclassified error", zap.Error(err))
		c.AbortWithStatusJSON(status, ErrorResponse{Message: "Internal Server Error"})
		return
	}

	if status >= http.StatusInternalServerError {
		logger.Error(appErr.Message, zap.String("code", appErr.Code), zap.Error(err))
	} else {
		logger.Warn(appErr.Message, zap.String("code", appErr.Code), zap.String("field", appErr.Field))
	}

	resp := ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Code,
		Field:   appErr.Field,
		Meta:    appErr.Meta,
	}
	// storage details stay in the logs
	if appErr.Kind == models.KindCollaborator {
		resp.Message = "storage unavailable, try again later"
	}
	c.AbortWithStatusJSON(status, resp)
}
