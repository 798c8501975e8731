// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
	logger "github.com/abhiraj070/RuleMind/logging"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError writes an error response with an explicit status and code.
func RespondWithError(c *gin.Context, status int, code, message string, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", status),
	}
	if status >= 500 {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}

// RespondWithServiceError maps err to its status and code. The message
// carries the error text for client errors and a generic text otherwise.
func RespondWithServiceError(c *gin.Context, message string, err error) {
	code, status := rm_errors.Code(err)
	if status < 500 || code == rm_errors.CodeAuditWrite {
		message = message + ": " + err.Error()
	}
	RespondWithError(c, status, code, message, err)
}
