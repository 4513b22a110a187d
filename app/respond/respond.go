// Package respond writes the JSON error bodies shared by every handler
package respond

import (
	"bitwise74/auth-api/internal/service"
	"bitwise74/auth-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error maps a service error to its status code. Business errors are 403,
// everything else is a 500 without details.
func Error(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	var se *service.Error
	if errors.As(err, &se) && !se.Internal {
		c.JSON(http.StatusForbidden, gin.H{
			"message":   se.Code,
			"requestID": requestID,
		})
		return
	}

	if se == nil {
		zap.L().Error("Unexpected error", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"message":   service.ErrInternal.Code,
		"requestID": requestID,
	})
}

// BadRequest reports a body that couldn't be bound or validated
func BadRequest(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	body := gin.H{
		"message":   "invalidBody",
		"requestID": requestID,
	}

	if f := validators.InvalidField(err); f != "" {
		body["field"] = f
	}

	zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
	c.JSON(http.StatusBadRequest, body)
}

// Forbidden reports a failure that has no service error behind it
func Forbidden(c *gin.Context, code string) {
	c.JSON(http.StatusForbidden, gin.H{
		"message":   code,
		"requestID": c.GetString("requestID"),
	})
}
