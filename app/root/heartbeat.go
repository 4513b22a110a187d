// Package root contains endpoints that don't belong to any resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat reports that the server is up. Never cached by proxies.
func Heartbeat(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
}
