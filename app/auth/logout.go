package auth

import (
	"bitwise74/auth-api/app/respond"
	"bitwise74/auth-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Logout revokes the current refresh token. Access tokens stay valid until
// they expire.
func Logout(c *gin.Context, d *internal.Deps) {
	if err := d.Sessions.Logout(c.Request.Context(), c.GetString("userID")); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "loggedOut",
	})
}
