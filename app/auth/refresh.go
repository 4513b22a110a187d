package auth

import (
	"bitwise74/auth-api/app/respond"
	"bitwise74/auth-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Refresh rotates the refresh token. Runs behind the refresh guard which
// sets userID and refreshToken.
func Refresh(c *gin.Context, d *internal.Deps) {
	pair, err := d.Sessions.RefreshTokens(c.Request.Context(), c.GetString("userID"), c.GetString("refreshToken"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}
