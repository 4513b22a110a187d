package auth

import (
	"bitwise74/auth-api/app/respond"
	"bitwise74/auth-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

type signinBody struct {
	Email    string `json:"email" binding:"required,mail"`
	Password string `json:"password" binding:"required,max=72"`
}

func Signin(c *gin.Context, d *internal.Deps) {
	var data signinBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	pair, err := d.Sessions.Signin(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "welcomeBack",
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}
