// Package auth contains the authentication endpoints
package auth

import (
	"bitwise74/auth-api/app/respond"
	"bitwise74/auth-api/internal"
	"bitwise74/auth-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type signupBody struct {
	Email     string `json:"email" binding:"required,mail"`
	Password  string `json:"password" binding:"required,password"`
	Name      string `json:"name" binding:"max=255"`
	Phone     string `json:"phone" binding:"max=32"`
	Role      string `json:"role" binding:"max=32"`
	IsCompany bool   `json:"isCompany"`
}

func Signup(c *gin.Context, d *internal.Deps) {
	var data signupBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	pair, err := d.Sessions.Signup(c.Request.Context(), service.SignupInput{
		Email:     data.Email,
		Password:  data.Password,
		Name:      data.Name,
		Phone:     data.Phone,
		Role:      data.Role,
		IsCompany: data.IsCompany,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "accountCreated",
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}
