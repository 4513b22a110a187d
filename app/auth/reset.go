package auth

import (
	"bitwise74/auth-api/app/respond"
	"bitwise74/auth-api/internal"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// resetCode accepts the code both as a JSON string and as a number
type resetCode string

func (r *resetCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = resetCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}

	*r = resetCode(n.String())
	return nil
}

type sendCodeBody struct {
	Email string `json:"email" binding:"required,mail"`
}

type validateCodeBody struct {
	Email string    `json:"email" binding:"required,mail"`
	Code  resetCode `json:"code" binding:"required"`
}

type confirmBody struct {
	Email       string `json:"email" binding:"required,mail"`
	NewPassword string `json:"newPassword" binding:"required,password"`
}

func SendResetCode(c *gin.Context, d *internal.Deps) {
	var data sendCodeBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	if err := d.Resets.SendResetCode(c.Request.Context(), data.Email); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "resetCodeSent",
	})
}

func ValidateResetCode(c *gin.Context, d *internal.Deps) {
	var data validateCodeBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	if err := d.Resets.VerifyResetCode(c.Request.Context(), data.Email, string(data.Code)); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "codeValidated",
	})
}

func ConfirmReset(c *gin.Context, d *internal.Deps) {
	var data confirmBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	if err := d.Resets.ResetPassword(c.Request.Context(), data.Email, data.NewPassword); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "passwordReset",
	})
}
