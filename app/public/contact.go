package public

import (
	"bitwise74/auth-api/app/respond"
	"bitwise74/auth-api/internal"
	"bitwise74/auth-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

type contactBody struct {
	FullName string `json:"fullName" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,mail"`
	Phone    string `json:"phone" binding:"max=32"`
	Subject  string `json:"subject" binding:"max=255"`
	Message  string `json:"message" binding:"required,max=5000"`
}

func ContactCreate(c *gin.Context, d *internal.Deps) {
	var data contactBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	m := &model.ContactMessage{
		FullName: data.FullName,
		Email:    data.Email,
		Phone:    data.Phone,
		Subject:  data.Subject,
		Message:  data.Message,
	}

	if err := d.Public.CreateContactMessage(c.Request.Context(), m); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

func ContactList(c *gin.Context, d *internal.Deps) {
	msgs, err := d.Public.ListContactMessages(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}
