// Package public contains the unauthenticated FAQ and contact endpoints
package public

import (
	"bitwise74/auth-api/app/respond"
	"bitwise74/auth-api/internal"
	"bitwise74/auth-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

type faqBody struct {
	QuestionEn string `json:"questionEn" binding:"required,max=1000"`
	QuestionAr string `json:"questionAr" binding:"required,max=1000"`
	ResponseEn string `json:"responseEn" binding:"required,max=5000"`
	ResponseAr string `json:"responseAr" binding:"required,max=5000"`
}

func FAQCreate(c *gin.Context, d *internal.Deps) {
	var data faqBody
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.BadRequest(c, err)
		return
	}

	f := &model.FAQ{
		QuestionEn: data.QuestionEn,
		QuestionAr: data.QuestionAr,
		ResponseEn: data.ResponseEn,
		ResponseAr: data.ResponseAr,
	}

	if err := d.Public.CreateFAQ(c.Request.Context(), f); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, f)
}

func FAQList(c *gin.Context, d *internal.Deps) {
	faqs, err := d.Public.ListFAQs(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, faqs)
}
