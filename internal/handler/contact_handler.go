package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"github.com/manu-acho/wamngo-sub000/internal/mailer"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/gorm"
)

type ContactHandler struct {
	contactLogic *logic.ContactLogic
	mailer       *mailer.Mailer
}

func NewContactHandler(db *gorm.DB, m *mailer.Mailer) *ContactHandler {
	return &ContactHandler{
		contactLogic: logic.NewContactLogic(db),
		mailer:       m,
	}
}

// SubmitContact 提交联系表单
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission := model.ContactSubmissionModel{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contactLogic.SubmitContact(&submission); err != nil {
		respondError(c, err)
		return
	}

	h.mailer.NotifyContactSubmission(submission.Name, submission.Email, submission.Subject)

	c.JSON(http.StatusCreated, gin.H{
		"id":        submission.Id,
		"reference": submission.Reference,
	})
}
