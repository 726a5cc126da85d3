package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"github.com/manu-acho/wamngo-sub000/internal/mailer"
	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/gorm"
)

type PartnerHandler struct {
	partnerLogic *logic.PartnerLogic
	mailer       *mailer.Mailer
}

func NewPartnerHandler(db *gorm.DB, m *mailer.Mailer) *PartnerHandler {
	return &PartnerHandler{
		partnerLogic: logic.NewPartnerLogic(db),
		mailer:       m,
	}
}

// GetPartners 获取合作伙伴列表
func (h *PartnerHandler) GetPartners(c *gin.Context) {
	partnershipType := c.Query("type")
	page, pageSize := pageParams(c)

	partners, total, err := h.partnerLogic.GetPartners(partnershipType, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"partners":  partners,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetPartner 获取合作伙伴详情
func (h *PartnerHandler) GetPartner(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid partner id"})
		return
	}

	partner, err := h.partnerLogic.GetPartner(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"partner": partner})
}

// Apply 提交合作申请
func (h *PartnerHandler) Apply(c *gin.Context) {
	var application model.PartnerApplicationModel
	if err := c.ShouldBindJSON(&application); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.partnerLogic.CreateApplication(&application); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mailer.NotifyPartnerApplication(application.OrganizationName, application.ContactEmail)

	c.JSON(http.StatusCreated, gin.H{"application": application})
}
