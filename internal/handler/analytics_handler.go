package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/cache"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"gorm.io/gorm"
)

type AnalyticsHandler struct {
	analyticsLogic *logic.AnalyticsLogic
}

func NewAnalyticsHandler(db *gorm.DB, c *cache.Cache) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsLogic: logic.NewAnalyticsLogic(db, c),
	}
}

// GetAnalytics 按时间窗返回平台活跃统计
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", "24h")

	result, err := h.analyticsLogic.GetAnalytics(c.Request.Context(), timeframe)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
