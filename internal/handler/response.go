package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/logger"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
)

// pageParams 解析分页参数并收敛到有效范围
// 与逻辑层的收敛规则一致，这样响应里回显的就是实际生效的值。
func pageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// respondError 将逻辑层错误映射为HTTP状态码
// 已知业务错误原样返回给调用方，其余一律 500 + 通用消息，细节只进日志。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrProposalNotFound),
		errors.Is(err, logic.ErrProjectNotFound),
		errors.Is(err, logic.ErrPartnerNotFound),
		errors.Is(err, logic.ErrSubmissionNotFound),
		errors.Is(err, logic.ErrApplicationNotFound),
		errors.Is(err, logic.ErrPurchaseNotFound),
		errors.Is(err, logic.ErrStakeNotFound),
		errors.Is(err, logic.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrAlreadyVoted),
		errors.Is(err, logic.ErrVotingClosed),
		errors.Is(err, logic.ErrInvalidVoteType),
		errors.Is(err, logic.ErrInvalidEmail),
		errors.Is(err, logic.ErrAlreadyReviewed),
		errors.Is(err, logic.ErrInvalidReviewState),
		errors.Is(err, logic.ErrInvalidTimeframe),
		errors.Is(err, logic.ErrPurchaseConfirmed),
		errors.Is(err, logic.ErrRoleExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrNotSuperAdmin):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
