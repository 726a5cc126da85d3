package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manu-acho/wamngo-sub000/internal/logic"
	"github.com/manu-acho/wamngo-sub000/internal/wallet"
	"gorm.io/gorm"
)

type UserHandler struct {
	userLogic *logic.UserLogic
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		userLogic: logic.NewUserLogic(db),
	}
}

// GetUser 获取用户，不存在则惰性创建
func (h *UserHandler) GetUser(c *gin.Context) {
	addr := wallet.Canonical(c.Param("wallet"))

	user, err := h.userLogic.GetOrCreateUser(addr)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUser 更新用户资料
func (h *UserHandler) UpdateUser(c *gin.Context) {
	addr := wallet.Canonical(c.Param("wallet"))

	// 只允许更新资料字段
	var req struct {
		Username  *string `json:"username"`
		Email     *string `json:"email"`
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatarUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	user, err := h.userLogic.UpdateProfile(addr, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetNotifications 获取用户通知
func (h *UserHandler) GetNotifications(c *gin.Context) {
	addr := wallet.Canonical(c.Param("wallet"))

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.userLogic.GetNotifications(addr, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead 标记通知已读
func (h *UserHandler) MarkNotificationRead(c *gin.Context) {
	addr := wallet.Canonical(c.Param("wallet"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.userLogic.MarkNotificationRead(id, addr); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}
