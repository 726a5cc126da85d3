package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/manu-acho/wamngo-sub000/internal/model"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// UserLogic 用户业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// GetOrCreateUser 按钱包地址取用户，不存在则惰性创建
func (u *UserLogic) GetOrCreateUser(walletAddress string) (*model.UserModel, error) {
	var user model.UserModel
	err := u.db.Where("wallet_address = ?", walletAddress).First(&user).Error
	if err == nil {
		u.db.Model(&user).Update("last_active_at", time.Now())
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	user = model.UserModel{
		WalletAddress: walletAddress,
		LastActiveAt:  time.Now(),
	}
	if err := u.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// UpdateProfile 更新用户资料字段
func (u *UserLogic) UpdateProfile(walletAddress string, updates map[string]interface{}) (*model.UserModel, error) {
	if len(updates) == 0 {
		return nil, errors.New("no fields to update")
	}

	user, err := u.GetOrCreateUser(walletAddress)
	if err != nil {
		return nil, err
	}

	if bio, ok := updates["bio"].(string); ok {
		updates["bio"] = sanitizePlainText(bio)
	}
	updates["last_active_at"] = time.Now()

	if err := u.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	recordUserAction(u.db, walletAddress, model.UserActionProfileUpdated, "user", user.Id)
	return u.GetOrCreateUser(walletAddress)
}

// GetNotifications 获取某钱包的站内通知
func (u *UserLogic) GetNotifications(walletAddress string, unreadOnly bool) ([]model.NotificationModel, error) {
	query := u.db.Where("wallet_address = ?", walletAddress)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []model.NotificationModel
	err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error
	return notifications, err
}

// MarkNotificationRead 标记通知为已读
func (u *UserLogic) MarkNotificationRead(id int64, walletAddress string) error {
	now := time.Now()
	result := u.db.Model(&model.NotificationModel{}).
		Where("id = ? AND wallet_address = ?", id, walletAddress).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
