package model

import (
	"time"
)

// NotificationModel 站内通知
type NotificationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	WalletAddress string `json:"wallet_address" gorm:"not null;index"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	Body          string `json:"body" gorm:"type:text"`

	Read   bool       `json:"read" gorm:"default:false"`
	ReadAt *time.Time `json:"read_at"`
}

// TableName 自定义表名
func (NotificationModel) TableName() string {
	return "notifications"
}
