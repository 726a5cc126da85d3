package model

import (
	"time"
)

// UserModel 用户模型（以钱包地址为自然主键）
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 身份信息
	WalletAddress string `json:"wallet_address" gorm:"uniqueIndex;not null" binding:"required"`

	// 资料信息（可选）
	Username  string `json:"username"`
	Email     string `json:"email"`
	Bio       string `json:"bio" gorm:"type:text"`
	AvatarURL string `json:"avatar_url"`

	// 声誉与活跃度
	Reputation   int64     `json:"reputation" gorm:"default:0"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "users"
}
