package model

import (
	"time"
)

// AdminRoleModel 管理员角色
type AdminRoleModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WalletAddress string    `json:"wallet_address" gorm:"uniqueIndex;not null"`
	Role          AdminRole `json:"role" gorm:"not null"`

	// 权限开关表，super_admin 不受其约束
	Permissions map[string]bool `json:"permissions" gorm:"serializer:json"`

	Active    bool   `json:"active" gorm:"default:true"`
	GrantedBy string `json:"granted_by"`
}

// AdminRole 管理员角色类型
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super_admin" // 超级管理员（可授予角色）
	AdminRoleModerator  AdminRole = "moderator"   // 内容管理员
	AdminRoleReviewer   AdminRole = "reviewer"    // 审核员
)

// TableName 自定义表名
func (AdminRoleModel) TableName() string {
	return "admin_roles"
}
