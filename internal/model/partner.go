package model

import (
	"time"
)

// PartnerModel 合作伙伴（由合作申请审核通过后创建）
type PartnerModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name             string `json:"name" gorm:"not null" binding:"required"`
	ShortDescription string `json:"short_description" gorm:"size:500"`
	Description      string `json:"description" gorm:"type:text"`
	LogoURL          string `json:"logo_url"`
	WebsiteURL       string `json:"website_url"`
	ContactEmail     string `json:"contact_email"`
	PartnershipType  string `json:"partnership_type"`

	// 状态
	Status PartnerStatus `json:"status" gorm:"default:'active'"`

	// 来源申请（审核通过时回填）
	ApplicationId *int64 `json:"application_id"`

	// 软删除信息（保留行用于审计）
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`
	DeletedBy    string     `json:"deleted_by"`
	DeleteReason string     `json:"delete_reason"`
}

// PartnerStatus 合作伙伴状态
type PartnerStatus string

const (
	PartnerStatusActive   PartnerStatus = "active"   // 生效
	PartnerStatusInactive PartnerStatus = "inactive" // 停用
)

// TableName 自定义表名
func (PartnerModel) TableName() string {
	return "partners"
}
