package model

import (
	"time"
)

// PartnerApplicationModel 合作伙伴申请
// 与项目提交同构：通过时在 partners 表新建一行，申请行只更新审核字段。
type PartnerApplicationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 申请内容
	OrganizationName string `json:"organization_name" gorm:"not null" binding:"required"`
	ContactName      string `json:"contact_name"`
	ContactEmail     string `json:"contact_email" gorm:"not null" binding:"required"`
	WebsiteURL       string `json:"website_url"`
	Description      string `json:"description" gorm:"type:text"`
	PartnershipType  string `json:"partnership_type"`

	// 审核信息
	Status           ApplicationStatus `json:"status" gorm:"default:'pending'"`
	ReviewedBy       string            `json:"reviewed_by"`
	ReviewedAt       *time.Time        `json:"reviewed_at"`
	ReviewNotes      string            `json:"review_notes" gorm:"type:text"`
	CreatedPartnerId *int64            `json:"created_partner_id"`
}

// ApplicationStatus 合作申请状态
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"  // 待审核
	ApplicationStatusApproved ApplicationStatus = "approved" // 已通过
	ApplicationStatusRejected ApplicationStatus = "rejected" // 已拒绝
)

// TableName 自定义表名
func (PartnerApplicationModel) TableName() string {
	return "partner_applications"
}
