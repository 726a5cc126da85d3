package model

import (
	"time"
)

// ContactSubmissionModel 联系表单提交
type ContactSubmissionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 提交编号（对外引用）
	Reference string `json:"reference" gorm:"uniqueIndex;not null"`

	Name    string `json:"name" gorm:"not null" binding:"required"`
	Email   string `json:"email" gorm:"not null" binding:"required"`
	Subject string `json:"subject" gorm:"not null" binding:"required"`
	Message string `json:"message" gorm:"type:text" binding:"required"`

	Status ContactStatus `json:"status" gorm:"default:'new'"`
}

// ContactStatus 联系表单处理状态
type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"     // 未读
	ContactStatusRead    ContactStatus = "read"    // 已读
	ContactStatusReplied ContactStatus = "replied" // 已回复
)

// TableName 自定义表名
func (ContactSubmissionModel) TableName() string {
	return "contact_submissions"
}
