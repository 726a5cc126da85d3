package model

import (
	"time"
)

// ProjectSubmissionModel 项目提交（待管理员审核的项目提案）
// 审核通过时在 projects 表新建一行，提交行本身只原地更新审核字段，永不删除。
type ProjectSubmissionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 提交内容
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category"`
	FundingGoal int64  `json:"funding_goal" gorm:"default:0"`

	// 提交者信息
	SubmitterWallet string `json:"submitter_wallet" gorm:"index"`
	SubmitterEmail  string `json:"submitter_email"`

	// 审核信息
	Status           SubmissionStatus `json:"status" gorm:"default:'submitted'"`
	ReviewedBy       string           `json:"reviewed_by"`
	ReviewedAt       *time.Time       `json:"reviewed_at"`
	ReviewNotes      string           `json:"review_notes" gorm:"type:text"`
	CreatedProjectId *int64           `json:"created_project_id"`
}

// SubmissionStatus 项目提交状态
type SubmissionStatus string

const (
	SubmissionStatusSubmitted   SubmissionStatus = "submitted"    // 已提交
	SubmissionStatusUnderReview SubmissionStatus = "under_review" // 审核中（仅提示性状态）
	SubmissionStatusApproved    SubmissionStatus = "approved"     // 已通过
	SubmissionStatusRejected    SubmissionStatus = "rejected"     // 已拒绝
)

// TableName 自定义表名
func (ProjectSubmissionModel) TableName() string {
	return "project_submissions"
}
