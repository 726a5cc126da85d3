package model

import (
	"time"
)

// ProjectModel 已发布的公益项目（由项目提交审核通过后创建）
type ProjectModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`

	// 募资信息
	FundingGoal   int64 `json:"funding_goal" gorm:"default:0"`
	FundingRaised int64 `json:"funding_raised" gorm:"default:0"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'active'"`

	// 创建者信息
	CreatorWallet string `json:"creator_wallet"`

	// 来源提交（审核通过时回填）
	SubmissionId *int64 `json:"submission_id"`

	// 软删除信息（保留行用于审计）
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`
	DeletedBy    string     `json:"deleted_by"`
	DeleteReason string     `json:"delete_reason"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"    // 募资中
	ProjectStatusFunded    ProjectStatus = "funded"    // 已达标
	ProjectStatusCompleted ProjectStatus = "completed" // 已结项
	ProjectStatusCancelled ProjectStatus = "cancelled" // 已取消
)

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "projects"
}
