package model

import (
	"time"
)

// AdminActionModel 管理操作审计日志（只追加，不更新不删除）
type AdminActionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	AdminWallet string `json:"admin_wallet" gorm:"not null;index"`
	ActionType  string `json:"action_type" gorm:"not null"`
	TargetType  string `json:"target_type"`
	TargetId    int64  `json:"target_id"`
	Reason      string `json:"reason"`

	Metadata map[string]interface{} `json:"metadata" gorm:"serializer:json"`
}

// 审计动作类型
const (
	AdminActionEditProposal      = "edit_proposal"
	AdminActionDeleteProposal    = "delete_proposal"
	AdminActionEditProject       = "edit_project"
	AdminActionDeleteProject     = "delete_project"
	AdminActionEditPartner       = "edit_partner"
	AdminActionDeletePartner     = "delete_partner"
	AdminActionReviewSubmission  = "review_submission"
	AdminActionReviewApplication = "review_application"
	AdminActionGrantRole         = "grant_role"
)

// TableName 自定义表名
func (AdminActionModel) TableName() string {
	return "admin_actions"
}
