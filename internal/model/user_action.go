package model

import (
	"time"
)

// UserActionModel 用户行为记录（供分析接口按时间窗聚合）
type UserActionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	WalletAddress string `json:"wallet_address" gorm:"index"`
	ActionType    string `json:"action_type" gorm:"not null"`
	TargetType    string `json:"target_type"`
	TargetId      int64  `json:"target_id"`
}

// 用户行为类型
const (
	UserActionProposalCreated   = "proposal_created"
	UserActionVoteCast          = "vote_cast"
	UserActionProjectSubmitted  = "project_submitted"
	UserActionPartnerApplied    = "partner_applied"
	UserActionPurchaseCreated   = "purchase_created"
	UserActionPurchaseConfirmed = "purchase_confirmed"
	UserActionStakeCreated      = "stake_created"
	UserActionProfileUpdated    = "profile_updated"
	UserActionContactSubmitted  = "contact_submitted"
)

// TableName 自定义表名
func (UserActionModel) TableName() string {
	return "user_actions"
}
