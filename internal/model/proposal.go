package model

import (
	"time"
)

// ProposalModel 治理提案模型
type ProposalModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category"`

	// 资金信息
	FundingAmount   int64 `json:"funding_amount" gorm:"default:0"`
	TokenAllocation int64 `json:"token_allocation" gorm:"default:0"`

	// 状态与投票窗口
	Status         ProposalStatus `json:"status" gorm:"default:'pending'"`
	VotingDeadline time.Time      `json:"voting_deadline"`

	// 创建者信息
	CreatorWallet string `json:"creator_wallet" gorm:"not null;index"`

	// 计票字段（与 votes 表保持一致，见治理逻辑）
	VotesFor          int64 `json:"votes_for" gorm:"default:0"`
	VotesAgainst      int64 `json:"votes_against" gorm:"default:0"`
	TotalStakeFor     int64 `json:"total_stake_for" gorm:"default:0"`
	TotalStakeAgainst int64 `json:"total_stake_against" gorm:"default:0"`

	// 软删除信息（保留行用于审计）
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`
	DeletedBy    string     `json:"deleted_by"`
	DeleteReason string     `json:"delete_reason"`
}

// ProposalStatus 提案状态
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"  // 待开始
	ProposalStatusActive   ProposalStatus = "active"   // 投票中
	ProposalStatusPassed   ProposalStatus = "passed"   // 已通过
	ProposalStatusRejected ProposalStatus = "rejected" // 已否决
	ProposalStatusExecuted ProposalStatus = "executed" // 已执行
)

// TableName 自定义表名
func (ProposalModel) TableName() string {
	return "proposals"
}
