package model

import (
	"time"
)

// VoteModel 提案投票记录
// 唯一性约束 (proposal_id, voter_wallet) 由治理逻辑层预检查保证，
// 数据库层不加唯一索引（与线上行为保持一致）。
type VoteModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	// 关联信息
	ProposalId  int64  `json:"proposal_id" gorm:"not null;index"`
	VoterWallet string `json:"voter_wallet" gorm:"not null;index"`

	// 投票内容
	VoteType    VoteType `json:"vote_type" gorm:"not null"`
	StakeAmount int64    `json:"stake_amount" gorm:"default:0"`
	Reason      string   `json:"reason" gorm:"type:text"`
}

// VoteType 投票类型
type VoteType string

const (
	VoteTypeFor     VoteType = "for"     // 赞成
	VoteTypeAgainst VoteType = "against" // 反对
	VoteTypeAbstain VoteType = "abstain" // 弃权（不计入票数统计）
)

// TableName 自定义表名
func (VoteModel) TableName() string {
	return "votes"
}
