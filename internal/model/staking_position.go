package model

import (
	"time"
)

// StakingPositionModel 质押仓位记录（纯记账，链上不发生任何质押）
type StakingPositionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WalletAddress string `json:"wallet_address" gorm:"not null;index"`
	PoolName      string `json:"pool_name"`
	Amount        int64  `json:"amount" gorm:"default:0"`
	LockMonths    int    `json:"lock_months" gorm:"default:0"`

	Status     StakingStatus `json:"status" gorm:"default:'active'"`
	StakedAt   time.Time     `json:"staked_at"`
	UnstakedAt *time.Time    `json:"unstaked_at"`
}

// StakingStatus 质押状态
type StakingStatus string

const (
	StakingStatusActive   StakingStatus = "active"   // 质押中
	StakingStatusUnstaked StakingStatus = "unstaked" // 已解押
)

// TableName 自定义表名
func (StakingPositionModel) TableName() string {
	return "staking_positions"
}
