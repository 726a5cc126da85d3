package model

import (
	"time"
)

// TokenPurchaseModel 代币认购意向
// 仅记录意向与调用方自报的交易哈希，不做任何链上校验。
type TokenPurchaseModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 认购编号（对外引用）
	Reference string `json:"reference" gorm:"uniqueIndex;not null"`

	// 认购信息
	WalletAddress string  `json:"wallet_address" gorm:"not null;index"`
	AmountUsd     float64 `json:"amount_usd" gorm:"default:0"`
	AmountTokens  int64   `json:"amount_tokens" gorm:"default:0"`
	TokenPrice    float64 `json:"token_price" gorm:"default:0"`

	// 确认信息
	TxHash      string         `json:"tx_hash"`
	Status      PurchaseStatus `json:"status" gorm:"default:'pending'"`
	ConfirmedAt *time.Time     `json:"confirmed_at"`
}

// PurchaseStatus 认购状态
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"   // 待确认
	PurchaseStatusConfirmed PurchaseStatus = "confirmed" // 已确认
	PurchaseStatusCancelled PurchaseStatus = "cancelled" // 已取消
)

// TableName 自定义表名
func (TokenPurchaseModel) TableName() string {
	return "token_purchases"
}
