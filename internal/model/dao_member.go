package model

import (
	"time"
)

// DaoMemberModel DAO成员
type DaoMemberModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	WalletAddress string    `json:"wallet_address" gorm:"uniqueIndex;not null"`
	DisplayName   string    `json:"display_name"`
	JoinedAt      time.Time `json:"joined_at"`
	Active        bool      `json:"active" gorm:"default:true"`
}

// TableName 自定义表名
func (DaoMemberModel) TableName() string {
	return "dao_members"
}
