package model

import (
	"time"
)

// PlatformStatModel 平台统计快照（由定时任务每日写入）
type PlatformStatModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	SnapshotDate time.Time `json:"snapshot_date" gorm:"index"`

	TotalUsers     int64 `json:"total_users"`
	TotalProposals int64 `json:"total_proposals"`
	TotalVotes     int64 `json:"total_votes"`
	TotalProjects  int64 `json:"total_projects"`
	TotalPartners  int64 `json:"total_partners"`
	TokensSold     int64 `json:"tokens_sold"`
}

// TableName 自定义表名
func (PlatformStatModel) TableName() string {
	return "platform_stats"
}
