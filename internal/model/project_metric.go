package model

import (
	"time"
)

// ProjectMetricModel 项目指标快照（由统计任务写入）
type ProjectMetricModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId  int64     `json:"project_id" gorm:"not null;index"`
	Name       string    `json:"name" gorm:"not null"`
	Value      int64     `json:"value" gorm:"default:0"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TableName 自定义表名
func (ProjectMetricModel) TableName() string {
	return "project_metrics"
}
