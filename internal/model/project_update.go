package model

import (
	"time"
)

// ProjectUpdateModel 项目进展更新
type ProjectUpdateModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId    int64  `json:"project_id" gorm:"not null;index"`
	Title        string `json:"title" gorm:"not null" binding:"required"`
	Body         string `json:"body" gorm:"type:text"`
	AuthorWallet string `json:"author_wallet"`
}

// TableName 自定义表名
func (ProjectUpdateModel) TableName() string {
	return "project_updates"
}
