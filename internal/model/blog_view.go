package model

import (
	"time"
)

// BlogView 浏览事实，无唯一约束，重复浏览重复计数
type BlogView struct {
	ID        uint64    `gorm:"primaryKey"`
	BlogID    uint64    `gorm:"not null;index:idx_blog_id" json:"blogId"`
	Username  string    `gorm:"type:varchar(64)" json:"username"`
	IPAddress string    `gorm:"type:varchar(45)" json:"ipAddress"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (BlogView) TableName() string {
	return "blog_views"
}
