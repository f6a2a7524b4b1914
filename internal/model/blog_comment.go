package model

import (
	"time"
)

// BlogComment 评论，ParentID 为空表示一级评论
type BlogComment struct {
	ID        uint64    `gorm:"primaryKey"`
	BlogID    uint64    `gorm:"not null;index:idx_blog_id" json:"blogId"`
	Username  string    `gorm:"type:varchar(64);not null" json:"username"`
	Content   string    `gorm:"type:varchar(2000);not null" json:"content"`
	ParentID  *uint64   `gorm:"index:idx_parent_id" json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BlogComment) TableName() string {
	return "blog_comments"
}
