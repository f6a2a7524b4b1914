package model

import (
	"time"
)

// Like 点赞事实，(blog_id, username) 唯一
type Like struct {
	BlogID    uint64    `gorm:"primaryKey;index:idx_blog_id" json:"blogId"`
	Username  string    `gorm:"primaryKey;type:varchar(64)" json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
