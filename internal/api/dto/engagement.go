package dto

import "time"

// CreateCommentRequest 发表评论请求，parentId 为空表示一级评论
type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,max=2000"`
	ParentID *uint64 `json:"parentId"`
}

// UpdateCommentRequest 修改评论请求
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CommentNode 评论树节点，Replies 按创建时间升序
type CommentNode struct {
	ID        uint64         `json:"id"`
	BlogID    uint64         `json:"blogId"`
	Username  string         `json:"username"`
	Content   string         `json:"content"`
	ParentID  *uint64        `json:"parentId,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Replies   []*CommentNode `json:"replies"`
}

// LikeStatusResponse 点赞状态
type LikeStatusResponse struct {
	Liked bool `json:"liked"`
}

// EngagementCounts 博客互动计数汇总
type EngagementCounts struct {
	Likes    int64 `json:"likes"`
	Views    int64 `json:"views"`
	Comments int64 `json:"comments"`
}
