package dto

// BlogCreatedPayload 新博客事件，仅携带原始字段，保证跨服务序列化稳定
type BlogCreatedPayload struct {
	BlogID          string   `json:"blogId" binding:"required"`
	AuthorID        string   `json:"authorId"`
	BlogTitle       string   `json:"blogTitle" binding:"required"`
	AuthorName      string   `json:"authorName"`
	RecipientEmail  string   `json:"recipientEmail"`
	BroadcastEmails []string `json:"broadcastEmails"`
}

// MilestonePayload 里程碑事件，上下文补全失败时相关字段为空
type MilestonePayload struct {
	BlogID        string `json:"blogId" binding:"required"`
	AuthorID      string `json:"authorId"`
	AuthorName    string `json:"authorName"`
	AuthorEmail   string `json:"authorEmail"`
	BlogTitle     string `json:"blogTitle"`
	MilestoneType string `json:"milestoneType" binding:"required"`
	Count         int64  `json:"count"`
}

// UserRegisteredPayload 用户注册事件
type UserRegisteredPayload struct {
	UserID   string `json:"userId" binding:"required"`
	Username string `json:"username"`
	Email    string `json:"email" binding:"required"`
}
