package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InboxMessage 通知收件箱模型
type InboxMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"userId"`       // 消息接收者ID
	Kind      string             `bson:"kind" json:"kind"`            // 通知类型: milestone / blog-created / user-registered
	BlogID    string             `bson:"blog_id" json:"blogId"`       // 关联的博客ID (可为空)
	Subject   string             `bson:"subject" json:"subject"`      // 通知标题
	Body      string             `bson:"body" json:"body"`            // 通知正文
	IsRead    bool               `bson:"is_read" json:"isRead"`       // 是否已读
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"` // 创建时间
}
