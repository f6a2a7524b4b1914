package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InboxRepo interface {
	CreateMessage(ctx context.Context, msg *InboxMessage) error
	GetMessageList(ctx context.Context, userID string, limit, offset int64) ([]*InboxMessage, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
}

type inboxRepoImpl struct {
	col *mongo.Collection
}

func NewInboxRepo(db *mongo.Database) InboxRepo {
	return &inboxRepoImpl{
		col: db.Collection("notification_inbox"),
	}
}

// CreateMessage 插入新通知
func (s *inboxRepoImpl) CreateMessage(ctx context.Context, msg *InboxMessage) error {
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

// GetMessageList 分页获取用户的通知列表 (按时间倒序)
func (s *inboxRepoImpl) GetMessageList(ctx context.Context, userID string, limit, offset int64) ([]*InboxMessage, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*InboxMessage
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetUnreadCount 获取未读数量
func (s *inboxRepoImpl) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"user_id": userID, "is_read": false})
}
