package repository

import (
	"BlogPress/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepo interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, blogID uint64, username string) (bool, error)
	CheckLikeExists(ctx context.Context, blogID uint64, username string) (bool, error)
	ToggleLike(ctx context.Context, blogID uint64, username string) (bool, error)

	CreateView(ctx context.Context, view *model.BlogView) error

	CreateComment(ctx context.Context, comment *model.BlogComment) error
	SaveComment(ctx context.Context, comment *model.BlogComment) error
	DeleteComment(ctx context.Context, commentID uint64) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.BlogComment, error)
	GetRootComments(ctx context.Context, blogID uint64) ([]*model.BlogComment, error)
	GetChildComments(ctx context.Context, parentID uint64) ([]*model.BlogComment, error)

	GetLikeCount(ctx context.Context, blogID uint64) (int64, error)
	GetViewCount(ctx context.Context, blogID uint64) (int64, error)
	GetCommentCount(ctx context.Context, blogID uint64) (int64, error)
}

type EngagementRepoImpl struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) EngagementRepo {
	return &EngagementRepoImpl{db}
}

func (s *EngagementRepoImpl) CreateLike(ctx context.Context, like *model.Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *EngagementRepoImpl) DeleteLike(ctx context.Context, blogID uint64, username string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("blog_id = ? AND username = ?", blogID, username).
		Delete(&model.Like{})
	return res.RowsAffected > 0, res.Error
}

func (s *EngagementRepoImpl) CheckLikeExists(ctx context.Context, blogID uint64, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("blog_id = ? AND username = ?", blogID, username).
		Count(&count).Error
	return count > 0, err
}

// ToggleLike 在单个事务内翻转点赞状态，行锁保证同一 (blog, user) 串行
func (s *EngagementRepoImpl) ToggleLike(ctx context.Context, blogID uint64, username string) (bool, error) {
	var liked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Like
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("blog_id = ? AND username = ?", blogID, username).
			First(&existing).Error

		switch {
		case err == nil:
			liked = false
			return tx.Where("blog_id = ? AND username = ?", blogID, username).
				Delete(&model.Like{}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			return tx.Create(&model.Like{BlogID: blogID, Username: username, CreatedAt: time.Now()}).Error
		default:
			return err
		}
	})
	return liked, err
}

func (s *EngagementRepoImpl) CreateView(ctx context.Context, view *model.BlogView) error {
	return s.db.WithContext(ctx).Create(view).Error
}

func (s *EngagementRepoImpl) CreateComment(ctx context.Context, comment *model.BlogComment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *EngagementRepoImpl) SaveComment(ctx context.Context, comment *model.BlogComment) error {
	return s.db.WithContext(ctx).Save(comment).Error
}

// DeleteComment 物理删除单条评论，子评论保留为孤儿引用
func (s *EngagementRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).
		Where("id = ?", commentID).
		Delete(&model.BlogComment{}).Error
}

func (s *EngagementRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.BlogComment, error) {
	var comment model.BlogComment
	err := s.db.WithContext(ctx).
		Where("id = ?", commentID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetRootComments 获取博客的一级评论，按创建时间升序
func (s *EngagementRepoImpl) GetRootComments(ctx context.Context, blogID uint64) ([]*model.BlogComment, error) {
	var comments []*model.BlogComment
	err := s.db.WithContext(ctx).
		Where("blog_id = ? AND parent_id IS NULL", blogID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// GetChildComments 获取某条评论的直接子评论，按创建时间升序
func (s *EngagementRepoImpl) GetChildComments(ctx context.Context, parentID uint64) ([]*model.BlogComment, error) {
	var comments []*model.BlogComment
	err := s.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *EngagementRepoImpl) GetLikeCount(ctx context.Context, blogID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

func (s *EngagementRepoImpl) GetViewCount(ctx context.Context, blogID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.BlogView{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

func (s *EngagementRepoImpl) GetCommentCount(ctx context.Context, blogID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.BlogComment{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}
