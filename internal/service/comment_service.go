package service

import (
	"BlogPress/internal/api/dto"
	"BlogPress/internal/model"
	"BlogPress/internal/pkg/client"
	"BlogPress/internal/pkg/consts"
	"BlogPress/internal/pkg/notify"
	"BlogPress/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type CommentService interface {
	AddComment(ctx context.Context, blogID uint64, username string, req *dto.CreateCommentRequest) (*dto.CommentNode, error)
	UpdateComment(ctx context.Context, commentID uint64, username string, req *dto.UpdateCommentRequest) error
	DeleteComment(ctx context.Context, commentID uint64, username string) error
	GetCommentTree(ctx context.Context, blogID uint64) ([]*dto.CommentNode, error)
}

type CommentServiceImpl struct {
	counterEvents
}

func NewCommentService(repo repository.EngagementRepo, cache counterCache,
	blogs client.BlogClient, publisher notify.Publisher) CommentService {
	return &CommentServiceImpl{
		counterEvents: counterEvents{
			repo:      repo,
			cache:     cache,
			blogs:     blogs,
			publisher: publisher,
		},
	}
}

// AddComment 发表评论，父评论必须存在且属于同一篇博客
func (s *CommentServiceImpl) AddComment(ctx context.Context, blogID uint64, username string,
	req *dto.CreateCommentRequest) (*dto.CommentNode, error) {
	if req.ParentID != nil {
		parent, err := s.repo.GetCommentByID(ctx, *req.ParentID)
		if err != nil {
			log.ErrorContext(ctx, "父评论查询失败", "parentID", *req.ParentID, "error", err)
			return nil, UnExpectedError
		}
		if parent == nil {
			return nil, ErrCommentNotFound
		}
		if parent.BlogID != blogID {
			return nil, ErrParamInvalid
		}
	}

	now := time.Now()
	comment := &model.BlogComment{
		BlogID:    blogID,
		Username:  username,
		Content:   req.Content,
		ParentID:  req.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		log.ErrorContext(ctx, "评论写入失败", "blogID", blogID, "username", username, "error", err)
		return nil, UnExpectedError
	}

	s.onIncrement(ctx, blogID, consts.MilestoneTypeComments)

	node := &dto.CommentNode{Replies: []*dto.CommentNode{}}
	if err := copier.Copy(node, comment); err != nil {
		log.ErrorContext(ctx, "评论转换失败", "commentID", comment.ID, "error", err)
		return nil, UnExpectedError
	}
	return node, nil
}

// UpdateComment 只有评论作者可以修改
func (s *CommentServiceImpl) UpdateComment(ctx context.Context, commentID uint64, username string,
	req *dto.UpdateCommentRequest) error {
	comment, err := s.ownedComment(ctx, commentID, username)
	if err != nil {
		return err
	}

	comment.Content = req.Content
	comment.UpdatedAt = time.Now()
	if err = s.repo.SaveComment(ctx, comment); err != nil {
		log.ErrorContext(ctx, "评论更新失败", "commentID", commentID, "error", err)
		return UnExpectedError
	}
	return nil
}

// DeleteComment 物理删除单条评论，子评论保留
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, commentID uint64, username string) error {
	comment, err := s.ownedComment(ctx, commentID, username)
	if err != nil {
		return err
	}

	if err = s.repo.DeleteComment(ctx, comment.ID); err != nil {
		log.ErrorContext(ctx, "评论删除失败", "commentID", commentID, "error", err)
		return UnExpectedError
	}

	s.onDecrement(ctx, comment.BlogID)
	return nil
}

// GetCommentTree 构建整棵评论树，一级评论与各层回复均按时间升序
func (s *CommentServiceImpl) GetCommentTree(ctx context.Context, blogID uint64) ([]*dto.CommentNode, error) {
	roots, err := s.repo.GetRootComments(ctx, blogID)
	if err != nil {
		log.ErrorContext(ctx, "一级评论查询失败", "blogID", blogID, "error", err)
		return nil, UnExpectedError
	}

	tree := make([]*dto.CommentNode, 0, len(roots))
	for _, root := range roots {
		node, err := s.buildNode(ctx, root)
		if err != nil {
			return nil, err
		}
		tree = append(tree, node)
	}
	return tree, nil
}

func (s *CommentServiceImpl) buildNode(ctx context.Context, comment *model.BlogComment) (*dto.CommentNode, error) {
	node := &dto.CommentNode{Replies: []*dto.CommentNode{}}
	if err := copier.Copy(node, comment); err != nil {
		log.ErrorContext(ctx, "评论转换失败", "commentID", comment.ID, "error", err)
		return nil, UnExpectedError
	}

	children, err := s.repo.GetChildComments(ctx, comment.ID)
	if err != nil {
		log.ErrorContext(ctx, "子评论查询失败", "parentID", comment.ID, "error", err)
		return nil, UnExpectedError
	}
	for _, child := range children {
		childNode, err := s.buildNode(ctx, child)
		if err != nil {
			return nil, err
		}
		node.Replies = append(node.Replies, childNode)
	}
	return node, nil
}

func (s *CommentServiceImpl) ownedComment(ctx context.Context, commentID uint64, username string) (*model.BlogComment, error) {
	comment, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		log.ErrorContext(ctx, "评论查询失败", "commentID", commentID, "error", err)
		return nil, UnExpectedError
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.Username != username {
		return nil, ErrCommentNotOwned
	}
	return comment, nil
}
