package handler

import (
	"BlogPress/internal/api/dto"
	"BlogPress/internal/pkg/response"
	"BlogPress/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementSvc service.EngagementService
	commentSvc    service.CommentService
}

func NewEngagementHandler(engagementSvc service.EngagementService, commentSvc service.CommentService) *EngagementHandler {
	return &EngagementHandler{
		engagementSvc: engagementSvc,
		commentSvc:    commentSvc,
	}
}

// LikeBlog 点赞博客，重复点赞是无害重放
func (s *EngagementHandler) LikeBlog(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil || blogID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	if _, err = s.engagementSvc.LikeBlog(c.Request.Context(), blogID, username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UnlikeBlog 取消点赞
func (s *EngagementHandler) UnlikeBlog(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil || blogID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	if _, err = s.engagementSvc.UnlikeBlog(c.Request.Context(), blogID, username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ToggleLike 翻转点赞状态
func (s *EngagementHandler) ToggleLike(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil || blogID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	liked, err := s.engagementSvc.ToggleLike(c.Request.Context(), blogID, username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.LikeStatusResponse{Liked: liked})
}

// GetLikeStatus 查询当前用户是否已点赞
func (s *EngagementHandler) GetLikeStatus(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil || blogID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	liked, err := s.engagementSvc.IsLiked(c.Request.Context(), blogID, username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.LikeStatusResponse{Liked: liked})
}

// GetCounts 汇总博客的点赞/浏览/评论数
func (s *EngagementHandler) GetCounts(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil || blogID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	counts, err := s.engagementSvc.GetCounts(c.Request.Context(), blogID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, counts)
}

// RecordView 上报一次浏览，匿名用户也可上报
func (s *EngagementHandler) RecordView(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil || blogID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	if err = s.engagementSvc.RecordView(c.Request.Context(), blogID, username, c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// AddComment 发表评论或回复
func (s *EngagementHandler) AddComment(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil || blogID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	var req dto.CreateCommentRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	node, err := s.commentSvc.AddComment(c.Request.Context(), blogID, username, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, node)
}

// GetCommentTree 获取整棵评论树
func (s *EngagementHandler) GetCommentTree(c *gin.Context) {
	blogID, err := strconv.ParseUint(c.Param("blog_id"), 10, 64)
	if err != nil || blogID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	tree, err := s.commentSvc.GetCommentTree(c.Request.Context(), blogID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tree)
}

// UpdateComment 修改自己的评论
func (s *EngagementHandler) UpdateComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	var req dto.UpdateCommentRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.commentSvc.UpdateComment(c.Request.Context(), commentID, username, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteComment 删除自己的评论，回复保留
func (s *EngagementHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	if err = s.commentSvc.DeleteComment(c.Request.Context(), commentID, username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
