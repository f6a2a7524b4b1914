package handler

import (
	"BlogPress/internal/api/dto"
	"BlogPress/internal/pkg/consts"
	"BlogPress/internal/pkg/response"
	"BlogPress/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// BlogCreated 受理新博客事件，处理是异步的，始终返回 202
func (s *NotificationHandler) BlogCreated(c *gin.Context) {
	var payload dto.BlogCreatedPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, err)
		return
	}

	key := c.GetHeader(consts.IdempotencyKeyHeader)
	accepted := s.notificationSvc.HandleBlogCreated(c.Request.Context(), key, &payload)
	s.accept(c, accepted)
}

// Milestone 受理里程碑事件
func (s *NotificationHandler) Milestone(c *gin.Context) {
	var payload dto.MilestonePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, err)
		return
	}

	key := c.GetHeader(consts.IdempotencyKeyHeader)
	accepted := s.notificationSvc.HandleMilestone(c.Request.Context(), key, &payload)
	s.accept(c, accepted)
}

// UserRegistered 受理用户注册事件
func (s *NotificationHandler) UserRegistered(c *gin.Context) {
	var payload dto.UserRegisteredPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, err)
		return
	}

	key := c.GetHeader(consts.IdempotencyKeyHeader)
	accepted := s.notificationSvc.HandleUserRegistered(c.Request.Context(), key, &payload)
	s.accept(c, accepted)
}

// accept 重复事件同样应答 202，避免发送方无谓重试
func (s *NotificationHandler) accept(c *gin.Context, accepted bool) {
	message := "accepted"
	if !accepted {
		message = "duplicate ignored"
	}
	c.JSON(http.StatusAccepted, dto.Response{
		Code:    http.StatusAccepted,
		Message: message,
		Data:    nil,
	})
}

// GetInbox 分页获取当前用户的通知列表
func (s *NotificationHandler) GetInbox(c *gin.Context) {
	userID := strconv.FormatUint(c.GetUint64("user_id"), 10)

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if err != nil || offset < 0 {
		offset = 0
	}

	list, err := s.notificationSvc.GetInbox(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetUnreadCount 获取当前用户的未读通知数
func (s *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID := strconv.FormatUint(c.GetUint64("user_id"), 10)

	count, err := s.notificationSvc.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"unread": count})
}
