package service

import (
	"BlogPress/internal/api/dto"
	"BlogPress/internal/pkg/client"
	"BlogPress/internal/pkg/idempotency"
	"BlogPress/internal/pkg/logger"
	mongodb "BlogPress/internal/pkg/mongo"
	"context"
	"fmt"
	log "log/slog"
	"sync"
	"time"
)

type NotificationService interface {
	HandleBlogCreated(ctx context.Context, key string, payload *dto.BlogCreatedPayload) bool
	HandleMilestone(ctx context.Context, key string, payload *dto.MilestonePayload) bool
	HandleUserRegistered(ctx context.Context, key string, payload *dto.UserRegisteredPayload) bool
	GetInbox(ctx context.Context, userID string, limit, offset int64) ([]*mongodb.InboxMessage, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	Wait()
}

type NotificationServiceImpl struct {
	guard  *idempotency.Guard
	mailer MailService
	inbox  mongodb.InboxRepo
	users  client.UserClient
	wg     sync.WaitGroup
}

func NewNotificationService(guard *idempotency.Guard, mailer MailService,
	inbox mongodb.InboxRepo, users client.UserClient) NotificationService {
	return &NotificationServiceImpl{
		guard:  guard,
		mailer: mailer,
		inbox:  inbox,
		users:  users,
	}
}

// HandleBlogCreated 受理新博客事件，重复幂等键直接跳过，返回是否首次受理
func (s *NotificationServiceImpl) HandleBlogCreated(ctx context.Context, key string, payload *dto.BlogCreatedPayload) bool {
	if !s.guard.Remember(key) {
		log.InfoContext(ctx, "重复事件已跳过", "kind", "blog-created", "key", key)
		return false
	}
	s.dispatch(key, func(ctx context.Context) {
		s.processBlogCreated(ctx, payload)
	})
	return true
}

func (s *NotificationServiceImpl) HandleMilestone(ctx context.Context, key string, payload *dto.MilestonePayload) bool {
	if !s.guard.Remember(key) {
		log.InfoContext(ctx, "重复事件已跳过", "kind", "milestone", "key", key)
		return false
	}
	s.dispatch(key, func(ctx context.Context) {
		s.processMilestone(ctx, payload)
	})
	return true
}

func (s *NotificationServiceImpl) HandleUserRegistered(ctx context.Context, key string, payload *dto.UserRegisteredPayload) bool {
	if !s.guard.Remember(key) {
		log.InfoContext(ctx, "重复事件已跳过", "kind", "user-registered", "key", key)
		return false
	}
	s.dispatch(key, func(ctx context.Context) {
		s.processUserRegistered(ctx, payload)
	})
	return true
}

func (s *NotificationServiceImpl) GetInbox(ctx context.Context, userID string, limit, offset int64) ([]*mongodb.InboxMessage, error) {
	list, err := s.inbox.GetMessageList(ctx, userID, limit, offset)
	if err != nil {
		log.ErrorContext(ctx, "收件箱查询失败", "userID", userID, "error", err)
		return nil, UnExpectedError
	}
	return list, nil
}

func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.inbox.GetUnreadCount(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "未读数查询失败", "userID", userID, "error", err)
		return 0, UnExpectedError
	}
	return count, nil
}

// Wait 等待在途通知处理完成，用于优雅退出
func (s *NotificationServiceImpl) Wait() {
	s.wg.Wait()
}

// dispatch 异步处理事件，脱离请求上下文避免被取消
func (s *NotificationServiceImpl) dispatch(key string, process func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.WithValue(context.Background(), logger.TraceIDKey, "notification-"+key)
		process(ctx)
	}()
}

// processBlogCreated 广播新博客通知，作者本人不收邮件
func (s *NotificationServiceImpl) processBlogCreated(ctx context.Context, payload *dto.BlogCreatedPayload) {
	subject := fmt.Sprintf("New post on BlogPress: %s", payload.BlogTitle)
	author := payload.AuthorName
	if author == "" {
		author = "A BlogPress author"
	}
	body := fmt.Sprintf("Hi,\n\n%s just published a new post on BlogPress: %s.\n\nCome and read it now!\n\nThe BlogPress Team",
		author, payload.BlogTitle)

	recipients := payload.BroadcastEmails
	if len(recipients) == 0 {
		emails, err := s.users.GetAllUserEmails(ctx)
		if err != nil {
			log.WarnContext(ctx, "收件人列表获取失败", "blogID", payload.BlogID, "error", err)
		}
		recipients = emails
	}
	recipients = s.excludeAuthor(ctx, recipients, payload.AuthorID)

	if len(recipients) > 0 {
		s.mailer.SendToMany(ctx, recipients, subject, body)
	} else if payload.RecipientEmail != "" {
		// 广播名单为空时退回单个收件人
		log.WarnContext(ctx, "广播名单为空，退回单发", "blogID", payload.BlogID)
		_ = s.mailer.SendToOne(ctx, payload.RecipientEmail, subject, body)
	} else {
		log.ErrorContext(ctx, "没有可用收件人，事件被丢弃", "blogID", payload.BlogID)
		return
	}

	s.writeInbox(ctx, &mongodb.InboxMessage{
		UserID:    payload.AuthorID,
		Kind:      "blog-created",
		BlogID:    payload.BlogID,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now(),
	})
}

// processMilestone 里程碑通知只发给作者本人
func (s *NotificationServiceImpl) processMilestone(ctx context.Context, payload *dto.MilestonePayload) {
	authorName := payload.AuthorName
	authorEmail := payload.AuthorEmail
	if authorEmail == "" && payload.AuthorID != "" {
		if profile, err := s.users.GetUserByID(ctx, payload.AuthorID); err == nil {
			authorEmail = profile.Email
			if authorName == "" {
				authorName = profile.Username
			}
		} else {
			log.WarnContext(ctx, "作者信息解析失败", "authorID", payload.AuthorID, "error", err)
		}
	}

	subject := fmt.Sprintf("Your blog hit %d %s on BlogPress!", payload.Count, milestoneNoun(payload.MilestoneType))
	body := fmt.Sprintf("Hi %s,\n\nCongratulations! Your blog %s just reached %d %s on BlogPress.\n\nKeep up the great work!\n\nThe BlogPress Team",
		displayName(authorName), blogTitleOrID(payload.BlogTitle, payload.BlogID),
		payload.Count, milestoneNoun(payload.MilestoneType))

	if authorEmail == "" {
		log.WarnContext(ctx, "里程碑通知缺少收件人", "blogID", payload.BlogID, "type", payload.MilestoneType)
	} else {
		_ = s.mailer.SendToOne(ctx, authorEmail, subject, body)
	}

	s.writeInbox(ctx, &mongodb.InboxMessage{
		UserID:    payload.AuthorID,
		Kind:      "milestone",
		BlogID:    payload.BlogID,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now(),
	})
}

// processUserRegistered 新用户欢迎邮件
func (s *NotificationServiceImpl) processUserRegistered(ctx context.Context, payload *dto.UserRegisteredPayload) {
	subject := "Welcome to BlogPress!"
	body := fmt.Sprintf("Hi %s,\n\nWelcome to BlogPress! Your account is ready.\n\nStart writing and share your first post today.\n\nThe BlogPress Team",
		displayName(payload.Username))

	_ = s.mailer.SendToOne(ctx, payload.Email, subject, body)

	s.writeInbox(ctx, &mongodb.InboxMessage{
		UserID:    payload.UserID,
		Kind:      "user-registered",
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now(),
	})
}

// excludeAuthor 广播时剔除作者自己的邮箱，作者解析失败则原样广播
func (s *NotificationServiceImpl) excludeAuthor(ctx context.Context, emails []string, authorID string) []string {
	if authorID == "" {
		return emails
	}
	profile, err := s.users.GetUserByID(ctx, authorID)
	if err != nil || profile.Email == "" {
		log.WarnContext(ctx, "作者邮箱解析失败，广播不剔除", "authorID", authorID, "error", err)
		return emails
	}

	filtered := make([]string, 0, len(emails))
	for _, email := range emails {
		if email == profile.Email {
			continue
		}
		filtered = append(filtered, email)
	}
	return filtered
}

// writeInbox 收件箱写入尽力而为，失败不影响邮件结果
func (s *NotificationServiceImpl) writeInbox(ctx context.Context, msg *mongodb.InboxMessage) {
	if msg.UserID == "" {
		return
	}
	if err := s.inbox.CreateMessage(ctx, msg); err != nil {
		log.WarnContext(ctx, "收件箱写入失败", "userID", msg.UserID, "kind", msg.Kind, "error", err)
	}
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

func blogTitleOrID(title, blogID string) string {
	if title != "" {
		return fmt.Sprintf("%q", title)
	}
	return "#" + blogID
}

func milestoneNoun(milestoneType string) string {
	switch milestoneType {
	case "LIKES":
		return "likes"
	case "VIEWS":
		return "views"
	case "COMMENTS":
		return "comments"
	default:
		return "interactions"
	}
}
