package service

import (
	"BlogPress/internal/pkg/mail"
	"context"
	log "log/slog"
)

type MailService interface {
	SendToOne(ctx context.Context, to, subject, body string) error
	SendToMany(ctx context.Context, recipients []string, subject, body string) int
}

type MailServiceImpl struct {
	sender mail.Sender
}

func NewMailService(sender mail.Sender) MailService {
	return &MailServiceImpl{sender: sender}
}

func (s *MailServiceImpl) SendToOne(ctx context.Context, to, subject, body string) error {
	if err := s.sender.Send(to, subject, body); err != nil {
		log.ErrorContext(ctx, "邮件发送失败", "to", to, "subject", subject, "error", err)
		return err
	}
	return nil
}

// SendToMany 逐个发送，单个失败不影响其余收件人，返回成功数量
func (s *MailServiceImpl) SendToMany(ctx context.Context, recipients []string, subject, body string) int {
	sent := 0
	for _, to := range recipients {
		if err := s.sender.Send(to, subject, body); err != nil {
			log.ErrorContext(ctx, "邮件发送失败", "to", to, "subject", subject, "error", err)
			continue
		}
		sent++
	}
	log.InfoContext(ctx, "群发邮件完成", "subject", subject, "sent", sent, "total", len(recipients))
	return sent
}
