package mail

import (
	"BlogPress/internal/api/config"

	"gopkg.in/gomail.v2"
)

// Sender 邮件发送抽象，便于服务层测试替换
type Sender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	dialer      *gomail.Dialer
	fromAddress string
	fromName    string
}

func NewSMTPSender(cfg config.MailConfig) Sender {
	return &smtpSender{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}
}

func (s *smtpSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}
