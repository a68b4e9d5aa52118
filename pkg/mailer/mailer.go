package mailer

import (
	"AiBeiTongServer/config"

	"gopkg.in/gomail.v2"
)

// Mailer 邮件发送抽象，测试用假实现。
type Mailer interface {
	// Send 发送一封 HTML 邮件
	Send(to, subject, htmlBody string) error
}

// smtpMailer 基于 SMTP 的实现
type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// New 创建 SMTP 邮件发送器。
func New(cfg config.MailConfig) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send 发送邮件（同步，调用方放到协程池里跑）
func (m *smtpMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// Noop 未配置 SMTP 时的空实现，直接丢弃邮件。
type Noop struct{}

func (Noop) Send(to, subject, htmlBody string) error { return nil }
