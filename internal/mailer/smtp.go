package mailer

import (
	"context"
	"fmt"
	"net/smtp"
)

// ContactMessage — сообщение обратной связи от посетителя.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// Mailer отправляет сообщения обратной связи администратору.
type Mailer interface {
	SendContact(ctx context.Context, msg ContactMessage) error
}

type smtpMailer struct {
	addr string
	from string
	to   string
}

// NewSMTPMailer создаёт почтовый сервис поверх net/smtp.
func NewSMTPMailer(host, port, from, to string) Mailer {
	return &smtpMailer{
		addr: host + ":" + port,
		from: from,
		to:   to,
	}
}

// SendContact пересылает сообщение формы обратной связи на адрес администратора.
func (m *smtpMailer) SendContact(ctx context.Context, msg ContactMessage) error {
	subject := fmt.Sprintf("Сообщение с формы обратной связи от %s", msg.Name)
	body := fmt.Sprintf("От: %s <%s>\r\n\r\n%s", msg.Name, msg.Email, msg.Message)
	raw := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nReply-To: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, m.to, msg.Email, subject, body))

	if err := smtp.SendMail(m.addr, nil, m.from, []string{m.to}, raw); err != nil {
		return fmt.Errorf("mailer: не удалось отправить письмо: %w", err)
	}
	return nil
}
