package mailer

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/promoshare/promocode-backend/internal/logger"
)

// logMailer пишет сообщения в лог вместо отправки.
// Используется когда SMTP не настроен.
type logMailer struct{}

// NewLogMailer создаёт почтовый сервис-заглушку для окружений без SMTP.
func NewLogMailer() Mailer {
	return &logMailer{}
}

func (m *logMailer) SendContact(ctx context.Context, msg ContactMessage) error {
	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"name":  msg.Name,
			"email": msg.Email,
		}).Info("contact message received, SMTP не настроен")
	}
	return nil
}
