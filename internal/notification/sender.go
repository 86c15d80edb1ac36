package notification

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// Sender определяет интерфейс исходящего канала уведомлений
type Sender interface {
	Send(ctx context.Context, subject, body, recipient string) error
}

// SESSender отправляет email через Amazon SES
type SESSender struct {
	logger *zap.Logger
	client *sesv2.Client
	from   string
}

// NewSESSender создаёт SES sender с указанным адресом отправителя
func NewSESSender(logger *zap.Logger, client *sesv2.Client, from string) *SESSender {
	return &SESSender{
		logger: logger,
		client: client,
		from:   from,
	}
}

// Send отправляет email указанному получателю
func (s *SESSender) Send(ctx context.Context, subject, body, recipient string) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}

	s.logger.Debug("email sent",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
	)

	return nil
}

// LogSender — канал уведомлений без внешней конфигурации: пишет
// намерение в лог и возвращает успех. Отсутствие настроенного SES —
// валидный режим работы, а не ошибка.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender создаёт log-only sender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send логирует уведомление вместо отправки
func (s *LogSender) Send(ctx context.Context, subject, body, recipient string) error {
	s.logger.Info("(no email channel configured) notification logged",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
