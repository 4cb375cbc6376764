package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/config"
	"github.com/polkiloo/deeshop/internal/domain/model"
)

const dialTimeout = 15 * time.Second

// SMTPSender delivers notifications through an SMTP relay.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
}

func NewSMTPSender(smtp config.SMTPConfig, from string, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		host:     smtp.Host,
		port:     smtp.Port,
		username: smtp.Username,
		password: smtp.Password,
		from:     from,
		logger:   logger,
	}
}

// Send opens a connection per call; the dispatcher batches are small.
func (s *SMTPSender) Send(ctx context.Context, n model.Notification) error {
	msg, err := s.message(n)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithTimeout(dialTimeout),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if s.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.username),
			mail.WithPassword(s.password),
		)
	}

	client, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send notification %d: %w", n.ID, err)
	}

	s.logger.Debug("notification sent", zap.Int64("id", n.ID), zap.String("recipient", n.Recipient))
	return nil
}

func (s *SMTPSender) message(n model.Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(n.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	if n.ReplyTo != "" {
		if err := msg.ReplyTo(n.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	msg.Subject(n.Subject)
	msg.SetBodyString(mail.TypeTextHTML, n.Body)
	return msg, nil
}

// LogSender writes notifications to the log instead of sending them.
// It is used when no SMTP relay is configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, n model.Notification) error {
	s.logger.Info("notification delivered to log",
		zap.Int64("id", n.ID),
		zap.String("recipient", n.Recipient),
		zap.String("reply_to", n.ReplyTo),
		zap.String("subject", n.Subject),
		zap.Int("body_bytes", len(n.Body)),
	)
	return nil
}
