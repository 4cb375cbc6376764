package mailer

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/config"
	"github.com/polkiloo/deeshop/internal/usecase"
)

// Module provides the confirmation renderer and the notification sender.
var Module = fx.Provide(newRenderer, newSender)

func newRenderer() (usecase.ConfirmationRenderer, error) {
	return NewTemplateRenderer()
}

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func newSender(p senderParams) usecase.MailSender {
	logger := p.Logger.Named("mailer")
	if p.Config.SMTP.Host == "" {
		logger.Warn("SMTP_HOST not set, notifications will only be logged")
		return NewLogSender(logger)
	}
	return NewSMTPSender(p.Config.SMTP, p.Config.Mail.From, logger)
}
