package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/config"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
)

// Provider - исходящая почта. Сервисы зовут его best-effort:
// ошибка отправки логируется и не прерывает бизнес-операцию.
type Provider interface {
	Send(to, subject, htmlBody string) error
}

type smtpProvider struct {
	dialer *gomail.Dialer
	from   string
}

// NewProvider собирает SMTP-провайдера из конфигурации.
// При выключенной почте возвращает no-op реализацию.
func NewProvider(cfg *config.Config) Provider {
	if !cfg.Email.Enabled {
		return &noopProvider{}
	}
	dialer := gomail.NewDialer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
	)
	from := fmt.Sprintf("%s <%s>", cfg.Email.FromName, cfg.Email.FromEmail)
	return &smtpProvider{dialer: dialer, from: from}
}

func (p *smtpProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return p.dialer.DialAndSend(m)
}

type noopProvider struct{}

func (p *noopProvider) Send(to, subject, htmlBody string) error {
	logger.Debug("email disabled, skipping send", "to", to, "subject", subject)
	return nil
}
