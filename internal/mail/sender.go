// Package mail delivers summary emails over SMTP.
package mail

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/fyrsmithlabs/minuted/internal/config"
	"github.com/fyrsmithlabs/minuted/internal/fault"
)

var addressExpr = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Sender sends summary emails through a configured SMTP relay.
type Sender struct {
	cfg    config.SMTPConfig
	logger *zap.Logger

	// send is swapped in tests to avoid a live SMTP connection.
	send func(d *gomail.Dialer, m *gomail.Message) error
}

// NewSender creates a Sender. A nil logger disables logging.
func NewSender(cfg config.SMTPConfig, logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(d *gomail.Dialer, m *gomail.Message) error {
			return d.DialAndSend(m)
		},
	}
}

// SendSummary sends a plain-text summary email to the given recipients, with
// an optional file attachment.
func (s *Sender) SendSummary(recipients []string, subject, body, attachment string) error {
	if len(recipients) == 0 {
		return fault.InvalidArgument("recipients", "at least one recipient is required")
	}
	for _, addr := range recipients {
		if !addressExpr.MatchString(strings.TrimSpace(addr)) {
			return fault.InvalidArgument("recipients", fmt.Sprintf("invalid email address: %s", addr))
		}
	}
	if !s.cfg.Configured() {
		return fault.DeliveryFailed("SMTP credentials are not configured", nil)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from())
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if attachment != "" {
		m.Attach(attachment)
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password.Value())
	// Port 465 is implicit TLS; 587 negotiates STARTTLS inside the dialer.
	d.SSL = s.cfg.UseTLS && s.cfg.Port == 465

	if err := s.send(d, m); err != nil {
		s.logger.Error("email delivery failed",
			zap.String("host", s.cfg.Host),
			zap.Int("recipients", len(recipients)),
			zap.Error(err))
		return fault.DeliveryFailed(fmt.Sprintf("sending via %s:%d", s.cfg.Host, s.cfg.Port), err)
	}

	s.logger.Info("summary email sent",
		zap.Int("recipients", len(recipients)),
		zap.String("subject", subject),
		zap.Bool("attachment", attachment != ""))
	return nil
}

func (s *Sender) from() string {
	if s.cfg.From != "" {
		return s.cfg.From
	}
	return s.cfg.Username
}
