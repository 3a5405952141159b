package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/Dumorro/e-nvites/pkg/config"
)

// Transport delivers a composed message over SMTP. It is the single seam
// between the mailer service and the wire, so retry behavior can be tested
// without a relay.
type Transport interface {
	Send(msg *gomail.Message) error
}

// SMTPTransport implements Transport over a gomail dialer
type SMTPTransport struct {
	dialer *gomail.Dialer
}

// NewSMTPTransport creates a transport from SMTP configuration
func NewSMTPTransport(cfg config.SMTPConfig) *SMTPTransport {
	dialer := gomail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPTransport{dialer: dialer}
}

// Send dials the relay and delivers the message
func (t *SMTPTransport) Send(msg *gomail.Message) error {
	return t.dialer.DialAndSend(msg)
}
