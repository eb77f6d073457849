package utils

import (
	"strings"

	"github.com/k3a/html2text"
	"gopkg.in/gomail.v2"

	"farmlink/initializers"
)

// SMTPSender sends mail through the configured SMTP relay.
type SMTPSender struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPSender(config *initializers.Config) *SMTPSender {
	return &SMTPSender{
		from:   config.EmailFrom,
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass),
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	if strings.Contains(body, "<") && strings.Contains(body, ">") {
		m.SetBody("text/html", body)
		m.AddAlternative("text/plain", html2text.HTML2Text(body))
	} else {
		m.SetBody("text/plain", body)
	}
	return s.dialer.DialAndSend(m)
}
