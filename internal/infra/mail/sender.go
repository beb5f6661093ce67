package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(welcomeHTML))

// SendWelcome greets a freshly captured lead. Best-effort: callers log
// and move on when it fails.
func (s *EmailSender) SendWelcome(to, name string) error {
	if s.Host == "" {
		return fmt.Errorf("mail not configured")
	}

	data := WelcomeEmailData{Name: name}
	if data.Name == "" {
		data.Name = "there"
	}

	var body bytes.Buffer
	if err := welcomeTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render welcome template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "You're on the list 🎉")
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}

	return nil
}
