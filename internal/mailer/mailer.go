package mailer

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

type SMTPMailer struct {
	dialer *mail.Dialer
	sender string
}

func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &SMTPMailer{
		dialer: dialer,
		sender: sender,
	}
}

// Send renders the subject, plainBody and htmlBody templates of templateFile
// and delivers the message, retrying transient failures.
func (m *SMTPMailer) Send(recipient, templateFile string, data any) error {
	subject, plainBody, htmlBody, err := render(templateFile, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	for i := 1; i <= 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}

		time.Sleep(500 * time.Millisecond)
	}

	return err
}

func render(templateFile string, data any) (subject, plainBody, htmlBody string, err error) {
	tmpl, err := template.New("email").Funcs(template.FuncMap{
		"join": joinSeats,
	}).ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return "", "", "", err
	}

	parts := make(map[string]string, 3)
	for _, name := range []string{"subject", "plainBody", "htmlBody"} {
		var buf bytes.Buffer

		err = tmpl.ExecuteTemplate(&buf, name, data)
		if err != nil {
			return "", "", "", err
		}

		parts[name] = buf.String()
	}

	return parts["subject"], parts["plainBody"], parts["htmlBody"], nil
}

func joinSeats(seats []string) string {
	var buf bytes.Buffer
	for i, seat := range seats {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(seat)
	}
	return buf.String()
}
