package mailer

import (
	"fmt"
	"os"
	"strconv"

	gomail "github.com/wneessen/go-mail"
)

// Mailer sends transactional mail. All sends are best-effort from the
// caller's point of view; a nil *Mailer is valid and drops every message.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

// NewFromEnv returns nil when MAIL_SERVER is unset, disabling mail.
func NewFromEnv() *Mailer {
	host := os.Getenv("MAIL_SERVER")
	if host == "" {
		return nil
	}
	port, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if port == 0 {
		port = 587
	}
	fromName := os.Getenv("MAIL_FROM_NAME")
	if fromName == "" {
		fromName = "AI Interviewer"
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: os.Getenv("MAIL_USERNAME"),
		password: os.Getenv("MAIL_PASSWORD"),
		from:     os.Getenv("MAIL_FROM"),
		fromName: fromName,
	}
}

func (m *Mailer) send(to, subject, body string) error {
	if m == nil {
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.username),
		gomail.WithPassword(m.password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}

func (m *Mailer) SendWelcome(to, username string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour AI Interviewer account is ready. Schedule a mock interview whenever you like.\n", username)
	return m.send(to, "Welcome to AI Interviewer", body)
}

func (m *Mailer) SendFeedbackReady(to, interviewID string) error {
	body := fmt.Sprintf("Feedback for your interview %s is ready. Log in to review it.\n", interviewID)
	return m.send(to, "Your interview feedback is ready", body)
}
