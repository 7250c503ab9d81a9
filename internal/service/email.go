package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendPendingItemsNotification(ctx context.Context, to, body string, count int) error {
	subject := fmt.Sprintf("Pending items notification (%d)", count)
	return s.send(to, subject, body)
}

func (s *emailService) SendUnauthorizedDeletionAlert(ctx context.Context, to, userName, itemName, reason string) error {
	subject := "Unauthorized deletion attempt"
	body := fmt.Sprintf("User %s attempted to delete %q without permission.\n\nReason given: %s\n", userName, itemName, reason)
	return s.send(to, subject, body)
}
