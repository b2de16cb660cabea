package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendLeadAssigned(email, assigneeName, companyName string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendLeadAssigned(email, assigneeName, companyName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "New lead assigned to you")

	body := fmt.Sprintf(`
		<h3>Hi %s,</h3>
		<p>A new lead for <strong>%s</strong> has been assigned to you.</p>
		<p>Open the dashboard to review it and schedule first contact.</p>
	`, assigneeName, companyName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send lead assignment email: %w", err)
	}
	return nil
}
