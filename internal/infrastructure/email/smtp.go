package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for issue links (e.g., "http://localhost:8080")
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// SendApprovalRequiredEmail notifies an approver that a workflow step waits
// on them. htmlBody is pre-rendered and sanitized by the caller.
func (s *SMTPEmailService) SendApprovalRequiredEmail(to, issueTitle, htmlBody, plainBody string) error {
	subject := fmt.Sprintf("Approval required: %s", issueTitle)
	return s.sendEmail(to, subject, htmlBody, plainBody)
}

// SendStatusChangedEmail notifies a watcher that an issue moved.
func (s *SMTPEmailService) SendStatusChangedEmail(to, issueTitle, htmlBody, plainBody string) error {
	subject := fmt.Sprintf("Issue updated: %s", issueTitle)
	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
