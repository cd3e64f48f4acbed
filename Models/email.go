package Models

import (
	"os"
	"strconv"
)

// EmailConfig carries SMTP settings for outgoing digest mail.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	Username   string
	Password   string
	FromEmail  string
	FromName   string
	TLSEnabled bool
}

// EmailMessage represents an email to be sent
type EmailMessage struct {
	To      []string
	Subject string
	Body    string
}

// EmailConfigFromEnv builds the SMTP configuration from the environment.
// An empty SMTP_SERVER disables mail entirely.
func EmailConfigFromEnv() EmailConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return EmailConfig{
		SMTPServer: os.Getenv("SMTP_SERVER"),
		SMTPPort:   port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		FromEmail:  os.Getenv("SMTP_FROM"),
		FromName:   "Monjez",
		TLSEnabled: os.Getenv("SMTP_TLS") == "true",
	}
}

// Enabled reports whether outgoing mail is configured.
func (c EmailConfig) Enabled() bool {
	return c.SMTPServer != ""
}
