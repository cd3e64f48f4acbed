package Notify

import (
	"fmt"
	"log"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"
	"gorm.io/gorm"

	"Monjez/Models"
	"Monjez/email"
)

// DigestScheduler posts the daily digest to Slack and mails it to the
// admin address every afternoon on work days.
type DigestScheduler struct {
	cronScheduler *cron.Cron
	db            *gorm.DB
	jobID         cron.EntryID
}

func NewDigestScheduler(db *gorm.DB) *DigestScheduler {
	return &DigestScheduler{
		cronScheduler: cron.New(cron.WithSeconds()),
		db:            db,
	}
}

// Start schedules the digest, daily at 16:00 server time by default;
// DIGEST_CRON overrides it with a full six-field cron expression.
func (s *DigestScheduler) Start() error {
	expr := os.Getenv("DIGEST_CRON")
	if expr == "" {
		expr = "0 0 16 * * *"
	}

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(expr, func() {
		log.Println("Running scheduled daily digest")
		s.runDigest()
	})
	if err != nil {
		return fmt.Errorf("error scheduling digest job: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Digest scheduler started")
	return nil
}

// Stop terminates the scheduler.
func (s *DigestScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *DigestScheduler) runDigest() {
	digest, err := BuildDigest(s.db, nowFunc())
	if err != nil {
		log.Printf("digest build failed: %v", err)
		return
	}
	if digest == nil {
		return // rest day
	}

	message := digest.Message()
	s.postSlack(message)
	s.sendMail(digest.Date, message)
}

func (s *DigestScheduler) postSlack(message string) {
	token := os.Getenv("SLACK_BOT_TOKEN")
	channel := os.Getenv("SLACK_CHANNEL_ID")
	if token == "" || channel == "" {
		return
	}
	api := slack.New(token)
	if _, _, err := api.PostMessage(channel, slack.MsgOptionText(message, false)); err != nil {
		log.Printf("slack digest post failed: %v", err)
	}
}

func (s *DigestScheduler) sendMail(date, message string) {
	config := Models.EmailConfigFromEnv()
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if !config.Enabled() || adminEmail == "" {
		return
	}
	err := email.SendEmail(config, Models.EmailMessage{
		To:      []string{adminEmail},
		Subject: "Daily Reporting Digest - " + date,
		Body:    message,
	})
	if err != nil {
		log.Printf("digest email failed: %v", err)
	}
}
