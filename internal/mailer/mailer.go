package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/bkaya/campus-market/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendListingDigest emails a seller a summary of their active listings.
func (s *Sender) SendListingDigest(to, username string, listings int, total float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your Campus Market listings"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"You currently have %d listing(s) on Campus Market with a total asking price of %.2f.\n"+
			"Log in to edit or remove listings that are no longer for sale.\n",
		username, listings, total,
	)
	body += "\nBest regards,\nCampus Market"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
