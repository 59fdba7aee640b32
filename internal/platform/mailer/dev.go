package mailer

import (
	"github.com/yourjourney/guest-portal/pkg/logger"
)

// DevMailer logs emails instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	logger.Info("[DEV MAIL]",
		"to", toEmail,
		"name", toName,
		"subject", subject,
		"text", text,
	)
	return "dev", nil
}

func (d *DevMailer) SendGuestLink(email, name, propertyName, link string) error {
	logger.Info("[DEV MAIL] Guest portal link",
		"to", email,
		"name", name,
		"property", propertyName,
		"link", link,
	)
	return nil
}
