package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/buena/portfolio-service/internal/models"
	"github.com/buena/portfolio-service/internal/utils"
)

const propertyCreatedEmailHTML = `<html>
  <body style="font-family: system-ui, sans-serif; color: #333;">
    <h2>New Property Created</h2>
    <p>A new property has been added to the portfolio.</p>
    <table cellpadding="6">
      <tr><td><b>Name</b></td><td>%s</td></tr>
      <tr><td><b>Property Number</b></td><td>%s</td></tr>
      <tr><td><b>Buildings</b></td><td>%d</td></tr>
      <tr><td><b>Units</b></td><td>%d</td></tr>
    </table>
  </body>
</html>`

// EmailService sends the post-commit property-created notification. It is
// strictly fire-and-forget: a nil client or a send failure is logged and
// swallowed, never surfaced to the caller.
type EmailService struct {
	client      *sendgrid.Client
	orgName     string
	fromEmail   string
	notifyEmail string
	sandbox     bool
}

func NewEmailService(apiKey, orgName, fromEmail, notifyEmail string, sandbox bool) *EmailService {
	var client *sendgrid.Client
	if apiKey != "" {
		client = sendgrid.NewSendClient(apiKey)
	}
	return &EmailService{
		client:      client,
		orgName:     orgName,
		fromEmail:   fromEmail,
		notifyEmail: notifyEmail,
		sandbox:     sandbox,
	}
}

func (s *EmailService) SendPropertyCreated(p *models.Property, buildingCount, unitCount int) {
	if s.client == nil || s.notifyEmail == "" {
		utils.Logger.Infof("SendGrid client not configured, skipping property-created email for %s", p.PropertyNumber)
		return
	}

	subject := fmt.Sprintf("New property %s: %s", p.PropertyNumber, p.Name)
	plainText := fmt.Sprintf(
		"A new property was created.\n\nName: %s\nProperty Number: %s\nBuildings: %d\nUnits: %d",
		p.Name, p.PropertyNumber, buildingCount, unitCount,
	)
	htmlBody := fmt.Sprintf(propertyCreatedEmailHTML, p.Name, p.PropertyNumber, buildingCount, unitCount)

	from := mail.NewEmail(s.orgName, s.fromEmail)
	to := mail.NewEmail("Portfolio Team", s.notifyEmail)
	msg := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)
	msg.TrackingSettings = &mail.TrackingSettings{
		ClickTracking: &mail.ClickTrackingSetting{
			Enable: utils.Ptr(false),
		},
	}
	if s.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	if _, err := s.client.Send(msg); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send property-created email for %s", p.PropertyNumber)
		return
	}
	utils.Logger.Infof("Sent property-created email for %s", p.PropertyNumber)
}
