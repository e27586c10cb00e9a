package services

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

const occupancyConflictEmailHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, Helvetica, sans-serif; color: #333; }
    .card { max-width: 600px; margin: 0 auto; border: 1px solid #e0e0e0; border-radius: 8px; padding: 24px; }
    .header { font-size: 18px; font-weight: bold; color: #b00020; margin-bottom: 16px; }
    .row { margin: 6px 0; }
    .label { color: #777; }
    .footer { margin-top: 20px; font-size: 12px; color: #999; }
  </style>
</head>
<body>
  <div class="card">
    <div class="header">%s</div>
    <div class="row"><span class="label">Property:</span> %s</div>
    <div class="row"><span class="label">Space:</span> %s</div>
    <div class="row"><span class="label">Detail:</span> %s</div>
    <div class="footer">Generated %s. This conflict requires manual review; automatic repair was not applied.</div>
  </div>
</body>
</html>`

// NotifyManagerEscalation alerts a property manager about an occupancy
// conflict the reconciliation sweep could not repair on its own. Every
// channel failure is logged and swallowed; notification is never allowed
// to fail the sweep.
func NotifyManagerEscalation(
	orgName string,
	fromEmail string,
	fromPhone string,
	sendgridSandbox bool,
	twClient *twilio.RestClient,
	sgClient *sendgrid.Client,
	manager *models.PropertyManager,
	prop *models.Property,
	spaceLabel string,
	detail string,
) {
	subject := fmt.Sprintf("[Occupancy Conflict] %s", prop.PropertyName)
	plainTextBody := fmt.Sprintf(
		"Occupancy conflict detected.\n\nProperty: %s\nSpace: %s\nDetail: %s\n\nAutomatic repair was not applied; please review.",
		prop.PropertyName,
		spaceLabel,
		detail,
	)
	htmlBody := fmt.Sprintf(
		occupancyConflictEmailHTML,
		subject,
		prop.PropertyName,
		spaceLabel,
		detail,
		time.Now().UTC().Format(time.RFC1123Z),
	)

	// ---------- Twilio SMS ----------
	if twClient != nil && manager.PhoneNumber != nil {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(*manager.PhoneNumber)
		params.SetFrom(fromPhone)
		params.SetBody(subject + " :: " + plainTextBody)
		_, smsErr := twClient.Api.CreateMessage(params)
		if smsErr != nil {
			utils.Logger.WithError(smsErr).Warnf("Failed to send conflict SMS to manager %s", manager.ID)
		}
	} else {
		utils.Logger.Warnf("Twilio client unavailable, skipping SMS to manager %s", manager.ID)
	}

	// ---------- SendGrid Email ----------
	if sgClient != nil {
		from := mail.NewEmail(orgName, fromEmail)
		to := mail.NewEmail(manager.BusinessName, manager.Email)
		msg := mail.NewSingleEmail(from, subject, to, plainTextBody, htmlBody)
		msg.TrackingSettings = &mail.TrackingSettings{
			ClickTracking: &mail.ClickTrackingSetting{
				Enable: utils.Ptr(false),
			},
		}
		if sendgridSandbox {
			ms := mail.NewMailSettings()
			ms.SetSandboxMode(mail.NewSetting(true))
			msg.MailSettings = ms
		}
		if _, sgErr := sgClient.Send(msg); sgErr != nil {
			utils.Logger.WithError(sgErr).Warnf("Failed to send conflict email to manager %s", manager.ID)
		}
	} else {
		utils.Logger.Warnf("SendGrid client is nil, skipping email to manager %s", manager.ID)
	}
}
