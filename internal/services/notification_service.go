// internal/services/notification_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/inccombinator/platform-backend/internal/config"
	"github.com/inccombinator/platform-backend/internal/models"
)

// NotificationService turns a status change into an outbound email via the
// transactional-email provider. Delivery is fire-and-forget, at most once:
// there is no retry, no backoff and no queue. A provider failure is recorded
// in the email log and reported back as an unsuccessful DispatchResult, never
// as an error, so callers can treat it as non-fatal to the status update.
type NotificationService struct {
	db     *gorm.DB
	config *config.Config
	client *http.Client
}

type EmailTemplate struct {
	Subject string
	Body    string
}

// StatusEmail is the dispatcher input for one status-change notification.
type StatusEmail struct {
	Recipient       string
	RecipientName   string
	ApplicationType models.ApplicationType
	Status          models.ApplicationStatus
	Notes           string
	Extra           map[string]string
}

// DispatchResult reports the outcome of one delivery attempt.
type DispatchResult struct {
	Success   bool       `json:"success"`
	Recipient string     `json:"recipient"`
	Status    string     `json:"status"`
	Error     string     `json:"error,omitempty"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

type providerRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendStatusEmail composes the status-specific email and hands it to the
// provider. Missing provider credentials are a configuration error surfaced to
// the caller before any delivery attempt.
func (s *NotificationService) SendStatusEmail(req *StatusEmail) (*DispatchResult, error) {
	if !s.config.EmailConfigured() {
		return nil, config.ErrEmailNotConfigured
	}

	tmpl := statusEmailTemplate(req.Status)

	data := map[string]interface{}{
		"Name":            req.RecipientName,
		"ApplicationType": string(req.ApplicationType),
		"Status":          strings.ToUpper(string(req.Status)),
		"Notes":           req.Notes,
		"PlatformName":    "Inc Combinator",
	}
	for k, v := range req.Extra {
		data[k] = v
	}

	subject, err := s.renderTemplate(tmpl.Subject, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render email subject: %w", err)
	}
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	result := s.deliver(req.Recipient, subject, body)
	s.logEmail(req, subject, result)
	return result, nil
}

func (s *NotificationService) deliver(to, subject, body string) *DispatchResult {
	result := &DispatchResult{Recipient: to, Status: string(models.EmailStatusFailed)}

	payload, err := json.Marshal(providerRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail),
		To:      []string{to},
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.config.Email.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		result.Error = err.Error()
		return result
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.config.Email.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Error = fmt.Sprintf("email provider returned status %d", resp.StatusCode)
		return result
	}

	now := time.Now()
	result.Success = true
	result.Status = string(models.EmailStatusSent)
	result.SentAt = &now
	return result
}

func (s *NotificationService) logEmail(req *StatusEmail, subject string, result *DispatchResult) {
	entry := &models.EmailLog{
		Recipient: req.Recipient,
		EmailType: "status_update",
		Subject:   subject,
		Status:    models.EmailStatus(result.Status),
		SentAt:    result.SentAt,
	}
	if !result.Success {
		entry.ErrorMessage = result.Error
	}

	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).Error("Failed to write email log")
	}

	if result.Success {
		logrus.WithFields(logrus.Fields{
			"recipient": req.Recipient,
			"status":    req.Status,
		}).Info("Status email sent")
	} else {
		logrus.WithFields(logrus.Fields{
			"recipient": req.Recipient,
			"status":    req.Status,
			"error":     result.Error,
		}).Warn("Status email failed")
	}
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// statusEmailTemplate selects the template for a status. Unknown statuses get
// the generic "status updated" copy.
func statusEmailTemplate(status models.ApplicationStatus) EmailTemplate {
	if tmpl, exists := statusTemplates[status]; exists {
		return tmpl
	}
	return genericTemplate
}

var statusTemplates = map[models.ApplicationStatus]EmailTemplate{
	models.ApplicationStatusApproved: {
		Subject: "Your {{.ApplicationType}} application has been APPROVED",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Congratulations, {{.Name}}!</h2>
	<p>Your {{.ApplicationType}} application to {{.PlatformName}} has been <strong>APPROVED</strong>.</p>
	{{if .Notes}}<p>Reviewer notes: {{.Notes}}</p>{{end}}
	<p>Next steps:</p>
	<ul>
		<li>Watch your inbox for onboarding details from our team</li>
		<li>Complete your profile on the dashboard</li>
		<li>Book your welcome call within the next 7 days</li>
	</ul>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
	},
	models.ApplicationStatusRejected: {
		Subject: "Your {{.ApplicationType}} application status: REJECTED",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>After careful review, your {{.ApplicationType}} application to {{.PlatformName}} has been <strong>REJECTED</strong>.</p>
	{{if .Notes}}<p>Reviewer notes: {{.Notes}}</p>{{end}}
	<p>We encourage you to apply again for a future cohort.</p>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
	},
	models.ApplicationStatusUnderReview: {
		Subject: "Your {{.ApplicationType}} application is UNDER REVIEW",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Your {{.ApplicationType}} application is now <strong>UNDER REVIEW</strong> by our team.</p>
	{{if .Notes}}<p>Reviewer notes: {{.Notes}}</p>{{end}}
	<p>We will get back to you as soon as a decision has been made.</p>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
	},
	models.ApplicationStatusPending: {
		Subject: "Your {{.ApplicationType}} application is PENDING",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Your {{.ApplicationType}} application is back in the <strong>PENDING</strong> queue.</p>
	{{if .Notes}}<p>Reviewer notes: {{.Notes}}</p>{{end}}
	<p>No action is needed from you right now.</p>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
	},
}

var genericTemplate = EmailTemplate{
	Subject: "Your {{.ApplicationType}} application status was updated",
	Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>The status of your {{.ApplicationType}} application was updated to <strong>{{.Status}}</strong>.</p>
	{{if .Notes}}<p>Reviewer notes: {{.Notes}}</p>{{end}}
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`,
}
