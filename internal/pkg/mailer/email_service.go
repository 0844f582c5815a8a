package mailer

import (
	"fmt"
	"html"

	"care-intake-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

// TriageAlert is the volunteer-facing digest of a high-urgency request.
type TriageAlert struct {
	Name               string
	Role               string
	SupportType        string
	CancerType         string
	Urgency            string
	Summary            string
	UrgencyReason      string
	SuggestedNextSteps string
}

type IEmailService interface {
	SendTriageAlert(alert TriageAlert) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      dialer
	senderEmail string
	senderName  string
	alertTo     string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderName, alertTo string, log logger.ILogger) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
		alertTo:     alertTo,
		logger:      log,
	}
}

func (s *emailService) SendTriageAlert(alert TriageAlert) error {
	m := buildTriageAlert(s.senderEmail, s.senderName, s.alertTo, alert)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Mailer", "Failed to send triage alert", map[string]interface{}{"error": err, "to": s.alertTo})
		return err
	}

	s.logger.Info("Mailer", "Triage alert sent", map[string]interface{}{"to": s.alertTo, "urgency": alert.Urgency})
	return nil
}

func buildTriageAlert(from, fromName, to string, alert TriageAlert) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Support request: %s", alert.Urgency, alert.SupportType))

	cancerType := alert.CancerType
	if cancerType == "" {
		cancerType = "Not specified"
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s urgency support request</h2>
			<p><strong>From:</strong> %s (%s)</p>
			<p><strong>Support type:</strong> %s</p>
			<p><strong>Cancer type:</strong> %s</p>
			<h3>Summary</h3>
			<p>%s</p>
			<h3>Why this urgency</h3>
			<p>%s</p>
			<h3>Suggested next steps</h3>
			<p>%s</p>
			<p style="color: #888;">AI-assisted triage. Please review before contacting the requester.</p>
		</div>
	`,
		html.EscapeString(alert.Urgency),
		html.EscapeString(alert.Name),
		html.EscapeString(alert.Role),
		html.EscapeString(alert.SupportType),
		html.EscapeString(cancerType),
		html.EscapeString(alert.Summary),
		html.EscapeString(alert.UrgencyReason),
		html.EscapeString(alert.SuggestedNextSteps),
	)

	m.SetBody("text/html", body)
	return m
}
