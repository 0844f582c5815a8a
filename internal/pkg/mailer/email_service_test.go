package mailer

import (
	"bytes"
	"errors"
	"testing"

	"care-intake-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestSendTriageAlert(t *testing.T) {
	d := &fakeDialer{}
	svc := &emailService{
		dialer:      d,
		senderEmail: "intake@example.org",
		senderName:  "Intake",
		alertTo:     "volunteers@example.org",
		logger:      logger.NewNopLogger(),
	}

	err := svc.SendTriageAlert(TriageAlert{
		Name:          "Asha <script>",
		Role:          "Caregiver",
		SupportType:   "Financial Assistance",
		Urgency:       "High",
		Summary:       "Family cannot afford chemotherapy next week.",
		UrgencyReason: "Treatment imminent",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"volunteers@example.org"}, m.GetHeader("To"))
	assert.Equal(t, []string{"[High] Support request: Financial Assistance"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	body := buf.String()
	assert.Contains(t, body, "Not specified")
	assert.NotContains(t, body, "<script>")
}

func TestSendTriageAlertPropagatesDialError(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	svc := &emailService{dialer: d, alertTo: "volunteers@example.org", logger: logger.NewNopLogger()}

	err := svc.SendTriageAlert(TriageAlert{Urgency: "High"})
	assert.EqualError(t, err, "connection refused")
}
