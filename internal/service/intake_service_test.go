package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"care-intake-be/internal/constant"
	"care-intake-be/internal/entity"
	"care-intake-be/pkg/ai/response"
	"care-intake-be/pkg/events"
	"care-intake-be/pkg/llm/mock"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ashaRequest = entity.SupportRequest{
	Name:        "Asha",
	CancerType:  "Breast Cancer",
	Role:        "Caregiver",
	SupportType: "Financial Assistance",
	Message:     "My mother starts chemotherapy next week and we cannot afford the travel and medicines.",
}

func TestAnalyzeHighUrgencyRequest(t *testing.T) {
	m, log := testDeps()
	provider := mock.NewProvider("```json\n"+`{
  "summary": "Caregiver needs money for imminent chemotherapy.",
  "urgency": "high",
  "urgencyReason": "Treatment starts next week.",
  "recommendation": "Connect the family with the financial aid volunteer."
}`+"\n```", nil)
	pub := &recordingPublisher{}
	mail := newRecordingMailer()

	svc := NewIntakeService(provider, pub, mail, m, log)
	result, err := svc.Analyze(context.Background(), ashaRequest)
	require.NoError(t, err)

	assert.Equal(t, entity.UrgencyHigh, result.Urgency)
	assert.Equal(t, "Caregiver needs money for imminent chemotherapy.", result.Summary)
	assert.Equal(t, "Treatment starts next week.", result.UrgencyReason)
	assert.Equal(t, "Connect the family with the financial aid volunteer.", result.SuggestedNextSteps)

	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, `"Asha"`)
	assert.Contains(t, calls[0].Prompt, "Jarurat Care")
	assert.Equal(t, constant.IntakeTemperature, calls[0].Options.Temperature)
	assert.Equal(t, constant.IntakeMaxTokens, calls[0].Options.MaxTokens)

	published := pub.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTriageCompleted, published[0].EventType())
	assert.Equal(t, "High", published[0].Payload()["urgency"])
	assert.NotContains(t, published[0].Payload(), "name")

	select {
	case alert := <-mail.alerts:
		assert.Equal(t, "Asha", alert.Name)
		assert.Equal(t, "High", alert.Urgency)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a high-urgency alert")
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TriageResults.WithLabelValues("High")))
}

func TestAnalyzeUrgencyIsCanonical(t *testing.T) {
	for raw, want := range map[string]entity.Urgency{
		"Low":     entity.UrgencyLow,
		"MEDIUM":  entity.UrgencyMedium,
		" high ":  entity.UrgencyHigh,
		"medium":  entity.UrgencyMedium,
	} {
		m, log := testDeps()
		provider := mock.NewProvider(`{"summary":"s","urgency":"`+raw+`","urgencyReason":"r","suggestedNextSteps":"n"}`, nil)

		result, err := NewIntakeService(provider, nil, nil, m, log).Analyze(context.Background(), ashaRequest)
		require.NoError(t, err, raw)
		assert.Equal(t, want, result.Urgency, raw)
		assert.Equal(t, "n", result.SuggestedNextSteps)
	}
}

func TestAnalyzeMissingTextFieldsDefaultToEmpty(t *testing.T) {
	m, log := testDeps()
	provider := mock.NewProvider(`{"urgency":"Low"}`, nil)
	mail := newRecordingMailer()

	result, err := NewIntakeService(provider, nil, mail, m, log).Analyze(context.Background(), ashaRequest)
	require.NoError(t, err)
	assert.Equal(t, entity.TriageResult{Urgency: entity.UrgencyLow}, *result)
	assert.Empty(t, mail.alerts)
}

func TestAnalyzeFailures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			name:  "empty reply",
			reply: "  ",
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, response.ErrEmptyReply) },
		},
		{
			name: "transport failure",
			err:  errors.New("connection reset by peer"),
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "connection reset by peer")
			},
		},
		{
			name:  "malformed json",
			reply: "Sure! Here is the triage: urgency high",
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, response.ErrMalformedReply) },
		},
		{
			name:  "urgency outside the set",
			reply: `{"summary":"s","urgency":"Critical"}`,
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrInvalidUrgency) },
		},
		{
			name:  "missing urgency",
			reply: `{"summary":"s"}`,
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrInvalidUrgency) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, log := testDeps()
			pub := &recordingPublisher{}

			result, err := NewIntakeService(mock.NewProvider(tt.reply, tt.err), pub, nil, m, log).
				Analyze(context.Background(), ashaRequest)

			assert.Nil(t, result)
			require.Error(t, err)
			tt.check(t, err)
			assert.Empty(t, pub.Events())
			assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("intake")))
		})
	}
}

func TestAnalyzePublisherFailureDoesNotFailRequest(t *testing.T) {
	m, log := testDeps()
	pub := &recordingPublisher{err: errors.New("bus closed")}
	provider := mock.NewProvider(`{"summary":"s","urgency":"Medium"}`, nil)

	result, err := NewIntakeService(provider, pub, nil, m, log).Analyze(context.Background(), ashaRequest)
	require.NoError(t, err)
	assert.Equal(t, entity.UrgencyMedium, result.Urgency)
}

func TestIntakeOptions(t *testing.T) {
	m, log := testDeps()
	opts := NewIntakeService(mock.NewProvider("", nil), nil, nil, m, log).Options()

	assert.Contains(t, opts.Roles, "Caregiver")
	assert.Contains(t, opts.SupportTypes, "Financial Assistance")
	assert.Contains(t, opts.CancerTypes, "Breast Cancer")
}
