package service

import (
	"context"
	"sync"
	"testing"

	"care-intake-be/internal/faq"
	"care-intake-be/internal/metrics"
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/internal/pkg/mailer"
	"care-intake-be/pkg/events"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

type recordingMailer struct {
	alerts chan mailer.TriageAlert
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{alerts: make(chan mailer.TriageAlert, 4)}
}

func (m *recordingMailer) SendTriageAlert(alert mailer.TriageAlert) error {
	m.alerts <- alert
	return nil
}

func testCorpus(t *testing.T) *faq.Corpus {
	t.Helper()
	corpus, err := faq.Load("")
	require.NoError(t, err)
	return corpus
}

func testDeps() (*metrics.Metrics, logger.ILogger) {
	return metrics.New("test"), logger.NewNopLogger()
}
