package nats

import (
	"testing"

	"care-intake-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "care.events.faq_query_logged", Subject(events.EventQueryLogged))
	assert.Equal(t, "care.events.triage_completed", Subject(events.EventTriageCompleted))
}
