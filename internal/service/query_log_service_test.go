package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"care-intake-be/internal/entity"
	"care-intake-be/internal/repository/memory"
	"care-intake-be/internal/repository/specification"
	"care-intake-be/pkg/events"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueryLogService(t *testing.T, pub IPublisherService) (*queryLogService, *memory.QueryLogRepository) {
	t.Helper()
	m, log := testDeps()
	repo := memory.NewQueryLogRepository()
	svc := NewQueryLogService(repo, testCorpus(t), pub, m, log).(*queryLogService)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 14, 15, 9, 26, 535_000_000, time.FixedZone("IST", 5*3600+1800))
	}
	return svc, repo
}

func TestRecordAppliesDefaults(t *testing.T) {
	svc, repo := newTestQueryLogService(t, nil)

	entry := svc.Record(context.Background(), map[string]interface{}{})

	assert.Equal(t, "", entry.Query)
	assert.False(t, entry.Matched)
	assert.Nil(t, entry.MatchedFaqId)
	assert.Equal(t, entity.QueryLogTypeUnanswered, entry.Type)
	assert.Equal(t, time.UTC, entry.Timestamp.Location())
	assert.Equal(t, 9, entry.Timestamp.Hour())
	assert.Equal(t, 1, repo.Count())
}

func TestRecordSanitisesClientFields(t *testing.T) {
	svc, _ := newTestQueryLogService(t, nil)

	report := svc.Record(context.Background(), map[string]interface{}{
		"query":        "wrong answer about transport",
		"matched":      true,
		"matchedFaqId": float64(13),
		"type":         "report",
	})
	assert.Equal(t, entity.QueryLogTypeReport, report.Type)
	require.NotNil(t, report.MatchedFaqId)
	assert.Equal(t, 13, *report.MatchedFaqId)
	assert.True(t, report.Matched)

	odd := svc.Record(context.Background(), map[string]interface{}{
		"query":        42,
		"matched":      "yes",
		"matchedFaqId": float64(404),
		"type":         "complaint",
	})
	assert.Equal(t, "", odd.Query)
	assert.False(t, odd.Matched)
	assert.Nil(t, odd.MatchedFaqId)
	assert.Equal(t, entity.QueryLogTypeUnanswered, odd.Type)
}

func TestRecordPublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc, _ := newTestQueryLogService(t, pub)

	svc.Record(context.Background(), map[string]interface{}{"query": "volunteer?", "type": "unanswered"})

	published := pub.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventQueryLogged, published[0].EventType())
	assert.Equal(t, "volunteer?", published[0].Payload()["query"])
	assert.Nil(t, published[0].Payload()["matchedFaqId"])
	assert.Equal(t, "2025-03-14T09:39:26.535Z", published[0].Payload()["timestamp"])
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.metrics.QueryLogWrites.WithLabelValues("unanswered")))
}

func TestRecordConcurrentAppends(t *testing.T) {
	svc, _ := newTestQueryLogService(t, nil)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			svc.Record(context.Background(), map[string]interface{}{"query": "q"})
		}()
	}
	wg.Wait()

	assert.Len(t, svc.List(context.Background()), n)
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestQueryLogService(t, nil)
	ctx := context.Background()

	svc.Record(ctx, map[string]interface{}{"query": "a"})
	svc.Record(ctx, map[string]interface{}{"query": "b", "type": "report", "matched": true, "matchedFaqId": float64(2)})
	svc.Record(ctx, map[string]interface{}{"query": "c", "type": "report"})

	all := svc.List(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].Query, all[1].Query, all[2].Query})

	reports := svc.List(ctx, specification.ByLogType{Type: entity.QueryLogTypeReport})
	assert.Len(t, reports, 2)

	matched := svc.List(ctx, specification.ByLogType{Type: entity.QueryLogTypeReport}, specification.ByFaqId{FaqId: 2})
	require.Len(t, matched, 1)
	assert.Equal(t, "b", matched[0].Query)
}
