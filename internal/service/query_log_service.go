package service

import (
	"context"
	"time"

	"care-intake-be/internal/entity"
	"care-intake-be/internal/faq"
	"care-intake-be/internal/mapper"
	"care-intake-be/internal/metrics"
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/internal/repository/contract"
	"care-intake-be/internal/repository/specification"
	"care-intake-be/pkg/ai/response"
	"care-intake-be/pkg/events"
)

type IQueryLogService interface {
	// Record appends a log entry built from a loosely typed client body.
	// Missing or mistyped fields take their defaults; it never fails.
	Record(ctx context.Context, fields map[string]interface{}) entity.QueryLogEntry
	List(ctx context.Context, specs ...specification.QueryLogSpecification) []entity.QueryLogEntry
}

type queryLogService struct {
	repo      contract.QueryLogRepository
	corpus    *faq.Corpus
	publisher IPublisherService
	metrics   *metrics.Metrics
	logger    logger.ILogger
	now       func() time.Time
}

// NewQueryLogService builds the log service. publisher may be nil.
func NewQueryLogService(
	repo contract.QueryLogRepository,
	corpus *faq.Corpus,
	publisher IPublisherService,
	m *metrics.Metrics,
	log logger.ILogger,
) IQueryLogService {
	return &queryLogService{
		repo:      repo,
		corpus:    corpus,
		publisher: publisher,
		metrics:   m,
		logger:    log,
		now:       time.Now,
	}
}

func (s *queryLogService) Record(ctx context.Context, fields map[string]interface{}) entity.QueryLogEntry {
	doc := response.FromMap(fields)

	query, _ := fields["query"].(string)
	entry := entity.QueryLogEntry{
		Query:        query,
		Matched:      doc.Bool("matched"),
		MatchedFaqId: s.corpus.ValidId(doc.OptionalInt("matchedFaqId")),
		Type:         entity.ParseQueryLogType(doc.String("type")),
		Timestamp:    s.now().UTC(),
	}

	s.repo.Append(entry)
	s.metrics.QueryLogWrites.WithLabelValues(string(entry.Type)).Inc()
	s.logger.Info("QueryLogService", "Query logged", map[string]interface{}{
		"type":    entry.Type,
		"matched": entry.Matched,
		"total":   s.repo.Count(),
	})

	s.publishLogged(ctx, entry)

	return entry
}

func (s *queryLogService) List(ctx context.Context, specs ...specification.QueryLogSpecification) []entity.QueryLogEntry {
	return s.repo.FindAll(specs...)
}

func (s *queryLogService) publishLogged(ctx context.Context, entry entity.QueryLogEntry) {
	if s.publisher == nil {
		return
	}

	var faqId interface{}
	if entry.MatchedFaqId != nil {
		faqId = *entry.MatchedFaqId
	}

	evt := events.BaseEvent{
		Type: events.EventQueryLogged,
		Data: map[string]interface{}{
			"query":        entry.Query,
			"matched":      entry.Matched,
			"matchedFaqId": faqId,
			"type":         string(entry.Type),
			"timestamp":    mapper.FormatTimestamp(entry.Timestamp),
		},
		OccurredAt: entry.Timestamp,
	}

	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("QueryLogService", "Failed to publish query log event", map[string]interface{}{"error": err.Error()})
	}
}
