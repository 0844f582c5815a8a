package mapper

import (
	"time"

	"care-intake-be/internal/dto"
	"care-intake-be/internal/entity"
	"care-intake-be/internal/faq"
)

// TimestampLayout renders ISO-8601 UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type FAQMapper struct{}

func NewFAQMapper() *FAQMapper {
	return &FAQMapper{}
}

func (m *FAQMapper) ToAnswerResponse(a *entity.FAQAnswer) *dto.FAQAnswerResponse {
	return &dto.FAQAnswerResponse{
		Answer:       a.Answer,
		MatchedFaqId: a.MatchedFaqId,
		Matched:      a.Matched,
	}
}

func (m *FAQMapper) ToQueryLogDTO(e entity.QueryLogEntry) dto.QueryLogEntryDTO {
	return dto.QueryLogEntryDTO{
		Query:        e.Query,
		Matched:      e.Matched,
		MatchedFaqId: e.MatchedFaqId,
		Type:         string(e.Type),
		Timestamp:    FormatTimestamp(e.Timestamp),
	}
}

func (m *FAQMapper) ToQueryLogList(entries []entity.QueryLogEntry) *dto.QueryLogListResponse {
	logs := make([]dto.QueryLogEntryDTO, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, m.ToQueryLogDTO(e))
	}
	return &dto.QueryLogListResponse{Logs: logs}
}

func (m *FAQMapper) ToCategories(counts []faq.CategoryCount) *dto.FAQCategoriesResponse {
	out := make([]dto.FAQCategoryDTO, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.FAQCategoryDTO{Name: c.Name, Count: c.Count})
	}
	return &dto.FAQCategoriesResponse{Categories: out}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
