package service

import (
	"context"
	"errors"
	"strings"

	"care-intake-be/internal/constant"
	"care-intake-be/internal/entity"
	"care-intake-be/internal/faq"
	"care-intake-be/internal/metrics"
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/pkg/ai/prompt"
	"care-intake-be/pkg/ai/response"
	"care-intake-be/pkg/llm"
)

type IFAQService interface {
	// Ask never fails. Provider and parse problems degrade to the safe fallback or the raw reply.
	Ask(ctx context.Context, question string) *entity.FAQAnswer
	Entries(category string) []entity.FAQEntry
	Categories() []faq.CategoryCount
}

type faqService struct {
	llmProvider llm.LLMProvider
	corpus      *faq.Corpus
	metrics     *metrics.Metrics
	logger      logger.ILogger
}

func NewFAQService(llmProvider llm.LLMProvider, corpus *faq.Corpus, m *metrics.Metrics, log logger.ILogger) IFAQService {
	return &faqService{
		llmProvider: llmProvider,
		corpus:      corpus,
		metrics:     m,
		logger:      log,
	}
}

func (s *faqService) Ask(ctx context.Context, question string) *entity.FAQAnswer {
	question = strings.TrimSpace(question)
	faqPrompt := prompt.BuildFAQPrompt(question, s.corpus.Entries(), constant.FAQSafeFallback)

	reply, err := s.llmProvider.Generate(
		metrics.WithUseCase(ctx, "faq"),
		faqPrompt,
		llm.WithTemperature(constant.FAQTemperature),
		llm.WithMaxTokens(constant.FAQMaxTokens),
	)
	if err != nil {
		s.metrics.Errors.WithLabelValues("faq").Inc()
		s.logger.Warn("FAQService", "LLM request failed, answering with fallback", map[string]interface{}{"error": err.Error()})
		return s.fallback()
	}

	doc, err := response.Parse(reply)
	switch {
	case errors.Is(err, response.ErrEmptyReply):
		s.logger.Warn("FAQService", "Empty model reply, answering with fallback", nil)
		return s.fallback()
	case err != nil:
		s.logger.Warn("FAQService", "Model reply is not JSON, returning raw text", map[string]interface{}{"error": err.Error()})
		s.metrics.FAQAnswers.WithLabelValues("raw").Inc()
		return &entity.FAQAnswer{Answer: response.Clean(reply)}
	}

	if text, ok := doc.Text(); ok {
		return s.finish(text, nil, false)
	}

	return s.finish(
		doc.String("answer"),
		s.corpus.ValidId(doc.OptionalInt("matchedFaqId")),
		doc.Bool("matched"),
	)
}

func (s *faqService) Entries(category string) []entity.FAQEntry {
	return s.corpus.ByCategory(category)
}

func (s *faqService) Categories() []faq.CategoryCount {
	return s.corpus.CategoryCounts()
}

func (s *faqService) finish(answer string, matchedFaqId *int, matched bool) *entity.FAQAnswer {
	if trimmed := strings.TrimSpace(answer); trimmed == "" || trimmed == constant.FAQSafeFallback {
		return s.fallback()
	}

	outcome := "unmatched"
	if matched {
		outcome = "matched"
	}
	s.metrics.FAQAnswers.WithLabelValues(outcome).Inc()

	return &entity.FAQAnswer{
		Answer:       answer,
		MatchedFaqId: matchedFaqId,
		Matched:      matched,
	}
}

// fallback is the only answer shape allowed to carry the safe fallback text.
func (s *faqService) fallback() *entity.FAQAnswer {
	s.metrics.FAQAnswers.WithLabelValues("fallback").Inc()
	return &entity.FAQAnswer{Answer: constant.FAQSafeFallback}
}
