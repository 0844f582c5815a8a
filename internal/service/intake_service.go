package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"care-intake-be/internal/constant"
	"care-intake-be/internal/dto"
	"care-intake-be/internal/entity"
	"care-intake-be/internal/metrics"
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/internal/pkg/mailer"
	"care-intake-be/pkg/ai/prompt"
	"care-intake-be/pkg/ai/response"
	"care-intake-be/pkg/events"
	"care-intake-be/pkg/llm"
)

// ErrInvalidUrgency means the model answered with an urgency outside Low/Medium/High.
var ErrInvalidUrgency = errors.New("model returned an invalid urgency")

type IIntakeService interface {
	Analyze(ctx context.Context, req entity.SupportRequest) (*entity.TriageResult, error)
	Options() *dto.IntakeOptionsResponse
}

type intakeService struct {
	llmProvider llm.LLMProvider
	publisher   IPublisherService
	mailer      mailer.IEmailService
	metrics     *metrics.Metrics
	logger      logger.ILogger
}

// NewIntakeService wires the triage pipeline. publisher and emailService may be nil.
func NewIntakeService(
	llmProvider llm.LLMProvider,
	publisher IPublisherService,
	emailService mailer.IEmailService,
	m *metrics.Metrics,
	log logger.ILogger,
) IIntakeService {
	return &intakeService{
		llmProvider: llmProvider,
		publisher:   publisher,
		mailer:      emailService,
		metrics:     m,
		logger:      log,
	}
}

func (s *intakeService) Analyze(ctx context.Context, req entity.SupportRequest) (*entity.TriageResult, error) {
	intakePrompt := prompt.BuildIntakePrompt(prompt.IntakeInput{
		Organization: constant.OrganizationName,
		Name:         req.Name,
		CancerType:   req.CancerType,
		Role:         req.Role,
		SupportType:  req.SupportType,
		Message:      req.Message,
	})

	reply, err := s.llmProvider.Generate(
		metrics.WithUseCase(ctx, "intake"),
		intakePrompt,
		llm.WithTemperature(constant.IntakeTemperature),
		llm.WithMaxTokens(constant.IntakeMaxTokens),
	)
	if err != nil {
		s.fail("LLM request failed", err, req)
		return nil, fmt.Errorf("llm request failed: %w", err)
	}

	doc, err := response.Parse(reply)
	if err != nil {
		s.fail("Unusable model reply", err, req)
		return nil, err
	}

	rawUrgency := doc.String("urgency")
	urgency, ok := entity.ParseUrgency(rawUrgency)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrInvalidUrgency, rawUrgency)
		s.fail("Model urgency out of range", err, req)
		return nil, err
	}

	result := &entity.TriageResult{
		Summary:            doc.String("summary"),
		Urgency:            urgency,
		UrgencyReason:      doc.String("urgencyReason"),
		SuggestedNextSteps: doc.String("suggestedNextSteps", "recommendation"),
	}

	s.metrics.TriageResults.WithLabelValues(string(result.Urgency)).Inc()
	s.logger.Info("IntakeService", "Support request triaged", map[string]interface{}{
		"urgency":      result.Urgency,
		"support_type": req.SupportType,
		"role":         req.Role,
	})

	s.publishTriage(ctx, req, result)

	if result.Urgency == entity.UrgencyHigh && s.mailer != nil {
		go s.sendAlert(req, *result)
	}

	return result, nil
}

func (s *intakeService) Options() *dto.IntakeOptionsResponse {
	return &dto.IntakeOptionsResponse{
		Roles:        constant.SupportRoles,
		SupportTypes: constant.SupportTypes,
		CancerTypes:  constant.CancerTypes,
	}
}

func (s *intakeService) fail(message string, err error, req entity.SupportRequest) {
	s.metrics.Errors.WithLabelValues("intake").Inc()
	s.logger.Error("IntakeService", message, map[string]interface{}{
		"error":        err,
		"support_type": req.SupportType,
		"role":         req.Role,
	})
}

// publishTriage emits a TRIAGE_COMPLETED event. Personal details stay out of the payload.
func (s *intakeService) publishTriage(ctx context.Context, req entity.SupportRequest, result *entity.TriageResult) {
	if s.publisher == nil {
		return
	}

	evt := events.BaseEvent{
		Type: events.EventTriageCompleted,
		Data: map[string]interface{}{
			"urgency":      string(result.Urgency),
			"support_type": req.SupportType,
			"role":         req.Role,
		},
		OccurredAt: time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("IntakeService", "Failed to publish triage event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *intakeService) sendAlert(req entity.SupportRequest, result entity.TriageResult) {
	err := s.mailer.SendTriageAlert(mailer.TriageAlert{
		Name:               req.Name,
		Role:               req.Role,
		SupportType:        req.SupportType,
		CancerType:         req.CancerType,
		Urgency:            string(result.Urgency),
		Summary:            result.Summary,
		UrgencyReason:      result.UrgencyReason,
		SuggestedNextSteps: result.SuggestedNextSteps,
	})
	if err != nil {
		s.metrics.Errors.WithLabelValues("mailer").Inc()
	}
}
