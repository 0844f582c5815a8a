package metrics

import (
	"context"
	"time"

	"care-intake-be/pkg/llm"
)

type useCaseKey struct{}

// WithUseCase tags ctx so the instrumented provider can label its series.
func WithUseCase(ctx context.Context, useCase string) context.Context {
	return context.WithValue(ctx, useCaseKey{}, useCase)
}

func useCaseFrom(ctx context.Context) string {
	if v, ok := ctx.Value(useCaseKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// InstrumentedProvider counts and times every call of the wrapped provider.
type InstrumentedProvider struct {
	next    llm.LLMProvider
	metrics *Metrics
}

var _ llm.LLMProvider = &InstrumentedProvider{}

func InstrumentProvider(next llm.LLMProvider, m *Metrics) *InstrumentedProvider {
	return &InstrumentedProvider{next: next, metrics: m}
}

func (p *InstrumentedProvider) Name() string {
	return p.next.Name()
}

func (p *InstrumentedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	start := time.Now()
	reply, err := p.next.Chat(ctx, history, options...)
	p.observe(ctx, start, reply, err)
	return reply, err
}

func (p *InstrumentedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	start := time.Now()
	reply, err := p.next.Generate(ctx, prompt, options...)
	p.observe(ctx, start, reply, err)
	return reply, err
}

func (p *InstrumentedProvider) observe(ctx context.Context, start time.Time, reply string, err error) {
	useCase := useCaseFrom(ctx)
	p.metrics.LLMLatency.WithLabelValues(useCase).Observe(time.Since(start).Seconds())

	status := "success"
	switch {
	case err != nil:
		status = "error"
		p.metrics.Errors.WithLabelValues("llm").Inc()
	case reply == "":
		status = "empty"
	}
	p.metrics.LLMRequests.WithLabelValues(useCase, status).Inc()
}
