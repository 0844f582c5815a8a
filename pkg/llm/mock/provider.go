// Package mock provides a scripted LLMProvider for tests and offline runs.
package mock

import (
	"context"
	"sync"

	"care-intake-be/pkg/llm"
)

// Call records one Generate/Chat invocation.
type Call struct {
	Prompt  string
	Options llm.Options
}

// Provider returns Reply/Err (or the result of Respond when set) and records every call.
type Provider struct {
	Reply   string
	Err     error
	Respond func(prompt string) (string, error)

	mu    sync.Mutex
	calls []Call
}

var _ llm.LLMProvider = &Provider{}

func NewProvider(reply string, err error) *Provider {
	return &Provider{Reply: reply, Err: err}
}

func (p *Provider) Name() string {
	return "mock"
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	prompt := ""
	if len(history) > 0 {
		prompt = history[len(history)-1].Content
	}
	return p.Generate(ctx, prompt, options...)
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, Call{Prompt: prompt, Options: llm.Apply(llm.Options{}, options...)})
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.Respond != nil {
		return p.Respond(prompt)
	}
	return p.Reply, p.Err
}

func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
