package factory

import (
	"fmt"
	"time"

	"care-intake-be/pkg/llm"
	"care-intake-be/pkg/llm/groq"
	"care-intake-be/pkg/llm/ollama"
)

type Params struct {
	Provider      string
	Model         string
	Timeout       time.Duration
	GroqAPIKey    string
	GroqBaseURL   string
	OllamaBaseURL string
}

func NewLLMProvider(p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "groq", "":
		if p.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for the groq provider")
		}
		return groq.NewGroqProvider(p.GroqAPIKey, p.GroqBaseURL, p.Model, p.Timeout), nil
	case "ollama":
		baseURL := p.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, p.Model, p.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}
