package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Params{Provider: "groq", GroqAPIKey: "k", Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "groq", p.Name())

	p, err = NewLLMProvider(Params{Provider: "", GroqAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "groq", p.Name())

	_, err = NewLLMProvider(Params{Provider: "groq"})
	assert.ErrorContains(t, err, "GROQ_API_KEY")

	p, err = NewLLMProvider(Params{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())

	_, err = NewLLMProvider(Params{Provider: "gemini"})
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
