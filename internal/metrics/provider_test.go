package metrics

import (
	"context"
	"errors"
	"testing"

	"care-intake-be/pkg/llm/mock"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedProviderCountsOutcomes(t *testing.T) {
	m := New("test")

	ok := InstrumentProvider(mock.NewProvider(`{"a":1}`, nil), m)
	_, err := ok.Generate(WithUseCase(context.Background(), "intake"), "p")
	require.NoError(t, err)

	empty := InstrumentProvider(mock.NewProvider("", nil), m)
	_, _ = empty.Generate(WithUseCase(context.Background(), "faq"), "p")

	failing := InstrumentProvider(mock.NewProvider("", errors.New("boom")), m)
	_, err = failing.Generate(context.Background(), "p")
	assert.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMRequests.WithLabelValues("intake", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMRequests.WithLabelValues("faq", "empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMRequests.WithLabelValues("unknown", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("llm")))
	assert.Equal(t, "mock", ok.Name())
}
