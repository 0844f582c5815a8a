package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"care-intake-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 89_000_000, time.FixedZone("IST", 5*3600+1800))
	assert.Equal(t, "2026-03-03T23:36:07.089Z", FormatTimestamp(ts))
}

func TestQueryLogListShape(t *testing.T) {
	m := NewFAQMapper()

	empty, err := json.Marshal(m.ToQueryLogList(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"logs":[]}`, string(empty))

	id := 13
	out, err := json.Marshal(m.ToQueryLogList([]entity.QueryLogEntry{
		{Query: "ride?", Matched: true, MatchedFaqId: &id, Type: entity.QueryLogTypeReport, Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{Query: "cure?", Type: entity.QueryLogTypeUnanswered, Timestamp: time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC)},
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"logs":[
		{"query":"ride?","matched":true,"matchedFaqId":13,"type":"report","timestamp":"2026-01-02T03:04:05.000Z"},
		{"query":"cure?","matched":false,"matchedFaqId":null,"type":"unanswered","timestamp":"2026-01-02T03:04:06.000Z"}
	]}`, string(out))
}
