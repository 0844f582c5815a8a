package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"care-intake-be/internal/entity"
	"care-intake-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryLogRepositoryConcurrentAppend(t *testing.T) {
	repo := NewQueryLogRepository()

	const n = 500
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo.Append(entity.QueryLogEntry{
				Query:     fmt.Sprintf("q-%d", i),
				Type:      entity.QueryLogTypeUnanswered,
				Timestamp: time.Now(),
			})
		}(i)
	}
	wg.Wait()

	entries := repo.FindAll()
	require.Len(t, entries, n)
	assert.Equal(t, n, repo.Count())

	seen := make(map[string]bool, n)
	for _, e := range entries {
		assert.False(t, seen[e.Query], "duplicate entry %s", e.Query)
		seen[e.Query] = true
	}
	assert.Len(t, seen, n)
}

func TestQueryLogRepositoryOrderAndFilter(t *testing.T) {
	repo := NewQueryLogRepository()
	assert.NotNil(t, repo.FindAll())
	assert.Empty(t, repo.FindAll())

	id := 13
	repo.Append(entity.QueryLogEntry{Query: "first", Type: entity.QueryLogTypeUnanswered})
	repo.Append(entity.QueryLogEntry{Query: "second", Type: entity.QueryLogTypeReport, Matched: true, MatchedFaqId: &id})
	repo.Append(entity.QueryLogEntry{Query: "third", Type: entity.QueryLogTypeUnanswered})

	all := repo.FindAll()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{all[0].Query, all[1].Query, all[2].Query})

	reports := repo.FindAll(specification.ByLogType{Type: entity.QueryLogTypeReport})
	require.Len(t, reports, 1)
	assert.Equal(t, "second", reports[0].Query)

	assert.Len(t, repo.FindAll(specification.ByMatched{Matched: false}), 2)
	assert.Len(t, repo.FindAll(specification.ByFaqId{FaqId: 13}, specification.ByMatched{Matched: true}), 1)
	assert.Empty(t, repo.FindAll(specification.ByFaqId{FaqId: 2}))
}

func TestQueryLogRepositoryCopiesFaqId(t *testing.T) {
	repo := NewQueryLogRepository()
	id := 4
	repo.Append(entity.QueryLogEntry{Query: "q", MatchedFaqId: &id})
	id = 99

	entries := repo.FindAll()
	require.NotNil(t, entries[0].MatchedFaqId)
	assert.Equal(t, 4, *entries[0].MatchedFaqId)
}
