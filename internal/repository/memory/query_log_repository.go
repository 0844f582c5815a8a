package memory

import (
	"sync"

	"care-intake-be/internal/entity"
	"care-intake-be/internal/repository/contract"
	"care-intake-be/internal/repository/specification"
)

// QueryLogRepository keeps entries for the process lifetime. There is no eviction.
type QueryLogRepository struct {
	mu      sync.RWMutex
	entries []entity.QueryLogEntry
}

var _ contract.QueryLogRepository = &QueryLogRepository{}

func NewQueryLogRepository() *QueryLogRepository {
	return &QueryLogRepository{}
}

func (r *QueryLogRepository) Append(entry entity.QueryLogEntry) {
	if entry.MatchedFaqId != nil {
		id := *entry.MatchedFaqId
		entry.MatchedFaqId = &id
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
}

// FindAll returns a snapshot in insertion order; never nil.
func (r *QueryLogRepository) FindAll(specs ...specification.QueryLogSpecification) []entity.QueryLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.QueryLogEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if specification.SatisfiesAll(e, specs...) {
			out = append(out, e)
		}
	}
	return out
}

func (r *QueryLogRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
