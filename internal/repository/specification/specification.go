package specification

import "care-intake-be/internal/entity"

// QueryLogSpecification selects query log entries held in memory
type QueryLogSpecification interface {
	IsSatisfiedBy(entry entity.QueryLogEntry) bool
}
