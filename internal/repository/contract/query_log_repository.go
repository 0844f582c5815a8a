package contract

import (
	"care-intake-be/internal/entity"
	"care-intake-be/internal/repository/specification"
)

// QueryLogRepository is an append-only log of FAQ query outcomes.
// Implementations must make Append atomic under concurrent callers.
type QueryLogRepository interface {
	Append(entry entity.QueryLogEntry)
	FindAll(specs ...specification.QueryLogSpecification) []entity.QueryLogEntry
	Count() int
}
