package specification

import "care-intake-be/internal/entity"

// ByLogType filters by entry type
type ByLogType struct {
	Type entity.QueryLogType
}

func (s ByLogType) IsSatisfiedBy(entry entity.QueryLogEntry) bool {
	return entry.Type == s.Type
}

// ByMatched filters by the matched flag
type ByMatched struct {
	Matched bool
}

func (s ByMatched) IsSatisfiedBy(entry entity.QueryLogEntry) bool {
	return entry.Matched == s.Matched
}

// ByFaqId filters entries that reference one FAQ entry
type ByFaqId struct {
	FaqId int
}

func (s ByFaqId) IsSatisfiedBy(entry entity.QueryLogEntry) bool {
	return entry.MatchedFaqId != nil && *entry.MatchedFaqId == s.FaqId
}

// SatisfiesAll reports whether entry passes every spec
func SatisfiesAll(entry entity.QueryLogEntry, specs ...QueryLogSpecification) bool {
	for _, spec := range specs {
		if !spec.IsSatisfiedBy(entry) {
			return false
		}
	}
	return true
}
