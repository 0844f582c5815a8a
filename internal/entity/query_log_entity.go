// internal\entity\query_log_entity.go
package entity

import "time"

type QueryLogType string

const (
	QueryLogTypeUnanswered QueryLogType = "unanswered"
	QueryLogTypeReport     QueryLogType = "report"
)

// ParseQueryLogType maps client input onto the known types; anything else is "unanswered".
func ParseQueryLogType(s string) QueryLogType {
	if QueryLogType(s) == QueryLogTypeReport {
		return QueryLogTypeReport
	}
	return QueryLogTypeUnanswered
}

type QueryLogEntry struct {
	Query        string
	Matched      bool
	MatchedFaqId *int
	Type         QueryLogType
	Timestamp    time.Time
}
