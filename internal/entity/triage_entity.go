// internal\entity\triage_entity.go
package entity

import "strings"

type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// ParseUrgency canonicalises a model-supplied urgency label, case-insensitively.
func ParseUrgency(s string) (Urgency, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return UrgencyLow, true
	case "medium":
		return UrgencyMedium, true
	case "high":
		return UrgencyHigh, true
	}
	return "", false
}

type SupportRequest struct {
	Name        string
	CancerType  string
	Role        string
	SupportType string
	Message     string
}

type TriageResult struct {
	Summary            string
	Urgency            Urgency
	UrgencyReason      string
	SuggestedNextSteps string
}
