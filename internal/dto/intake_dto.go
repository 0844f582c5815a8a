package dto

type AnalyzeRequest struct {
	Name        string `json:"name" validate:"required,notblank"`
	CancerType  string `json:"cancerType"`
	Role        string `json:"role" validate:"required,notblank"`
	SupportType string `json:"supportType" validate:"required,notblank"`
	Message     string `json:"message" validate:"required,notblank"`
}

type TriageResultDTO struct {
	Summary            string `json:"summary"`
	Urgency            string `json:"urgency"`
	UrgencyReason      string `json:"urgencyReason"`
	SuggestedNextSteps string `json:"suggestedNextSteps"`
}

type AnalyzeResponse struct {
	Success bool            `json:"success"`
	Data    TriageResultDTO `json:"data"`
	Source  string          `json:"source"`
}

type IntakeOptionsResponse struct {
	Roles        []string `json:"roles"`
	SupportTypes []string `json:"supportTypes"`
	CancerTypes  []string `json:"cancerTypes"`
}
