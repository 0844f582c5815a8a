package mapper

import (
	"care-intake-be/internal/dto"
	"care-intake-be/internal/entity"
)

type TriageMapper struct{}

func NewTriageMapper() *TriageMapper {
	return &TriageMapper{}
}

func (m *TriageMapper) ToSupportRequest(req *dto.AnalyzeRequest) entity.SupportRequest {
	return entity.SupportRequest{
		Name:        req.Name,
		CancerType:  req.CancerType,
		Role:        req.Role,
		SupportType: req.SupportType,
		Message:     req.Message,
	}
}

func (m *TriageMapper) ToResponse(result *entity.TriageResult, source string) *dto.AnalyzeResponse {
	return &dto.AnalyzeResponse{
		Success: true,
		Data: dto.TriageResultDTO{
			Summary:            result.Summary,
			Urgency:            string(result.Urgency),
			UrgencyReason:      result.UrgencyReason,
			SuggestedNextSteps: result.SuggestedNextSteps,
		},
		Source: source,
	}
}
