package dto

import "care-intake-be/internal/entity"

type AskFAQRequest struct {
	Question string `json:"question" validate:"required,notblank"`
}

type FAQAnswerResponse struct {
	Answer       string `json:"answer"`
	MatchedFaqId *int   `json:"matchedFaqId"`
	Matched      bool   `json:"matched"`
}

type FAQEntriesResponse struct {
	Entries []entity.FAQEntry `json:"entries"`
}

type FAQCategoryDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type FAQCategoriesResponse struct {
	Categories []FAQCategoryDTO `json:"categories"`
}

type QueryLogEntryDTO struct {
	Query        string `json:"query"`
	Matched      bool   `json:"matched"`
	MatchedFaqId *int   `json:"matchedFaqId"`
	Type         string `json:"type"`
	Timestamp    string `json:"timestamp"`
}

type LogQueryResponse struct {
	Success bool `json:"success"`
}

type QueryLogListResponse struct {
	Logs []QueryLogEntryDTO `json:"logs"`
}
