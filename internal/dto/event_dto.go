package dto

// EventMessage is the payload carried on the in-process bus and pushed to stream clients.
type EventMessage struct {
	Type       string                 `json:"type"`
	OccurredAt string                 `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}
