package service

// Event types pushed to live results subscribers
const (
	EventResponseSubmitted = "response_submitted"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSurvey(surveyID string, msgType string, payload interface{})
}
