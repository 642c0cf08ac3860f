package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TextAnswer is one submitted short answer
type TextAnswer struct {
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// QuestionResult is the aggregate for one question. Labels/Counts are set for
// multiple-choice and rating questions, TextAnswers for short-answer questions.
type QuestionResult struct {
	QuestionID  primitive.ObjectID `json:"questionId"`
	Text        string             `json:"text"`
	Type        QuestionType       `json:"type"`
	Labels      []string           `json:"labels,omitempty"`
	Counts      []int              `json:"counts,omitempty"`
	TextAnswers []TextAnswer       `json:"textAnswers,omitempty"`
}

// SurveyResults holds per-question aggregates for a survey
type SurveyResults struct {
	SurveyID       primitive.ObjectID `json:"surveyId"`
	Title          string             `json:"title"`
	TotalResponses int                `json:"totalResponses"`
	Questions      []QuestionResult   `json:"questions"`
}
