package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer is one question's answer inside a response
type Answer struct {
	QuestionID primitive.ObjectID `json:"questionId" bson:"questionId"`
	AnswerText string             `json:"answerText" bson:"answerText"`
}

// Blank reports whether the answer carries no text
func (a Answer) Blank() bool {
	return strings.TrimSpace(a.AnswerText) == ""
}

// Response is one submission to a survey. UserID is nil for anonymous submissions.
type Response struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	SurveyID  primitive.ObjectID  `json:"survey" bson:"survey"`
	UserID    *primitive.ObjectID `json:"user,omitempty" bson:"user,omitempty"`
	Answers   []Answer            `json:"answers" bson:"answers"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}

// AnswerFor returns the answer to questionID, if any
func (r *Response) AnswerFor(questionID primitive.ObjectID) (Answer, bool) {
	for _, a := range r.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}

// SubmitResponseRequest is the request body for answering a survey
type SubmitResponseRequest struct {
	Answers []AnswerRequest `json:"answers"`
}

// AnswerRequest is one submitted answer; QuestionID is the question's hex id
type AnswerRequest struct {
	QuestionID string `json:"questionId"`
	AnswerText string `json:"answerText"`
}
