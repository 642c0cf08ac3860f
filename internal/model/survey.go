package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Survey is an owned, ordered collection of questions
type Survey struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user" bson:"user"`
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	Questions       []Question         `json:"questions" bson:"questions"`
	IsPublicResults bool               `json:"isPublicResults" bson:"isPublicResults"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// OwnedBy reports whether userID is the survey owner
func (s *Survey) OwnedBy(userID primitive.ObjectID) bool {
	return !userID.IsZero() && s.UserID == userID
}

// Question finds an embedded question by id
func (s *Survey) Question(id primitive.ObjectID) (*Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], true
		}
	}
	return nil, false
}

// OwnerSummary is the public slice of a user shown next to a survey listing
type OwnerSummary struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	FullName string             `json:"fullName,omitempty"`
}

// SurveySummary is a survey annotated for listings
type SurveySummary struct {
	Survey
	Owner         *OwnerSummary `json:"owner,omitempty"`
	ResponseCount int64         `json:"responseCount"`
}

// CreateSurveyRequest is the request body for creating a survey
type CreateSurveyRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Questions   []CreateQuestionRequest `json:"questions" validate:"dive"`
}

// CreateQuestionRequest describes one question of a new survey
type CreateQuestionRequest struct {
	Text     string                `json:"text"`
	Type     QuestionType          `json:"type"`
	Options  []CreateOptionRequest `json:"options"`
	Required bool                  `json:"required"`
	ScaleMin int                   `json:"scaleMin"`
	ScaleMax int                   `json:"scaleMax"`
}

// CreateOptionRequest describes one option of a new multiple-choice question
type CreateOptionRequest struct {
	Text string `json:"text"`
}
