package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeShortAnswer    QuestionType = "short-answer"
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeRating         QuestionType = "rating"
)

// Rating scale defaults and the bounds every scale must fit in
const (
	DefaultScaleMin = 1
	DefaultScaleMax = 5
	ScaleLowest     = 0
	ScaleHighest    = 10
)

// ValidScale reports whether min..max is an ascending scale within ScaleLowest..ScaleHighest
func ValidScale(min, max int) bool {
	return min >= ScaleLowest && max <= ScaleHighest && min < max
}

// Valid reports whether t is a known question type
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeShortAnswer, QuestionTypeMultipleChoice, QuestionTypeRating:
		return true
	}
	return false
}

// Question is embedded in a survey and never addressed on its own
type Question struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Text     string             `json:"text" bson:"text"`
	Type     QuestionType       `json:"type" bson:"type"`
	Options  []Option           `json:"options" bson:"options"` // multiple-choice only
	Required bool               `json:"required" bson:"required"`
	// rating only
	ScaleMin int `json:"scaleMin,omitempty" bson:"scaleMin,omitempty"`
	ScaleMax int `json:"scaleMax,omitempty" bson:"scaleMax,omitempty"`
}

// Option is one selectable choice of a multiple-choice question
type Option struct {
	ID   primitive.ObjectID `json:"id" bson:"_id"`
	Text string             `json:"text" bson:"text"`
}

// HasOption reports whether text matches one of the question's options
func (q *Question) HasOption(text string) bool {
	for _, o := range q.Options {
		if o.Text == text {
			return true
		}
	}
	return false
}
