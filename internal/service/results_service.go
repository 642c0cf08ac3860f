package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saran8796/survey-application/internal/model"
)

// ResultsService derives chart data and exports from stored responses.
// Nothing is precomputed: every call recounts the full response set.
type ResultsService struct {
	responseSvc *ResponseService
}

// NewResultsService creates a new results service
func NewResultsService(responseSvc *ResponseService) *ResultsService {
	return &ResultsService{responseSvc: responseSvc}
}

// Results aggregates an owned survey's responses
func (s *ResultsService) Results(ctx context.Context, surveyID string, requesterID primitive.ObjectID) (*model.SurveyResults, error) {
	survey, responses, err := s.responseSvc.owned(ctx, surveyID, requesterID)
	if err != nil {
		return nil, err
	}
	return AggregateSurvey(survey, responses), nil
}

// PublicResults aggregates a survey whose results were made public
func (s *ResultsService) PublicResults(ctx context.Context, surveyID string) (*model.SurveyResults, error) {
	survey, responses, err := s.responseSvc.public(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return AggregateSurvey(survey, responses), nil
}

// ExportCSV renders an owned survey's responses, one row per response and one
// column per question in survey order.
func (s *ResultsService) ExportCSV(ctx context.Context, surveyID string, requesterID primitive.ObjectID) (*model.Survey, []byte, error) {
	survey, responses, err := s.responseSvc.owned(ctx, surveyID, requesterID)
	if err != nil {
		return nil, nil, err
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"response_id", "submitted_at", "user_id"}
	for _, q := range survey.Questions {
		header = append(header, q.Text)
	}
	if err := w.Write(header); err != nil {
		return nil, nil, err
	}

	for _, r := range responses {
		row := make([]string, 0, len(header))
		userID := ""
		if r.UserID != nil {
			userID = r.UserID.Hex()
		}
		row = append(row, r.ID.Hex(), r.CreatedAt.UTC().Format(time.RFC3339), userID)
		for _, q := range survey.Questions {
			a, _ := r.AnswerFor(q.ID)
			row = append(row, a.AnswerText)
		}
		if err := w.Write(row); err != nil {
			return nil, nil, err
		}
	}
	w.Flush()
	return survey, buf.Bytes(), w.Error()
}

// AggregateSurvey aggregates every question of a survey
func AggregateSurvey(survey *model.Survey, responses []*model.Response) *model.SurveyResults {
	results := &model.SurveyResults{
		SurveyID:       survey.ID,
		Title:          survey.Title,
		TotalResponses: len(responses),
		Questions:      make([]model.QuestionResult, 0, len(survey.Questions)),
	}
	for i := range survey.Questions {
		results.Questions = append(results.Questions, aggregate(&survey.Questions[i], responses))
	}
	return results
}

// AggregateForQuestion tallies one question. Options and rating values nobody
// picked are still listed with a zero count.
func AggregateForQuestion(survey *model.Survey, responses []*model.Response, questionID primitive.ObjectID) (model.QuestionResult, error) {
	q, ok := survey.Question(questionID)
	if !ok {
		return model.QuestionResult{}, ErrNotFound
	}
	return aggregate(q, responses), nil
}

func aggregate(q *model.Question, responses []*model.Response) model.QuestionResult {
	result := model.QuestionResult{
		QuestionID: q.ID,
		Text:       q.Text,
		Type:       q.Type,
	}

	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		index := make(map[string]int, len(q.Options))
		result.Labels = make([]string, 0, len(q.Options))
		for i, o := range q.Options {
			index[o.Text] = i
			result.Labels = append(result.Labels, o.Text)
		}
		result.Counts = make([]int, len(q.Options))
		for _, r := range responses {
			a, ok := r.AnswerFor(q.ID)
			if !ok {
				continue
			}
			if i, ok := index[a.AnswerText]; ok {
				result.Counts[i]++
			}
		}

	case model.QuestionTypeRating:
		// scales outside the allowed bounds are not tallied
		if !model.ValidScale(q.ScaleMin, q.ScaleMax) {
			break
		}
		for v := q.ScaleMin; v <= q.ScaleMax; v++ {
			result.Labels = append(result.Labels, strconv.Itoa(v))
		}
		result.Counts = make([]int, len(result.Labels))
		for _, r := range responses {
			a, ok := r.AnswerFor(q.ID)
			if !ok {
				continue
			}
			if v, ok := ratingValue(q, a.AnswerText); ok {
				result.Counts[v-q.ScaleMin]++
			}
		}

	default:
		result.TextAnswers = []model.TextAnswer{}
		for _, r := range responses {
			a, ok := r.AnswerFor(q.ID)
			if !ok || a.Blank() {
				continue
			}
			result.TextAnswers = append(result.TextAnswers, model.TextAnswer{
				Text:        a.AnswerText,
				SubmittedAt: r.CreatedAt,
			})
		}
	}
	return result
}
