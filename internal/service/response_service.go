package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/repository"
)

// ResponseService accepts submissions and serves them back to owners or the public
type ResponseService struct {
	responseRepo repository.ResponseRepo
	surveySvc    *SurveyService
	broadcaster  Broadcaster
	now          func() time.Time
}

// NewResponseService creates a new response service
func NewResponseService(responseRepo repository.ResponseRepo, surveySvc *SurveyService) *ResponseService {
	return &ResponseService{
		responseRepo: responseRepo,
		surveySvc:    surveySvc,
		now:          time.Now,
	}
}

// SetBroadcaster sets the live results broadcaster
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates answers against the survey and stores them. submitterID is nil
// for anonymous submissions. Repeated submissions are stored as separate responses.
func (s *ResponseService) Submit(ctx context.Context, surveyID string, answers []model.AnswerRequest, submitterID *primitive.ObjectID) (*model.Response, error) {
	survey, err := s.surveySvc.Load(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	validated, verr := validateAnswers(survey, answers)
	if verr != nil {
		return nil, verr
	}

	response := &model.Response{
		SurveyID:  survey.ID,
		UserID:    submitterID,
		Answers:   validated,
		CreatedAt: s.now(),
	}
	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSurvey(survey.ID.Hex(), EventResponseSubmitted, response)
	}
	return response, nil
}

// validateAnswers checks every answer and every required question before failing
func validateAnswers(survey *model.Survey, in []model.AnswerRequest) ([]model.Answer, *ValidationError) {
	verr := &ValidationError{}
	answers := make([]model.Answer, 0, len(in))
	byQuestion := make(map[primitive.ObjectID]model.Answer, len(in))

	for _, a := range in {
		qid, err := primitive.ObjectIDFromHex(a.QuestionID)
		if err != nil {
			verr.addf("unknown question %q", a.QuestionID)
			continue
		}
		q, ok := survey.Question(qid)
		if !ok {
			verr.addf("unknown question %q", a.QuestionID)
			continue
		}
		if _, dup := byQuestion[qid]; dup {
			verr.addf("question %q answered more than once", q.Text)
			continue
		}

		answer := model.Answer{QuestionID: qid, AnswerText: strings.TrimSpace(a.AnswerText)}
		byQuestion[qid] = answer
		answers = append(answers, answer)

		if answer.Blank() {
			continue
		}
		switch q.Type {
		case model.QuestionTypeMultipleChoice:
			if !q.HasOption(answer.AnswerText) {
				verr.addf("answer to %q must be one of its options", q.Text)
			}
		case model.QuestionTypeRating:
			if _, ok := ratingValue(q, answer.AnswerText); !ok {
				verr.addf("answer to %q must be a whole number from %d to %d", q.Text, q.ScaleMin, q.ScaleMax)
			}
		}
	}

	for _, q := range survey.Questions {
		if !q.Required {
			continue
		}
		if a, ok := byQuestion[q.ID]; !ok || a.Blank() {
			verr.Missing = append(verr.Missing, q.Text)
		}
	}

	if !verr.empty() {
		return nil, verr
	}
	return answers, nil
}

// ratingValue parses a rating answer and checks it against the question's scale
func ratingValue(q *model.Question, text string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || v < q.ScaleMin || v > q.ScaleMax {
		return 0, false
	}
	return v, true
}

// List returns all responses of an owned survey newest first
func (s *ResponseService) List(ctx context.Context, surveyID string, requesterID primitive.ObjectID) ([]*model.Response, error) {
	_, responses, err := s.owned(ctx, surveyID, requesterID)
	return responses, err
}

// ListPublic returns a survey's responses when its owner has made results public
func (s *ResponseService) ListPublic(ctx context.Context, surveyID string) ([]*model.Response, error) {
	_, responses, err := s.public(ctx, surveyID)
	return responses, err
}

func (s *ResponseService) owned(ctx context.Context, surveyID string, requesterID primitive.ObjectID) (*model.Survey, []*model.Response, error) {
	survey, err := s.surveySvc.Owned(ctx, surveyID, requesterID)
	if err != nil {
		return nil, nil, err
	}
	responses, err := s.responseRepo.ListBySurvey(ctx, survey.ID)
	if err != nil {
		return nil, nil, err
	}
	return survey, responses, nil
}

func (s *ResponseService) public(ctx context.Context, surveyID string) (*model.Survey, []*model.Response, error) {
	survey, err := s.surveySvc.Load(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	if !survey.IsPublicResults {
		return nil, nil, ErrPublicResultsDisabled
	}
	responses, err := s.responseRepo.ListBySurvey(ctx, survey.ID)
	if err != nil {
		return nil, nil, err
	}
	return survey, responses, nil
}
