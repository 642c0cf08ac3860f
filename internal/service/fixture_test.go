package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/testutil"
)

type fixture struct {
	users     *testutil.UserStore
	surveys   *testutil.SurveyStore
	responses *testutil.ResponseStore
	cache     *testutil.SurveyCache

	auth    *AuthService
	survey  *SurveyService
	resp    *ResponseService
	results *ResultsService

	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:     testutil.NewUserStore(),
		surveys:   testutil.NewSurveyStore(),
		responses: testutil.NewResponseStore(),
		cache:     testutil.NewSurveyCache(),
		clock:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.auth = NewAuthService(f.users, "test-secret", time.Hour)
	f.survey = NewSurveyService(f.surveys, f.responses, f.users, f.cache)
	f.resp = NewResponseService(f.responses, f.survey)
	f.results = NewResultsService(f.resp)

	// every call advances the clock so createdAt ordering is deterministic
	tick := func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	f.auth.now = tick
	f.survey.now = tick
	f.resp.now = tick
	return f
}

// register creates a user and returns its id
func (f *fixture) register(t *testing.T, username string) primitive.ObjectID {
	t.Helper()
	tok, err := f.auth.Register(context.Background(), model.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "Secret1!",
		FullName: username + " Tester",
	})
	require.NoError(t, err)
	id, err := f.auth.VerifyToken(tok.Token)
	require.NoError(t, err)
	return id
}

func (f *fixture) createSurvey(t *testing.T, owner primitive.ObjectID, questions ...model.CreateQuestionRequest) *model.Survey {
	t.Helper()
	s, err := f.survey.Create(context.Background(), owner, model.CreateSurveyRequest{
		Title:     "Customer feedback",
		Questions: questions,
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) submit(t *testing.T, s *model.Survey, texts ...string) *model.Response {
	t.Helper()
	answers := make([]model.AnswerRequest, 0, len(texts))
	for i, text := range texts {
		answers = append(answers, model.AnswerRequest{QuestionID: s.Questions[i].ID.Hex(), AnswerText: text})
	}
	r, err := f.resp.Submit(context.Background(), s.ID.Hex(), answers, nil)
	require.NoError(t, err)
	return r
}

func choice(text string, required bool, options ...string) model.CreateQuestionRequest {
	q := model.CreateQuestionRequest{Text: text, Type: model.QuestionTypeMultipleChoice, Required: required}
	for _, o := range options {
		q.Options = append(q.Options, model.CreateOptionRequest{Text: o})
	}
	return q
}

func shortAnswer(text string, required bool) model.CreateQuestionRequest {
	return model.CreateQuestionRequest{Text: text, Type: model.QuestionTypeShortAnswer, Required: required}
}

func rating(text string, required bool) model.CreateQuestionRequest {
	return model.CreateQuestionRequest{Text: text, Type: model.QuestionTypeRating, Required: required}
}

type recordedEvent struct {
	surveyID string
	msgType  string
	payload  interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *recordingBroadcaster) BroadcastToSurvey(surveyID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{surveyID, msgType, payload})
}
