package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saran8796/survey-application/internal/model"
)

func TestAggregateForQuestion_MultipleChoice(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner")
	s := f.createSurvey(t, owner, choice("Pick", false, "A", "B", "C"))
	f.submit(t, s, "A")
	f.submit(t, s, "A")
	f.submit(t, s, "B")

	responses, err := f.resp.List(context.Background(), s.ID.Hex(), owner)
	require.NoError(t, err)

	res, err := AggregateForQuestion(s, responses, s.Questions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, res.Labels)
	assert.Equal(t, []int{2, 1, 0}, res.Counts)
	assert.Nil(t, res.TextAnswers)
}

func TestAggregateForQuestion_IgnoresStaleOptions(t *testing.T) {
	q := model.Question{ID: primitive.NewObjectID(), Text: "Pick", Type: model.QuestionTypeMultipleChoice,
		Options: []model.Option{{ID: primitive.NewObjectID(), Text: "A"}, {ID: primitive.NewObjectID(), Text: "B"}}}
	s := &model.Survey{ID: primitive.NewObjectID(), Questions: []model.Question{q}}
	responses := []*model.Response{
		{Answers: []model.Answer{{QuestionID: q.ID, AnswerText: "A"}}},
		{Answers: []model.Answer{{QuestionID: q.ID, AnswerText: "Z"}}},
		{Answers: []model.Answer{}},
	}

	res, err := AggregateForQuestion(s, responses, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, res.Counts)
}

func TestAggregateForQuestion_Rating(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner")
	s := f.createSurvey(t, owner, rating("Score", false))
	for _, v := range []string{"5", "5", "1", "3", ""} {
		f.submit(t, s, v)
	}
	responses, err := f.resp.List(context.Background(), s.ID.Hex(), owner)
	require.NoError(t, err)

	res, err := AggregateForQuestion(s, responses, s.Questions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, res.Labels)
	assert.Equal(t, []int{1, 0, 1, 0, 2}, res.Counts)
}

func TestAggregateForQuestion_RatingOutsideBounds(t *testing.T) {
	q := model.Question{ID: primitive.NewObjectID(), Text: "Score", Type: model.QuestionTypeRating, ScaleMin: 1, ScaleMax: math.MaxInt}
	s := &model.Survey{ID: primitive.NewObjectID(), Questions: []model.Question{q}}
	responses := []*model.Response{{Answers: []model.Answer{{QuestionID: q.ID, AnswerText: "3"}}}}

	res, err := AggregateForQuestion(s, responses, q.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Labels)
	assert.Empty(t, res.Counts)
}

func TestAggregateForQuestion_ShortAnswer(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner")
	s := f.createSurvey(t, owner, shortAnswer("Why?", false))
	f.submit(t, s, "because")
	f.submit(t, s, "")
	last := f.submit(t, s, "no reason")

	responses, err := f.resp.List(context.Background(), s.ID.Hex(), owner)
	require.NoError(t, err)

	res, err := AggregateForQuestion(s, responses, s.Questions[0].ID)
	require.NoError(t, err)
	require.Len(t, res.TextAnswers, 2)
	assert.Equal(t, "no reason", res.TextAnswers[0].Text)
	assert.Equal(t, last.CreatedAt, res.TextAnswers[0].SubmittedAt)
	assert.Equal(t, "because", res.TextAnswers[1].Text)
	assert.Nil(t, res.Counts)
}

func TestAggregateForQuestion_UnknownQuestion(t *testing.T) {
	s := &model.Survey{ID: primitive.NewObjectID()}

	_, err := AggregateForQuestion(s, nil, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResultsService_Gating(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner")
	other := f.register(t, "other")
	s := f.createSurvey(t, owner, choice("Pick", true, "A", "B"), shortAnswer("Why?", false))
	f.submit(t, s, "B", "fine")
	ctx := context.Background()

	res, err := f.results.Results(ctx, s.ID.Hex(), owner)
	require.NoError(t, err)
	assert.Equal(t, s.ID, res.SurveyID)
	assert.Equal(t, s.Title, res.Title)
	assert.Equal(t, 1, res.TotalResponses)
	require.Len(t, res.Questions, 2)
	assert.Equal(t, []int{0, 1}, res.Questions[0].Counts)

	_, err = f.results.Results(ctx, s.ID.Hex(), other)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.results.PublicResults(ctx, s.ID.Hex())
	assert.ErrorIs(t, err, ErrPublicResultsDisabled)

	_, err = f.survey.TogglePublicResults(ctx, s.ID.Hex(), owner)
	require.NoError(t, err)
	pub, err := f.results.PublicResults(ctx, s.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, res.Questions, pub.Questions)
}

func TestResultsService_ExportCSV(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner")
	other := f.register(t, "other")
	s := f.createSurvey(t, owner, shortAnswer("Name, please", true), rating("Score", false))

	anon := f.submit(t, s, "Ann")
	signed, err := f.resp.Submit(context.Background(), s.ID.Hex(), []model.AnswerRequest{
		{QuestionID: s.Questions[0].ID.Hex(), AnswerText: `Bob "B"`},
		{QuestionID: s.Questions[1].ID.Hex(), AnswerText: "4"},
	}, &owner)
	require.NoError(t, err)

	_, _, err = f.results.ExportCSV(context.Background(), s.ID.Hex(), other)
	assert.ErrorIs(t, err, ErrForbidden)

	survey, data, err := f.results.ExportCSV(context.Background(), s.ID.Hex(), owner)
	require.NoError(t, err)
	assert.Equal(t, s.ID, survey.ID)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"response_id", "submitted_at", "user_id", "Name, please", "Score"}, rows[0])
	assert.Equal(t, []string{signed.ID.Hex(), signed.CreatedAt.UTC().Format(time.RFC3339), owner.Hex(), `Bob "B"`, "4"}, rows[1])
	assert.Equal(t, []string{anon.ID.Hex(), anon.CreatedAt.UTC().Format(time.RFC3339), "", "Ann", ""}, rows[2])
}
