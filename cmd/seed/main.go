package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saran8796/survey-application/internal/config"
	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/repository"
	"github.com/saran8796/survey-application/internal/service"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@example.com"
	demoPassword = "demo-password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		slog.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	surveySvc := service.NewSurveyService(surveyRepo, responseRepo, userRepo, nil)
	responseSvc := service.NewResponseService(responseRepo, surveySvc)

	owner, err := demoUser(ctx, authSvc, userRepo)
	if err != nil {
		slog.Error("failed to prepare demo user", "error", err)
		os.Exit(1)
	}

	survey, err := surveySvc.Create(ctx, owner.ID, model.CreateSurveyRequest{
		Title:       "Team Offsite Feedback",
		Description: "Tell us how the offsite went.",
		Questions: []model.CreateQuestionRequest{
			{Text: "How would you rate the offsite overall?", Type: model.QuestionTypeRating, Required: true},
			{
				Text:     "Which session was most useful?",
				Type:     model.QuestionTypeMultipleChoice,
				Required: true,
				Options: []model.CreateOptionRequest{
					{Text: "Roadmap review"},
					{Text: "Hack day"},
					{Text: "Customer panel"},
				},
			},
			{Text: "Anything we should change next time?", Type: model.QuestionTypeShortAnswer},
		},
	})
	if err != nil {
		slog.Error("failed to create survey", "error", err)
		os.Exit(1)
	}

	rating, session, comment := survey.Questions[0], survey.Questions[1], survey.Questions[2]
	samples := [][]string{
		{"5", "Hack day", "More time for demos"},
		{"4", "Roadmap review", ""},
		{"3", "Hack day", "Venue was too far"},
	}
	for _, s := range samples {
		_, err := responseSvc.Submit(ctx, survey.ID.Hex(), []model.AnswerRequest{
			{QuestionID: rating.ID.Hex(), AnswerText: s[0]},
			{QuestionID: session.ID.Hex(), AnswerText: s[1]},
			{QuestionID: comment.ID.Hex(), AnswerText: s[2]},
		}, nil)
		if err != nil {
			slog.Error("failed to submit sample response", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("seeded survey",
		"surveyId", survey.ID.Hex(),
		"owner", demoUsername,
		"password", demoPassword,
		"responses", len(samples),
	)
}

// demoUser registers the demo account, reusing it when it already exists
func demoUser(ctx context.Context, authSvc *service.AuthService, users repository.UserRepo) (*model.User, error) {
	_, err := authSvc.Register(ctx, model.RegisterRequest{
		Username: demoUsername,
		Email:    demoEmail,
		Password: demoPassword,
		FullName: "Demo Owner",
	})
	if err != nil && !errors.Is(err, service.ErrDuplicateEmail) && !errors.Is(err, service.ErrDuplicateUsername) {
		return nil, err
	}

	user, err := users.GetByEmail(ctx, demoEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("demo user missing after registration")
	}
	return user, nil
}
