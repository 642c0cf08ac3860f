package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saran8796/survey-application/internal/cache"
	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/repository"
)

// SurveyService handles survey definitions and owner-only mutations
type SurveyService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	userRepo     repository.UserRepo
	cache        cache.SurveyCache
	now          func() time.Time
}

// NewSurveyService creates a new survey service. A nil cache disables caching.
func NewSurveyService(surveyRepo repository.SurveyRepo, responseRepo repository.ResponseRepo, userRepo repository.UserRepo, surveyCache cache.SurveyCache) *SurveyService {
	if surveyCache == nil {
		surveyCache = cache.NopSurveyCache{}
	}
	return &SurveyService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
		cache:        surveyCache,
		now:          time.Now,
	}
}

// Create validates and stores a new survey owned by ownerID
func (s *SurveyService) Create(ctx context.Context, ownerID primitive.ObjectID, req model.CreateSurveyRequest) (*model.Survey, error) {
	survey, verr := buildSurvey(req)
	if verr != nil {
		return nil, verr
	}
	survey.UserID = ownerID
	survey.CreatedAt = s.now()

	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// buildSurvey turns a request into a survey with fresh ids for every embedded element
func buildSurvey(req model.CreateSurveyRequest) (*model.Survey, *ValidationError) {
	verr := &ValidationError{}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		verr.addf("title is required")
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i, in := range req.Questions {
		q := model.Question{
			ID:       primitive.NewObjectID(),
			Text:     strings.TrimSpace(in.Text),
			Type:     in.Type,
			Options:  []model.Option{},
			Required: in.Required,
		}
		if q.Text == "" {
			verr.addf("question %d: text is required", i+1)
		}
		if !q.Type.Valid() {
			verr.addf("question %d: unknown type %q", i+1, in.Type)
		}

		switch q.Type {
		case model.QuestionTypeMultipleChoice:
			for j, opt := range in.Options {
				text := strings.TrimSpace(opt.Text)
				if text == "" {
					verr.addf("question %d option %d: text is required", i+1, j+1)
					continue
				}
				q.Options = append(q.Options, model.Option{ID: primitive.NewObjectID(), Text: text})
			}
		case model.QuestionTypeRating:
			q.ScaleMin, q.ScaleMax = in.ScaleMin, in.ScaleMax
			if q.ScaleMin == 0 && q.ScaleMax == 0 {
				q.ScaleMin, q.ScaleMax = model.DefaultScaleMin, model.DefaultScaleMax
			}
			if !model.ValidScale(q.ScaleMin, q.ScaleMax) {
				verr.addf("question %d: scale must run upwards within %d..%d", i+1, model.ScaleLowest, model.ScaleHighest)
			}
		}
		questions = append(questions, q)
	}

	if !verr.empty() {
		return nil, verr
	}
	return &model.Survey{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Questions:   questions,
	}, nil
}

// List returns every survey newest first, annotated with owner and response count
func (s *SurveyService) List(ctx context.Context) ([]*model.SurveySummary, error) {
	surveys, err := s.surveyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, surveys)
}

// ListByOwner returns the surveys created by ownerID newest first
func (s *SurveyService) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*model.SurveySummary, error) {
	surveys, err := s.surveyRepo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, surveys)
}

func (s *SurveyService) summarize(ctx context.Context, surveys []*model.Survey) ([]*model.SurveySummary, error) {
	ids := make([]primitive.ObjectID, 0, len(surveys))
	ownerIDs := make([]primitive.ObjectID, 0, len(surveys))
	seen := make(map[primitive.ObjectID]bool)
	for _, sv := range surveys {
		ids = append(ids, sv.ID)
		if !seen[sv.UserID] {
			seen[sv.UserID] = true
			ownerIDs = append(ownerIDs, sv.UserID)
		}
	}

	counts, err := s.responseRepo.CountBySurveys(ctx, ids)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	owners := make(map[primitive.ObjectID]*model.OwnerSummary, len(users))
	for _, u := range users {
		owners[u.ID] = &model.OwnerSummary{ID: u.ID, Username: u.Username, FullName: u.FullName}
	}

	summaries := make([]*model.SurveySummary, 0, len(surveys))
	for _, sv := range surveys {
		summaries = append(summaries, &model.SurveySummary{
			Survey:        *sv,
			Owner:         owners[sv.UserID],
			ResponseCount: counts[sv.ID],
		})
	}
	return summaries, nil
}

// Get returns a survey by id, served from the cache when possible. Anyone may
// read a survey definition.
func (s *SurveyService) Get(ctx context.Context, id string) (*model.Survey, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if cached, err := s.cache.Get(ctx, oid.Hex()); err != nil {
		slog.Warn("survey cache read failed", "surveyId", id, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	survey, err := s.surveyRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrNotFound
	}

	if err := s.cache.Set(ctx, survey); err != nil {
		slog.Warn("survey cache write failed", "surveyId", id, "error", err)
	}
	return survey, nil
}

// Load reads a survey straight from the store. Access checks and mutations use
// it so they never act on a cached copy.
func (s *SurveyService) Load(ctx context.Context, id string) (*model.Survey, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	survey, err := s.surveyRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrNotFound
	}
	return survey, nil
}

// Owned returns the stored survey only if requesterID owns it
func (s *SurveyService) Owned(ctx context.Context, id string, requesterID primitive.ObjectID) (*model.Survey, error) {
	survey, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !survey.OwnedBy(requesterID) {
		return nil, ErrForbidden
	}
	return survey, nil
}

// Delete removes an owned survey and then its responses
func (s *SurveyService) Delete(ctx context.Context, id string, requesterID primitive.ObjectID) error {
	survey, err := s.Owned(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := s.surveyRepo.Delete(ctx, survey.ID); err != nil {
		return err
	}
	s.invalidate(ctx, survey.ID)

	// not transactional with the survey delete; a failure leaves unreachable responses
	n, err := s.responseRepo.DeleteBySurvey(ctx, survey.ID)
	if err != nil {
		slog.Error("response cascade failed", "surveyId", id, "error", err)
		return nil
	}
	slog.Info("survey deleted", "surveyId", id, "responsesRemoved", n)
	return nil
}

// TogglePublicResults flips whether anyone may read the survey's results
func (s *SurveyService) TogglePublicResults(ctx context.Context, id string, requesterID primitive.ObjectID) (*model.Survey, error) {
	survey, err := s.Owned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	survey.IsPublicResults = !survey.IsPublicResults
	if err := s.surveyRepo.SetPublicResults(ctx, survey.ID, survey.IsPublicResults); err != nil {
		return nil, err
	}
	s.invalidate(ctx, survey.ID)
	return survey, nil
}

func (s *SurveyService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.Delete(ctx, id.Hex()); err != nil {
		slog.Warn("survey cache invalidation failed", "surveyId", id.Hex(), "error", err)
	}
}
