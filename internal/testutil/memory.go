// Package testutil provides in-memory stores for service and handler tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/repository"
)

// UserStore is an in-memory repository.UserRepo with the same uniqueness rules
type UserStore struct {
	mu    sync.Mutex
	users []*model.User
}

func NewUserStore() *UserStore { return &UserStore{} }

func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	s.users = append(s.users, &cp)
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.ID == id }), nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Email == email }), nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Username == username }), nil
}

func (s *UserStore) GetByEmailOrUsername(_ context.Context, login string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Email == login || u.Username == login }), nil
}

func (s *UserStore) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*model.User{}
	for _, u := range s.users {
		if want[u.ID] {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *UserStore) find(match func(*model.User) bool) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

// SurveyStore is an in-memory repository.SurveyRepo
type SurveyStore struct {
	mu      sync.Mutex
	surveys map[primitive.ObjectID]*model.Survey
	// Reads counts GetByID calls
	Reads int
}

func NewSurveyStore() *SurveyStore {
	return &SurveyStore{surveys: make(map[primitive.ObjectID]*model.Survey)}
}

func (s *SurveyStore) Create(_ context.Context, survey *model.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if survey.ID.IsZero() {
		survey.ID = primitive.NewObjectID()
	}
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = time.Now()
	}
	s.surveys[survey.ID] = cloneSurvey(survey)
	return nil
}

func (s *SurveyStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads++
	survey, ok := s.surveys[id]
	if !ok {
		return nil, nil
	}
	return cloneSurvey(survey), nil
}

func (s *SurveyStore) List(_ context.Context) ([]*model.Survey, error) {
	return s.filter(func(*model.Survey) bool { return true }), nil
}

func (s *SurveyStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*model.Survey, error) {
	return s.filter(func(sv *model.Survey) bool { return sv.UserID == userID }), nil
}

func (s *SurveyStore) SetPublicResults(_ context.Context, id primitive.ObjectID, public bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	survey, ok := s.surveys[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	survey.IsPublicResults = public
	return nil
}

func (s *SurveyStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.surveys, id)
	return nil
}

// Len reports the number of stored surveys
func (s *SurveyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.surveys)
}

func (s *SurveyStore) filter(match func(*model.Survey) bool) []*model.Survey {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*model.Survey{}
	for _, sv := range s.surveys {
		if match(sv) {
			out = append(out, cloneSurvey(sv))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func cloneSurvey(s *model.Survey) *model.Survey {
	cp := *s
	if s.Questions == nil {
		return &cp
	}
	cp.Questions = make([]model.Question, len(s.Questions))
	for i, q := range s.Questions {
		if q.Options != nil {
			opts := make([]model.Option, len(q.Options))
			copy(opts, q.Options)
			q.Options = opts
		}
		cp.Questions[i] = q
	}
	return &cp
}

// ResponseStore is an in-memory repository.ResponseRepo
type ResponseStore struct {
	mu        sync.Mutex
	responses []*model.Response
	// DeleteErr, when set, is returned by DeleteBySurvey
	DeleteErr error
}

func NewResponseStore() *ResponseStore { return &ResponseStore{} }

func (s *ResponseStore) Create(_ context.Context, response *model.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if response.ID.IsZero() {
		response.ID = primitive.NewObjectID()
	}
	if response.CreatedAt.IsZero() {
		response.CreatedAt = time.Now()
	}
	cp := *response
	cp.Answers = append([]model.Answer(nil), response.Answers...)
	s.responses = append(s.responses, &cp)
	return nil
}

func (s *ResponseStore) ListBySurvey(_ context.Context, surveyID primitive.ObjectID) ([]*model.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*model.Response{}
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *ResponseStore) CountBySurveys(_ context.Context, surveyIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	want := make(map[primitive.ObjectID]bool, len(surveyIDs))
	for _, id := range surveyIDs {
		want[id] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[primitive.ObjectID]int64)
	for _, r := range s.responses {
		if want[r.SurveyID] {
			counts[r.SurveyID]++
		}
	}
	return counts, nil
}

func (s *ResponseStore) DeleteBySurvey(_ context.Context, surveyID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return 0, s.DeleteErr
	}
	kept := s.responses[:0]
	var deleted int64
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.responses = kept
	return deleted, nil
}

// Len reports the number of stored responses
func (s *ResponseStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.responses)
}

// SurveyCache is an in-memory cache.SurveyCache
type SurveyCache struct {
	mu      sync.Mutex
	entries map[string]*model.Survey
}

func NewSurveyCache() *SurveyCache {
	return &SurveyCache{entries: make(map[string]*model.Survey)}
}

func (c *SurveyCache) Get(_ context.Context, id string) (*model.Survey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.entries[strings.ToLower(id)]; ok {
		return cloneSurvey(s), nil
	}
	return nil, nil
}

func (c *SurveyCache) Set(_ context.Context, survey *model.Survey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[survey.ID.Hex()] = cloneSurvey(survey)
	return nil
}

func (c *SurveyCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, strings.ToLower(id))
	return nil
}

// Has reports whether a survey id is cached
func (c *SurveyCache) Has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[strings.ToLower(id)]
	return ok
}
