package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saran8796/survey-application/internal/model"
)

// SurveyCache holds survey definitions for the public read path
type SurveyCache interface {
	Get(ctx context.Context, id string) (*model.Survey, error)
	Set(ctx context.Context, survey *model.Survey) error
	Delete(ctx context.Context, id string) error
}

type surveyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSurveyCache creates a Redis-backed survey cache
func NewSurveyCache(client *redis.Client, ttl time.Duration) SurveyCache {
	return &surveyCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *surveyCache) key(id string) string {
	return fmt.Sprintf("survey:%s", id)
}

func (c *surveyCache) Get(ctx context.Context, id string) (*model.Survey, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var survey model.Survey
	if err := json.Unmarshal(data, &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

func (c *surveyCache) Set(ctx context.Context, survey *model.Survey) error {
	data, err := json.Marshal(survey)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(survey.ID.Hex()), data, c.ttl).Err()
}

func (c *surveyCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

// NopSurveyCache is used when Redis is not configured
type NopSurveyCache struct{}

func (NopSurveyCache) Get(context.Context, string) (*model.Survey, error) { return nil, nil }
func (NopSurveyCache) Set(context.Context, *model.Survey) error           { return nil }
func (NopSurveyCache) Delete(context.Context, string) error               { return nil }
