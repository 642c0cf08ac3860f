package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saran8796/survey-application/internal/model"
)

// ResponseRepo handles MongoDB operations for survey responses
type ResponseRepo interface {
	Create(ctx context.Context, response *model.Response) error
	ListBySurvey(ctx context.Context, surveyID primitive.ObjectID) ([]*model.Response, error)
	CountBySurveys(ctx context.Context, surveyIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
	DeleteBySurvey(ctx context.Context, surveyID primitive.ObjectID) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection(ResponsesCollection),
	}
}

func (r *responseRepo) Create(ctx context.Context, response *model.Response) error {
	if response.ID.IsZero() {
		response.ID = primitive.NewObjectID()
	}
	if response.CreatedAt.IsZero() {
		response.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, response)
	return err
}

// ListBySurvey returns a survey's responses newest first
func (r *responseRepo) ListBySurvey(ctx context.Context, surveyID primitive.ObjectID) ([]*model.Response, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"survey": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := []*model.Response{}
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// CountBySurveys counts responses for many surveys in one grouped query.
// Surveys without responses are absent from the map.
func (r *responseRepo) CountBySurveys(ctx context.Context, surveyIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	counts := make(map[primitive.ObjectID]int64, len(surveyIDs))
	if len(surveyIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"survey": bson.M{"$in": surveyIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$survey", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		SurveyID primitive.ObjectID `bson:"_id"`
		Count    int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.SurveyID] = row.Count
	}
	return counts, nil
}

func (r *responseRepo) DeleteBySurvey(ctx context.Context, surveyID primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"survey": surveyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
