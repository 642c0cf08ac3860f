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

// SurveyRepo handles MongoDB operations for surveys
type SurveyRepo interface {
	Create(ctx context.Context, survey *model.Survey) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Survey, error)
	List(ctx context.Context) ([]*model.Survey, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Survey, error)
	SetPublicResults(ctx context.Context, id primitive.ObjectID, public bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		collection: db.Collection(SurveysCollection),
	}
}

func (r *surveyRepo) Create(ctx context.Context, survey *model.Survey) error {
	if survey.ID.IsZero() {
		survey.ID = primitive.NewObjectID()
	}
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, survey)
	return err
}

func (r *surveyRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Survey, error) {
	var survey model.Survey
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepo) List(ctx context.Context) ([]*model.Survey, error) {
	return r.find(ctx, bson.M{})
}

func (r *surveyRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Survey, error) {
	return r.find(ctx, bson.M{"user": userID})
}

func (r *surveyRepo) SetPublicResults(ctx context.Context, id primitive.ObjectID, public bool) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isPublicResults": public}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *surveyRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// find returns matching surveys newest first
func (r *surveyRepo) find(ctx context.Context, filter bson.M) ([]*model.Survey, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	surveys := []*model.Survey{}
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}
