package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go-foodmarket/internal/models"
	"go-foodmarket/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var _ store.FoodStore = (*FoodStore)(nil)

type FoodStore struct {
	coll *mongo.Collection
}

func NewFoodStore(coll *mongo.Collection) *FoodStore {
	return &FoodStore{coll: coll}
}

func (s *FoodStore) Insert(ctx context.Context, food *models.Food) (models.InsertResult, error) {
	if food.ID.IsZero() {
		food.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, food); err != nil {
		return models.InsertResult{}, fmt.Errorf("insert food: %w", err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: food.ID.Hex()}, nil
}

func (s *FoodStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Food, error) {
	var food models.Food
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&food)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find food %s: %w", id.Hex(), err)
	}
	return &food, nil
}

func (s *FoodStore) Find(ctx context.Context, q store.FoodQuery) ([]models.Food, error) {
	filter := bson.M{}
	if q.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"foodName": rx},
			bson.M{"foodCategory": rx},
			bson.M{"ownerName": rx},
		}}
	}

	opts := options.Find().SetSkip(q.Skip)
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	return s.findAll(ctx, filter, opts)
}

func (s *FoodStore) FindByOwner(ctx context.Context, email string) ([]models.Food, error) {
	return s.findAll(ctx, bson.M{models.FieldOwnerEmail: email})
}

func (s *FoodStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count foods: %w", err)
	}
	return n, nil
}

func (s *FoodStore) Top(ctx context.Context, limit int64) ([]models.Food, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: models.FieldSoldCount, Value: -1}}).
		SetLimit(limit)
	return s.findAll(ctx, bson.M{}, opts)
}

func (s *FoodStore) UpdateFields(ctx context.Context, id primitive.ObjectID, owner string, fields map[string]any) (models.UpdateResult, error) {
	filter := bson.M{"_id": id, models.FieldOwnerEmail: owner}
	return s.update(ctx, filter, bson.M{"$set": fields})
}

func (s *FoodStore) SetQuantity(ctx context.Context, id primitive.ObjectID, quantity int) (models.UpdateResult, error) {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{models.FieldQuantity: quantity}})
}

func (s *FoodStore) SetSoldCount(ctx context.Context, id primitive.ObjectID, soldCount int) (models.UpdateResult, error) {
	return s.update(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{models.FieldSoldCount: soldCount}})
}

func (s *FoodStore) Delete(ctx context.Context, id primitive.ObjectID, owner string) (models.DeleteResult, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, models.FieldOwnerEmail: owner})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete food %s: %w", id.Hex(), err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func (s *FoodStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (s *FoodStore) update(ctx context.Context, filter, update bson.M) (models.UpdateResult, error) {
	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update food: %w", err)
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func (s *FoodStore) findAll(ctx context.Context, filter any, opts ...*options.FindOptions) ([]models.Food, error) {
	cur, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find foods: %w", err)
	}
	foods := []models.Food{}
	if err := cur.All(ctx, &foods); err != nil {
		return nil, fmt.Errorf("decode foods: %w", err)
	}
	return foods, nil
}
