package mongostore

import (
	"context"
	"fmt"

	"go-foodmarket/internal/models"
	"go-foodmarket/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ store.BookingStore = (*BookingStore)(nil)

type BookingStore struct {
	coll *mongo.Collection
}

func NewBookingStore(coll *mongo.Collection) *BookingStore {
	return &BookingStore{coll: coll}
}

func (s *BookingStore) Insert(ctx context.Context, booking *models.Booking) (models.InsertResult, error) {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, booking); err != nil {
		return models.InsertResult{}, fmt.Errorf("insert booking: %w", err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: booking.ID.Hex()}, nil
}

func (s *BookingStore) FindByBuyer(ctx context.Context, email string) ([]models.Booking, error) {
	cur, err := s.coll.Find(ctx, bson.M{"buyerEmail": email})
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingStore) Delete(ctx context.Context, id primitive.ObjectID, buyer string) (models.DeleteResult, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "buyerEmail": buyer})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete booking %s: %w", id.Hex(), err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
