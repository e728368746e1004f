// Package store defines the persistence contract for listings and bookings.
// Implementations live in the memory and mongostore subpackages.
package store

import (
	"context"
	"errors"
	"fmt"

	"go-foodmarket/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names, shared by every implementation.
const (
	FoodCollection    = "allFoods"
	BookingCollection = "bookings"
)

var ErrInvalidID = errors.New("invalid id")

// ParseID converts a hex path parameter into a document id.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

// FoodQuery selects a window of listings. An empty Search matches everything;
// otherwise Search is matched case-insensitively as a substring of foodName,
// foodCategory or ownerName.
type FoodQuery struct {
	Search string
	Skip   int64
	Limit  int64
}

type FoodStore interface {
	Insert(ctx context.Context, food *models.Food) (models.InsertResult, error)
	// FindByID returns nil and no error when the id is absent.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Food, error)
	Find(ctx context.Context, q FoodQuery) ([]models.Food, error)
	FindByOwner(ctx context.Context, email string) ([]models.Food, error)
	Count(ctx context.Context) (int64, error)
	Top(ctx context.Context, limit int64) ([]models.Food, error)
	// UpdateFields sets the given fields on the listing with id owned by owner.
	UpdateFields(ctx context.Context, id primitive.ObjectID, owner string, fields map[string]any) (models.UpdateResult, error)
	SetQuantity(ctx context.Context, id primitive.ObjectID, quantity int) (models.UpdateResult, error)
	SetSoldCount(ctx context.Context, id primitive.ObjectID, soldCount int) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID, owner string) (models.DeleteResult, error)
	Ping(ctx context.Context) error
}

type BookingStore interface {
	Insert(ctx context.Context, booking *models.Booking) (models.InsertResult, error)
	FindByBuyer(ctx context.Context, email string) ([]models.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID, buyer string) (models.DeleteResult, error)
}
