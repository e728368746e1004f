package services

import (
	"context"

	"go-foodmarket/internal/models"
	"go-foodmarket/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService struct {
	bookings store.BookingStore
}

func NewBookingService(bookings store.BookingStore) *BookingService {
	return &BookingService{bookings: bookings}
}

// Create records a booking for the session user.
func (s *BookingService) Create(ctx context.Context, buyer string, booking *models.Booking) (models.InsertResult, error) {
	switch booking.BuyerEmail {
	case "":
		booking.BuyerEmail = buyer
	case buyer:
	default:
		return models.InsertResult{}, ErrForbidden
	}
	booking.ID = primitive.NilObjectID
	return s.bookings.Insert(ctx, booking)
}

func (s *BookingService) List(ctx context.Context, buyer string) ([]models.Booking, error) {
	return s.bookings.FindByBuyer(ctx, buyer)
}

func (s *BookingService) Delete(ctx context.Context, buyer, hexID string) (models.DeleteResult, error) {
	id, err := store.ParseID(hexID)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return s.bookings.Delete(ctx, id, buyer)
}
