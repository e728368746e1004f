package memory

import (
	"context"
	"sync"

	"go-foodmarket/internal/models"
	"go-foodmarket/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ store.BookingStore = (*BookingStore)(nil)

type BookingStore struct {
	mu          sync.RWMutex
	bookings    map[primitive.ObjectID]*models.Booking
	buyerOrders map[string][]primitive.ObjectID // buyer email -> booking ids
}

func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings:    make(map[primitive.ObjectID]*models.Booking),
		buyerOrders: make(map[string][]primitive.ObjectID),
	}
}

func (s *BookingStore) Insert(_ context.Context, booking *models.Booking) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	stored := booking.Clone()
	s.bookings[booking.ID] = &stored
	s.buyerOrders[booking.BuyerEmail] = append(s.buyerOrders[booking.BuyerEmail], booking.ID)

	return models.InsertResult{Acknowledged: true, InsertedID: booking.ID.Hex()}, nil
}

func (s *BookingStore) FindByBuyer(_ context.Context, email string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []models.Booking{}
	for _, id := range s.buyerOrders[email] {
		results = append(results, s.bookings[id].Clone())
	}
	return results, nil
}

func (s *BookingStore) Delete(_ context.Context, id primitive.ObjectID, buyer string) (models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, exists := s.bookings[id]
	if !exists || booking.BuyerEmail != buyer {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	delete(s.bookings, id)
	s.buyerOrders[buyer] = removeID(s.buyerOrders[buyer], id)
	if len(s.buyerOrders[buyer]) == 0 {
		delete(s.buyerOrders, buyer)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}
