package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"go-foodmarket/internal/cache"
	"go-foodmarket/internal/models"
	"go-foodmarket/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNoFields  = errors.New("no updatable fields")
	ErrNegative  = errors.New("counter must not be negative")
)

const (
	countKey = "foodCount"
	topKey   = "topFoods"
)

type FoodService struct {
	foods store.FoodStore
	cache cache.Cache

	// gen counts invalidations. A read caches its result only if no write
	// in this process invalidated the keys while it was querying the store;
	// writes from other instances are bounded by the cache TTL.
	mu  sync.RWMutex
	gen uint64
}

func NewFoodService(foods store.FoodStore, c cache.Cache) *FoodService {
	if c == nil {
		c = cache.Noop{}
	}
	return &FoodService{foods: foods, cache: c}
}

// Create inserts a listing owned by the session user. A listing claiming a
// different owner is rejected.
func (s *FoodService) Create(ctx context.Context, sessionEmail string, food *models.Food) (models.InsertResult, error) {
	switch food.OwnerEmail {
	case "":
		food.OwnerEmail = sessionEmail
	case sessionEmail:
	default:
		return models.InsertResult{}, ErrForbidden
	}
	food.ID = primitive.NilObjectID

	res, err := s.foods.Insert(ctx, food)
	if err != nil {
		return models.InsertResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *FoodService) Get(ctx context.Context, hexID string) (*models.Food, error) {
	id, err := store.ParseID(hexID)
	if err != nil {
		return nil, err
	}
	return s.foods.FindByID(ctx, id)
}

func (s *FoodService) List(ctx context.Context, search string, page models.Page) ([]models.Food, error) {
	return s.foods.Find(ctx, store.FoodQuery{
		Search: search,
		Skip:   page.Skip(),
		Limit:  int64(page.Size),
	})
}

func (s *FoodService) ListByOwner(ctx context.Context, owner string) ([]models.Food, error) {
	return s.foods.FindByOwner(ctx, owner)
}

func (s *FoodService) Count(ctx context.Context) (int64, error) {
	var n int64
	if s.cache.Get(ctx, countKey, &n) {
		return n, nil
	}
	gen := s.generation()
	n, err := s.foods.Count(ctx)
	if err != nil {
		return 0, err
	}
	s.remember(ctx, gen, countKey, n)
	return n, nil
}

func (s *FoodService) Top(ctx context.Context) ([]models.Food, error) {
	var foods []models.Food
	if s.cache.Get(ctx, topKey, &foods) && foods != nil {
		return foods, nil
	}
	gen := s.generation()
	foods, err := s.foods.Top(ctx, models.TopFoodsLimit)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, gen, topKey, foods)
	return foods, nil
}

// Update sets fields on a listing owned by owner. The id and owner of a
// listing are never changed this way.
func (s *FoodService) Update(ctx context.Context, owner, hexID string, fields map[string]any) (models.UpdateResult, error) {
	id, err := store.ParseID(hexID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	delete(fields, models.FieldID)
	delete(fields, models.FieldOwnerEmail)
	if len(fields) == 0 {
		return models.UpdateResult{}, ErrNoFields
	}
	if err := models.NormalizeUpdate(fields); err != nil {
		return models.UpdateResult{}, err
	}
	for _, key := range []string{models.FieldQuantity, models.FieldSoldCount} {
		if n, ok := fields[key].(int); ok && n < 0 {
			return models.UpdateResult{}, fmt.Errorf("%w: %s %d", ErrNegative, key, n)
		}
	}

	res, err := s.foods.UpdateFields(ctx, id, owner, fields)
	if err != nil {
		return models.UpdateResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *FoodService) SetQuantity(ctx context.Context, hexID string, quantity int) (models.UpdateResult, error) {
	id, err := store.ParseID(hexID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if quantity < 0 {
		return models.UpdateResult{}, fmt.Errorf("%w: quantity %d", ErrNegative, quantity)
	}
	res, err := s.foods.SetQuantity(ctx, id, quantity)
	if err != nil {
		return models.UpdateResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *FoodService) SetSoldCount(ctx context.Context, hexID string, soldCount int) (models.UpdateResult, error) {
	id, err := store.ParseID(hexID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if soldCount < 0 {
		return models.UpdateResult{}, fmt.Errorf("%w: soldCount %d", ErrNegative, soldCount)
	}
	res, err := s.foods.SetSoldCount(ctx, id, soldCount)
	if err != nil {
		return models.UpdateResult{}, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *FoodService) Delete(ctx context.Context, owner, hexID string) (models.DeleteResult, error) {
	id, err := store.ParseID(hexID)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.foods.Delete(ctx, id, owner)
	if err != nil {
		return models.DeleteResult{}, err
	}
	if res.DeletedCount > 0 {
		s.invalidate(ctx)
	}
	return res, nil
}

func (s *FoodService) Ping(ctx context.Context) error {
	return s.foods.Ping(ctx)
}

func (s *FoodService) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

func (s *FoodService) remember(ctx context.Context, gen uint64, key string, value any) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if gen != s.gen {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}

func (s *FoodService) invalidate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if err := s.cache.Delete(ctx, countKey, topKey); err != nil {
		log.Printf("cache invalidate: %v", err)
	}
}
