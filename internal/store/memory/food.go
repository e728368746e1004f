// Package memory keeps listings and bookings in process memory. It backs
// STORE=memory for local runs and the handler tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go-foodmarket/internal/models"
	"go-foodmarket/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ store.FoodStore = (*FoodStore)(nil)

type FoodStore struct {
	mu    sync.RWMutex
	foods map[primitive.ObjectID]*models.Food
	order []primitive.ObjectID // insertion order, the default listing order
}

func NewFoodStore() *FoodStore {
	return &FoodStore{
		foods: make(map[primitive.ObjectID]*models.Food),
	}
}

// SeedSampleData adds n generated listings owned by owner.
func (s *FoodStore) SeedSampleData(n int, owner string) {
	categories := []string{"Rice", "Curry", "Snacks", "Dessert"}
	names := []string{"Biryani", "Tehari", "Fuchka", "Roshogolla", "Khichuri", "Haleem"}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < n; i++ {
		food := &models.Food{
			ID:           primitive.NewObjectID(),
			FoodName:     fmt.Sprintf("%s %d", names[i%len(names)], i+1),
			FoodCategory: categories[i%len(categories)],
			OwnerName:    "Sample Kitchen",
			OwnerEmail:   owner,
			Quantity:     (i % 20) + 1,
		}
		s.foods[food.ID] = food
		s.order = append(s.order, food.ID)
	}
}

func (s *FoodStore) Insert(_ context.Context, food *models.Food) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if food.ID.IsZero() {
		food.ID = primitive.NewObjectID()
	}
	if _, exists := s.foods[food.ID]; exists {
		return models.InsertResult{}, fmt.Errorf("insert food: duplicate id %s", food.ID.Hex())
	}
	stored := food.Clone()
	s.foods[food.ID] = &stored
	s.order = append(s.order, food.ID)

	return models.InsertResult{Acknowledged: true, InsertedID: food.ID.Hex()}, nil
}

func (s *FoodStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	food, exists := s.foods[id]
	if !exists {
		return nil, nil
	}
	out := food.Clone()
	return &out, nil
}

func (s *FoodStore) Find(_ context.Context, q store.FoodQuery) ([]models.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(q.Search)
	results := []models.Food{}
	var skipped int64
	for _, id := range s.order {
		food := s.foods[id]
		if needle != "" && !matches(food, needle) {
			continue
		}
		if skipped < q.Skip {
			skipped++
			continue
		}
		if q.Limit > 0 && int64(len(results)) >= q.Limit {
			break
		}
		results = append(results, food.Clone())
	}
	return results, nil
}

func matches(food *models.Food, needle string) bool {
	return strings.Contains(strings.ToLower(food.FoodName), needle) ||
		strings.Contains(strings.ToLower(food.FoodCategory), needle) ||
		strings.Contains(strings.ToLower(food.OwnerName), needle)
}

func (s *FoodStore) FindByOwner(_ context.Context, email string) ([]models.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []models.Food{}
	for _, id := range s.order {
		if food := s.foods[id]; food.OwnerEmail == email {
			results = append(results, food.Clone())
		}
	}
	return results, nil
}

func (s *FoodStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.foods)), nil
}

func (s *FoodStore) Top(_ context.Context, limit int64) ([]models.Food, error) {
	s.mu.RLock()
	results := make([]models.Food, 0, len(s.order))
	for _, id := range s.order {
		results = append(results, s.foods[id].Clone())
	}
	s.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SoldCount > results[j].SoldCount
	})
	if limit > 0 && int64(len(results)) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *FoodStore) UpdateFields(_ context.Context, id primitive.ObjectID, owner string, fields map[string]any) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	food, exists := s.foods[id]
	if !exists || food.OwnerEmail != owner {
		return models.UpdateResult{Acknowledged: true}, nil
	}

	updated, err := applyFields(food, fields)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update food %s: %w", id.Hex(), err)
	}
	updated.ID = food.ID

	modified := int64(0)
	before, _ := json.Marshal(food)
	after, _ := json.Marshal(updated)
	if string(before) != string(after) {
		modified = 1
	}
	s.foods[id] = updated

	return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
}

// applyFields merges fields into a copy of food through its JSON form, so
// typed and pass-through fields are handled the same way a client sees them.
func applyFields(food *models.Food, fields map[string]any) (*models.Food, error) {
	raw, err := json.Marshal(food)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for k, v := range fields {
		doc[k] = v
	}
	raw, err = json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out models.Food
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FoodStore) SetQuantity(_ context.Context, id primitive.ObjectID, quantity int) (models.UpdateResult, error) {
	return s.setCounter(id, func(f *models.Food) bool {
		changed := f.Quantity != quantity
		f.Quantity = quantity
		return changed
	}), nil
}

func (s *FoodStore) SetSoldCount(_ context.Context, id primitive.ObjectID, soldCount int) (models.UpdateResult, error) {
	return s.setCounter(id, func(f *models.Food) bool {
		changed := f.SoldCount != soldCount
		f.SoldCount = soldCount
		return changed
	}), nil
}

func (s *FoodStore) setCounter(id primitive.ObjectID, set func(*models.Food) bool) models.UpdateResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	food, exists := s.foods[id]
	if !exists {
		return models.UpdateResult{Acknowledged: true}
	}
	res := models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if set(food) {
		res.ModifiedCount = 1
	}
	return res
}

func (s *FoodStore) Delete(_ context.Context, id primitive.ObjectID, owner string) (models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	food, exists := s.foods[id]
	if !exists || food.OwnerEmail != owner {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	delete(s.foods, id)
	s.order = removeID(s.order, id)
	return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (s *FoodStore) Ping(context.Context) error {
	return nil
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
