package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go-foodmarket/internal/models"
	"go-foodmarket/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodStoreInsertThenFind(t *testing.T) {
	ctx := context.Background()
	s := NewFoodStore()

	food := &models.Food{
		FoodName:   "Beef Tehari",
		OwnerEmail: "chef@example.com",
		Quantity:   4,
		Extra:      map[string]any{"price": 220.0},
	}
	res, err := s.Insert(ctx, food)
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Equal(t, food.ID.Hex(), res.InsertedID)

	got, err := s.FindByID(ctx, food.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *food, *got)

	// the stored copy must not alias the caller's map
	food.Extra["price"] = 1.0
	got, err = s.FindByID(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 220.0, got.Extra["price"])
}

func TestFoodStoreFindByIDMissing(t *testing.T) {
	s := NewFoodStore()
	id, err := store.ParseID("65a1b2c3d4e5f60718293a4b")
	require.NoError(t, err)

	got, err := s.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFoodStoreFindPagesAndSearch(t *testing.T) {
	ctx := context.Background()
	s := NewFoodStore()
	for i := 0; i < 12; i++ {
		_, err := s.Insert(ctx, &models.Food{FoodName: fmt.Sprintf("item-%02d", i), FoodCategory: "Snacks", OwnerName: "Rina"})
		require.NoError(t, err)
	}
	_, err := s.Insert(ctx, &models.Food{FoodName: "Mango Lassi", FoodCategory: "Drinks", OwnerName: "Karim"})
	require.NoError(t, err)

	t.Run("window", func(t *testing.T) {
		got, err := s.Find(ctx, store.FoodQuery{Skip: 5, Limit: 5})
		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Equal(t, "item-05", got[0].FoodName)
		assert.Equal(t, "item-09", got[4].FoodName)
	})

	t.Run("case insensitive across fields", func(t *testing.T) {
		for _, term := range []string{"LASSI", "drinks", "kar"} {
			got, err := s.Find(ctx, store.FoodQuery{Search: term, Limit: 9})
			require.NoError(t, err)
			require.Len(t, got, 1, term)
			assert.Equal(t, "Mango Lassi", got[0].FoodName)
		}
	})

	t.Run("no match is empty not nil", func(t *testing.T) {
		got, err := s.Find(ctx, store.FoodQuery{Search: "pizza", Limit: 9})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFoodStoreTopOrdersBySoldCount(t *testing.T) {
	ctx := context.Background()
	s := NewFoodStore()
	for _, sold := range []int{5, 3, 9, 1} {
		food := &models.Food{FoodName: fmt.Sprintf("sold-%d", sold)}
		_, err := s.Insert(ctx, food)
		require.NoError(t, err)
		_, err = s.SetSoldCount(ctx, food.ID, sold)
		require.NoError(t, err)
	}

	got, err := s.Top(ctx, models.TopFoodsLimit)
	require.NoError(t, err)
	var counts []int
	for _, f := range got {
		counts = append(counts, f.SoldCount)
	}
	assert.Equal(t, []int{9, 5, 3, 1}, counts)
}

func TestFoodStoreUpdateFieldsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	s := NewFoodStore()
	food := &models.Food{FoodName: "Pitha", OwnerEmail: "owner@example.com"}
	_, err := s.Insert(ctx, food)
	require.NoError(t, err)

	res, err := s.UpdateFields(ctx, food.ID, "someone@else.com", map[string]any{"foodName": "Hijacked"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.MatchedCount)

	res, err = s.UpdateFields(ctx, food.ID, "owner@example.com", map[string]any{"foodName": "Bhapa Pitha", "season": "winter"})
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, res)

	got, err := s.FindByID(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bhapa Pitha", got.FoodName)
	assert.Equal(t, "winter", got.Extra["season"])
	assert.Equal(t, food.ID, got.ID)
}

func TestFoodStoreSetQuantityReportsModified(t *testing.T) {
	ctx := context.Background()
	s := NewFoodStore()
	food := &models.Food{FoodName: "Chotpoti", Quantity: 3}
	_, err := s.Insert(ctx, food)
	require.NoError(t, err)

	res, err := s.SetQuantity(ctx, food.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(0), res.ModifiedCount)

	res, err = s.SetQuantity(ctx, food.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)
}

func TestFoodStoreDeleteTwice(t *testing.T) {
	ctx := context.Background()
	s := NewFoodStore()
	food := &models.Food{FoodName: "Jilapi", OwnerEmail: "o@example.com"}
	_, err := s.Insert(ctx, food)
	require.NoError(t, err)

	res, err := s.Delete(ctx, food.ID, "o@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)

	res, err = s.Delete(ctx, food.ID, "o@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DeletedCount)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFoodStoreConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	s := NewFoodStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Insert(ctx, &models.Food{FoodName: fmt.Sprintf("f%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(50), count)
}

func TestSeedSampleData(t *testing.T) {
	s := NewFoodStore()
	s.SeedSampleData(10, "seed@example.com")

	mine, err := s.FindByOwner(context.Background(), "seed@example.com")
	require.NoError(t, err)
	assert.Len(t, mine, 10)
}
