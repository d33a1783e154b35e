package service

import (
	"context"
	"testing"
	"time"

	"pos/database"
	"pos/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testLoc = time.FixedZone("CST", -6*60*60)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// fakeClock is a Clock whose current time the test moves by hand.
type fakeClock struct {
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (f *fakeClock) clock() Clock {
	return Clock{Location: testLoc, Now: func() time.Time { return f.now }}
}

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 1, hour, min, 0, 0, testLoc)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedCatalog loads a small catalog: three sizes, two entrees (one premium), two sides,
// an appetizer and a drink.
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()
	catalog := NewCatalogService(db, nil)

	for _, in := range []SizeInput{
		{Name: "Bowl", Price: dec("8.30"), NumberOfEntrees: 1, NumberOfSides: 1},
		{Name: "Plate", Price: dec("9.80"), NumberOfEntrees: 2, NumberOfSides: 1},
		{Name: "Bigger Plate", Price: dec("11.30"), NumberOfEntrees: 3, NumberOfSides: 1},
	} {
		if _, err := catalog.CreateSize(ctx, in); err != nil {
			t.Fatalf("size %s: %v", in.Name, err)
		}
	}
	for _, in := range []FoodInput{
		{Name: "Orange Chicken"},
		{Name: "Honey Walnut Shrimp", Premium: true},
		{Name: "Fried Rice", IsSide: true},
		{Name: "Chow Mein", IsSide: true},
	} {
		if _, _, err := catalog.GetOrCreateFood(ctx, in); err != nil {
			t.Fatalf("food %s: %v", in.Name, err)
		}
	}
	for _, in := range []AppetizerDrinkInput{
		{Name: "Egg Roll", Price: dec("2.00"), Kind: model.KindAppetizer},
		{Name: "Fountain Drink", Price: dec("2.10"), Kind: model.KindDrink},
	} {
		if _, err := catalog.CreateAppetizerDrink(ctx, in); err != nil {
			t.Fatalf("item %s: %v", in.Name, err)
		}
	}
}

func count(t *testing.T, db *gorm.DB, m any, where ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(m)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
