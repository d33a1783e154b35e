package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pos/model"

	"gorm.io/gorm"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"float", 9.8, "9.8"},
		{"int", 12, "12"},
		{"string", " 8.30 ", "8.3"},
		{"json number", json.Number("11.305"), "11.31"},
		{"negative", -1.0, "0"},
		{"garbage", "abc", "0"},
		{"nil", nil, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePrice(tt.in); !got.Equal(dec(tt.want)) {
				t.Errorf("ParsePrice(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestSizeLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(newTestDB(t), nil)

	size, err := svc.CreateSize(ctx, SizeInput{Name: " Bowl ", Price: dec("8.30"), NumberOfEntrees: 1, NumberOfSides: 1})
	if err != nil {
		t.Fatal(err)
	}
	if size.Name != "Bowl" || !size.Enabled {
		t.Fatalf("created %+v", size)
	}

	off := false
	updated, err := svc.UpdateSize(ctx, size.ID, SizeInput{Name: "Bowl", Price: dec("8.50"), NumberOfEntrees: 1, NumberOfSides: 1, Enabled: &off})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Price.Equal(dec("8.50")) || updated.Enabled {
		t.Errorf("updated %+v", updated)
	}

	enabled, err := svc.ListSizes(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(enabled) != 0 {
		t.Errorf("enabled sizes = %d, want 0", len(enabled))
	}

	if err := svc.DeleteSize(ctx, size.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteSize(ctx, size.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := svc.UpdateSize(ctx, size.ID, SizeInput{Name: "Bowl"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update deleted err = %v, want ErrNotFound", err)
	}
	all, _ := svc.ListSizes(ctx, false)
	if len(all) != 0 {
		t.Errorf("sizes after delete = %d, want 0", len(all))
	}
}

func TestCreateSizeValidation(t *testing.T) {
	svc := NewCatalogService(newTestDB(t), nil)
	if _, err := svc.CreateSize(context.Background(), SizeInput{Name: "  "}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name err = %v", err)
	}
	if _, err := svc.CreateSize(context.Background(), SizeInput{Name: "Bowl", NumberOfSides: -1}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative sides err = %v", err)
	}
}

func TestGetOrCreateFoodMatchesNameCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)

	first, existed, err := svc.GetOrCreateFood(ctx, FoodInput{Name: "Orange Chicken"})
	if err != nil || existed {
		t.Fatalf("first: existed=%v err=%v", existed, err)
	}
	second, existed, err := svc.GetOrCreateFood(ctx, FoodInput{Name: "orange chicken", Premium: true})
	if err != nil {
		t.Fatal(err)
	}
	if !existed || second.ID != first.ID || second.Premium {
		t.Errorf("second = %+v existed=%v, want untouched existing row", second, existed)
	}
	if n := count(t, db, &model.Food{}); n != 1 {
		t.Errorf("foods = %d, want 1", n)
	}
}

func TestAppetizerDrinkKind(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(newTestDB(t), nil)

	item, err := svc.CreateAppetizerDrink(ctx, AppetizerDrinkInput{Name: "Egg Roll", Price: dec("2")})
	if err != nil {
		t.Fatal(err)
	}
	if item.Kind != model.KindAppetizer {
		t.Errorf("kind = %q, want appetizer by default", item.Kind)
	}
	if _, err := svc.CreateAppetizerDrink(ctx, AppetizerDrinkInput{Name: "Soup", Kind: "soup"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad kind err = %v", err)
	}
	if _, err := svc.UpdateAppetizerDrink(ctx, 999, AppetizerDrinkInput{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing err = %v", err)
	}
}

func TestMenuGroupsEnabledItems(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := NewCatalogService(db, nil)

	off := false
	if _, _, err := svc.GetOrCreateFood(ctx, FoodInput{Name: "Seasonal Special", Enabled: &off}); err != nil {
		t.Fatal(err)
	}

	menu, err := svc.Menu(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(menu.Sizes) != 3 || len(menu.Entrees) != 2 || len(menu.Sides) != 2 {
		t.Errorf("sizes=%d entrees=%d sides=%d", len(menu.Sizes), len(menu.Entrees), len(menu.Sides))
	}
	if len(menu.Appetizers) != 1 || len(menu.Drinks) != 1 {
		t.Errorf("appetizers=%d drinks=%d", len(menu.Appetizers), len(menu.Drinks))
	}
	if !menu.PremiumUpcharge.Equal(model.PremiumUpcharge) {
		t.Errorf("upcharge = %s", menu.PremiumUpcharge)
	}
}

func TestFoodNamesAreUniqueIgnoringCase(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)

	chicken, _, err := svc.GetOrCreateFood(ctx, FoodInput{Name: "Orange Chicken"})
	if err != nil {
		t.Fatal(err)
	}
	rice, _, err := svc.GetOrCreateFood(ctx, FoodInput{Name: "Fried Rice", IsSide: true})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.Create(&model.Food{Name: "orange chicken", Enabled: true}).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate insert err = %v, want ErrDuplicatedKey", err)
	}

	row, existed, err := insertOrFind(db, &model.Food{Name: "ORANGE CHICKEN", Premium: true}, "ORANGE CHICKEN", "food")
	if err != nil {
		t.Fatal(err)
	}
	if !existed || row.ID != chicken.ID || row.Premium {
		t.Errorf("insertOrFind = %+v existed=%v, want stored row", row, existed)
	}

	if _, err := svc.UpdateFood(ctx, rice.ID, FoodInput{Name: "Orange chicken"}); !errors.Is(err, ErrConflict) {
		t.Errorf("rename onto existing name err = %v, want ErrConflict", err)
	}
	if n := count(t, db, &model.Food{}); n != 2 {
		t.Errorf("foods = %d, want 2", n)
	}
}
