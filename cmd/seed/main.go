package main

import (
	"context"
	"log"

	"pos/config"
	"pos/database"
	"pos/model"
	"pos/service"

	"github.com/shopspring/decimal"
)

type sizeSeed struct {
	name           string
	price          string
	entrees, sides int
}

var sizes = []sizeSeed{
	{"Bowl", "8.30", 1, 1},
	{"Plate", "9.80", 2, 1},
	{"Bigger Plate", "11.30", 3, 1},
}

var entrees = []service.FoodInput{
	{Name: "Orange Chicken"},
	{Name: "Beijing Beef"},
	{Name: "Broccoli Beef"},
	{Name: "Kung Pao Chicken"},
	{Name: "Honey Walnut Shrimp", Premium: true},
	{Name: "Black Pepper Angus Steak", Premium: true},
}

var sides = []service.FoodInput{
	{Name: "Fried Rice", IsSide: true},
	{Name: "Chow Mein", IsSide: true},
	{Name: "White Steamed Rice", IsSide: true},
	{Name: "Super Greens", IsSide: true},
}

var extras = []service.AppetizerDrinkInput{
	{Name: "Chicken Egg Roll", Price: decimal.RequireFromString("2.00"), Kind: model.KindAppetizer},
	{Name: "Cream Cheese Rangoon", Price: decimal.RequireFromString("2.00"), Kind: model.KindAppetizer},
	{Name: "Fountain Drink", Price: decimal.RequireFromString("2.10"), Kind: model.KindDrink},
	{Name: "Bottled Water", Price: decimal.RequireFromString("2.30"), Kind: model.KindDrink},
}

// inventory item -> foods that use one serving of it
var links = map[string][]string{
	"Chicken":      {"Orange Chicken", "Kung Pao Chicken"},
	"Beef":         {"Beijing Beef", "Broccoli Beef"},
	"Shrimp":       {"Honey Walnut Shrimp"},
	"Angus Steak":  {"Black Pepper Angus Steak"},
	"Rice":         {"Fried Rice", "White Steamed Rice"},
	"Noodles":      {"Chow Mein"},
	"Broccoli":     {"Broccoli Beef", "Super Greens"},
	"Orange Sauce": {"Orange Chicken"},
	"Walnuts":      {"Honey Walnut Shrimp"},
	"Cooking Oil":  {"Fried Rice", "Chow Mein"},
	"Bell Peppers": {"Beijing Beef", "Kung Pao Chicken", "Black Pepper Angus Steak"},
}

func main() {
	cfg := config.Load()
	database.InitDatabase(cfg)
	ctx := context.Background()

	catalog := service.NewCatalogService(database.DB, nil)
	inventory := service.NewInventoryService(database.DB)

	for _, s := range sizes {
		size := model.Size{
			Name:            s.name,
			Price:           decimal.RequireFromString(s.price),
			NumberOfEntrees: s.entrees,
			NumberOfSides:   s.sides,
			Enabled:         true,
		}
		if err := database.DB.Where(model.Size{Name: s.name}).FirstOrCreate(&size).Error; err != nil {
			log.Fatalf("seed size %s: %v", s.name, err)
		}
	}

	var foods []string
	for _, in := range append(append([]service.FoodInput{}, entrees...), sides...) {
		if _, _, err := catalog.GetOrCreateFood(ctx, in); err != nil {
			log.Fatalf("seed food %s: %v", in.Name, err)
		}
		foods = append(foods, in.Name)
	}

	for _, in := range extras {
		item := model.AppetizerDrink{Name: in.Name, Price: in.Price, Kind: in.Kind, Enabled: true}
		if err := database.DB.Where(model.AppetizerDrink{Name: in.Name}).FirstOrCreate(&item).Error; err != nil {
			log.Fatalf("seed item %s: %v", in.Name, err)
		}
	}

	for _, s := range sizes {
		for _, food := range foods {
			if _, err := inventory.LinkSizeToFood(ctx, s.name, food); err != nil {
				log.Fatalf("link %s to %s: %v", s.name, food, err)
			}
		}
	}

	linked := 0
	for item, users := range links {
		if _, _, err := inventory.GetOrCreate(ctx, item, nil); err != nil {
			log.Fatalf("seed inventory %s: %v", item, err)
		}
		for _, food := range users {
			res, err := inventory.Link(ctx, food, item, 1)
			if err != nil {
				log.Fatalf("link %s to %s: %v", food, item, err)
			}
			if res.Status == service.LinkCreated {
				linked++
			}
		}
	}

	config.GetLogger().WithField("new_links", linked).Info("seed complete")
}
