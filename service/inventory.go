package service

import (
	"context"
	"errors"
	"strings"

	"pos/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultInventoryQuantity = 100
	maxStockChange           = 1_000_000
)

func checkStockAmount(n int, what string) error {
	if n < 0 {
		return validationf("%s must not be negative", what)
	}
	if n > maxStockChange {
		return validationf("%s must not exceed %d", what, maxStockChange)
	}
	return nil
}

type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

type InventoryView struct {
	model.InventoryItem
	Status string `json:"status"`
}

func viewOf(item model.InventoryItem) InventoryView {
	return InventoryView{InventoryItem: item, Status: model.InventoryStatus(item.Quantity)}
}

func (s *InventoryService) List(ctx context.Context) ([]InventoryView, error) {
	var items []model.InventoryItem
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	views := make([]InventoryView, 0, len(items))
	for _, it := range items {
		views = append(views, viewOf(it))
	}
	return views, nil
}

// GetOrCreate looks the item up by case-insensitive name. An existing item is returned
// unchanged; otherwise a new one is inserted with quantity (100 when nil).
func (s *InventoryService) GetOrCreate(ctx context.Context, name string, quantity *int) (*InventoryView, bool, error) {
	q := defaultInventoryQuantity
	if quantity != nil {
		q = *quantity
	}
	if err := checkStockAmount(q, "quantity"); err != nil {
		return nil, false, err
	}

	existing, err := findByName[model.InventoryItem](s.db.WithContext(ctx), name, "inventory item")
	if err == nil {
		v := viewOf(*existing)
		return &v, true, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	item := model.InventoryItem{Name: strings.TrimSpace(name), Quantity: q}
	row, existed, err := insertOrFind(s.db.WithContext(ctx), &item, item.Name, "inventory item")
	if err != nil {
		return nil, false, err
	}
	v := viewOf(*row)
	return &v, existed, nil
}

func (s *InventoryService) SetQuantity(ctx context.Context, id uint, quantity int) (*InventoryView, error) {
	if err := checkStockAmount(quantity, "quantity"); err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&model.InventoryItem{}).Where("id = ?", id).Update("quantity", quantity)
	return s.afterWrite(ctx, id, res)
}

// Restock adds delta in a single UPDATE so concurrent restocks accumulate.
func (s *InventoryService) Restock(ctx context.Context, id uint, delta int) (*InventoryView, error) {
	if err := checkStockAmount(delta, "restock amount"); err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&model.InventoryItem{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	return s.afterWrite(ctx, id, res)
}

func (s *InventoryService) afterWrite(ctx context.Context, id uint, res *gorm.DB) (*InventoryView, error) {
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, notFoundf("inventory item %d", id)
	}
	var item model.InventoryItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err, "inventory item")
	}
	v := viewOf(item)
	return &v, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.InventoryItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFoundf("inventory item %d", id)
	}
	return nil
}

const (
	LinkCreated         = "linked"
	LinkExists          = "exists"
	LinkSkippedNotFound = "skipped_not_found"
	LinkInvalid         = "invalid"
)

type LinkInput struct {
	Row         int    `json:"row,omitempty"`
	Food        string `json:"food"`
	Inventory   string `json:"inventory"`
	ServingSize int    `json:"serving_size"`
}

type LinkResult struct {
	LinkInput
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Link attaches an inventory item to a food. Linking an existing pair is a no-op and
// reports LinkExists with the stored serving size.
func (s *InventoryService) Link(ctx context.Context, foodName, inventoryName string, servingSize int) (*LinkResult, error) {
	if servingSize == 0 {
		servingSize = 1
	}
	if servingSize < 0 {
		return nil, validationf("serving size must be positive")
	}
	db := s.db.WithContext(ctx)

	food, err := findByName[model.Food](db, foodName, "food")
	if err != nil {
		return nil, err
	}
	item, err := findByName[model.InventoryItem](db, inventoryName, "inventory item")
	if err != nil {
		return nil, err
	}

	link := model.FoodInventory{FoodID: food.ID, InventoryID: item.ID, ServingSize: servingSize}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
	if res.Error != nil {
		return nil, res.Error
	}

	status := LinkCreated
	if res.RowsAffected == 0 {
		status = LinkExists
		var stored model.FoodInventory
		if err := db.Where("food_id = ? AND inventory_id = ?", food.ID, item.ID).First(&stored).Error; err != nil {
			return nil, translate(err, "food inventory link")
		}
		servingSize = stored.ServingSize
	}
	return &LinkResult{
		LinkInput: LinkInput{Food: food.Name, Inventory: item.Name, ServingSize: servingSize},
		Status:    status,
	}, nil
}

type SizeLinkResult struct {
	Size   string `json:"size"`
	Food   string `json:"food"`
	Status string `json:"status"`
}

func (s *InventoryService) LinkSizeToFood(ctx context.Context, sizeName, foodName string) (*SizeLinkResult, error) {
	db := s.db.WithContext(ctx)

	size, err := findByName[model.Size](db, sizeName, "size")
	if err != nil {
		return nil, err
	}
	food, err := findByName[model.Food](db, foodName, "food")
	if err != nil {
		return nil, err
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.SizeFood{SizeID: size.ID, FoodID: food.ID})
	if res.Error != nil {
		return nil, res.Error
	}

	status := LinkCreated
	if res.RowsAffected == 0 {
		status = LinkExists
	}
	return &SizeLinkResult{Size: size.Name, Food: food.Name, Status: status}, nil
}

// BulkLink links every entry it can. Unresolvable names and malformed entries are reported
// per item and never abort the batch; storage errors do.
func (s *InventoryService) BulkLink(ctx context.Context, links []LinkInput) ([]LinkResult, error) {
	if len(links) == 0 {
		return nil, validationf("no links given")
	}

	results := make([]LinkResult, 0, len(links))
	for _, in := range links {
		res, err := s.Link(ctx, in.Food, in.Inventory, in.ServingSize)
		switch {
		case err == nil:
			res.Row = in.Row
			results = append(results, *res)
		case errors.Is(err, ErrNotFound):
			results = append(results, LinkResult{LinkInput: in, Status: LinkSkippedNotFound, Reason: err.Error()})
		case errors.Is(err, ErrValidation):
			results = append(results, LinkResult{LinkInput: in, Status: LinkInvalid, Reason: err.Error()})
		default:
			return nil, err
		}
	}
	return results, nil
}

type FoodLinkView struct {
	FoodID        uint   `json:"food_id"`
	Food          string `json:"food"`
	InventoryID   uint   `json:"inventory_id"`
	InventoryName string `json:"inventory"`
	ServingSize   int    `json:"serving_size"`
}

// Links lists food-to-inventory links, optionally narrowed to one food name.
func (s *InventoryService) Links(ctx context.Context, foodName string) ([]FoodLinkView, error) {
	q := s.db.WithContext(ctx).Table("food_to_inventory AS fi").
		Select("fi.food_id, f.name AS food, fi.inventory_id, inv.name AS inventory_name, fi.serving_size").
		Joins("JOIN foods f ON f.id = fi.food_id").
		Joins("JOIN inventory_items inv ON inv.id = fi.inventory_id").
		Where("f.deleted_at IS NULL AND inv.deleted_at IS NULL")
	if name := strings.TrimSpace(foodName); name != "" {
		q = q.Where("LOWER(f.name) = LOWER(?)", name)
	}

	var rows []FoodLinkView
	if err := q.Order("f.name, inv.name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
