package service

import (
	"context"
	"encoding/json"
	"strings"

	"pos/cache"
	"pos/config"
	"pos/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CatalogService struct {
	db   *gorm.DB
	menu *cache.MenuCache
}

func NewCatalogService(db *gorm.DB, menu *cache.MenuCache) *CatalogService {
	return &CatalogService{db: db, menu: menu}
}

// ParsePrice accepts a JSON number or numeric string. Anything unparsable or negative is 0.
func ParsePrice(v any) decimal.Decimal {
	var d decimal.Decimal
	var err error
	switch p := v.(type) {
	case float64:
		d = decimal.NewFromFloat(p)
	case int:
		d = decimal.NewFromInt(int64(p))
	case json.Number:
		d, err = decimal.NewFromString(p.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(p))
	case decimal.Decimal:
		d = p
	default:
		return decimal.Zero
	}
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}

type SizeInput struct {
	Name            string
	Price           decimal.Decimal
	NumberOfEntrees int
	NumberOfSides   int
	Enabled         *bool
}

func (in SizeInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationf("size name is required")
	}
	if in.NumberOfEntrees < 0 || in.NumberOfSides < 0 {
		return validationf("number of entrees and sides must not be negative")
	}
	return nil
}

type FoodInput struct {
	Name    string
	Premium bool
	IsSide  bool
	Enabled *bool
}

type AppetizerDrinkInput struct {
	Name    string
	Price   decimal.Decimal
	Kind    model.ItemKind
	Enabled *bool
}

func (in *AppetizerDrinkInput) normalize() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationf("appetizer or drink name is required")
	}
	switch in.Kind {
	case "":
		in.Kind = model.KindAppetizer
	case model.KindAppetizer, model.KindDrink:
	default:
		return validationf("kind must be %q or %q", model.KindAppetizer, model.KindDrink)
	}
	return nil
}

func enabledOrDefault(p *bool) bool {
	if p == nil {
		return true
	}
	return *p
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.menu.Invalidate(ctx); err != nil {
		config.LogError(config.GetLogger(), "catalog", "invalidate", "menu cache", nil, err)
	}
}

func (s *CatalogService) ListSizes(ctx context.Context, enabledOnly bool) ([]model.Size, error) {
	var sizes []model.Size
	q := s.db.WithContext(ctx).Order("id")
	if enabledOnly {
		q = q.Where("enabled = ?", true)
	}
	return sizes, q.Find(&sizes).Error
}

func (s *CatalogService) CreateSize(ctx context.Context, in SizeInput) (*model.Size, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	size := model.Size{
		Name:            strings.TrimSpace(in.Name),
		Price:           in.Price,
		NumberOfEntrees: in.NumberOfEntrees,
		NumberOfSides:   in.NumberOfSides,
		Enabled:         enabledOrDefault(in.Enabled),
	}
	if err := s.db.WithContext(ctx).Create(&size).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &size, nil
}

func (s *CatalogService) UpdateSize(ctx context.Context, id uint, in SizeInput) (*model.Size, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"name":              strings.TrimSpace(in.Name),
		"price":             in.Price,
		"number_of_entrees": in.NumberOfEntrees,
		"number_of_sides":   in.NumberOfSides,
		"enabled":           enabledOrDefault(in.Enabled),
	}
	var size model.Size
	if err := s.update(ctx, &size, id, fields, "size"); err != nil {
		return nil, err
	}
	return &size, nil
}

func (s *CatalogService) DeleteSize(ctx context.Context, id uint) error {
	return s.delete(ctx, &model.Size{}, id, "size")
}

func (s *CatalogService) ListFoods(ctx context.Context, enabledOnly bool) ([]model.Food, error) {
	var foods []model.Food
	q := s.db.WithContext(ctx).Order("is_side, id")
	if enabledOnly {
		q = q.Where("enabled = ?", true)
	}
	return foods, q.Find(&foods).Error
}

// GetOrCreateFood returns the existing row for a case-insensitive name match, untouched,
// or inserts a new one. The boolean reports whether the row already existed.
func (s *CatalogService) GetOrCreateFood(ctx context.Context, in FoodInput) (*model.Food, bool, error) {
	existing, err := findByName[model.Food](s.db.WithContext(ctx), in.Name, "food")
	if err == nil {
		return existing, true, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	food := model.Food{
		Name:    strings.TrimSpace(in.Name),
		Premium: in.Premium,
		IsSide:  in.IsSide,
		Enabled: enabledOrDefault(in.Enabled),
	}
	row, existed, err := insertOrFind(s.db.WithContext(ctx), &food, food.Name, "food")
	if err != nil {
		return nil, false, err
	}
	if !existed {
		s.invalidate(ctx)
	}
	return row, existed, nil
}

func (s *CatalogService) UpdateFood(ctx context.Context, id uint, in FoodInput) (*model.Food, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, validationf("food name is required")
	}
	fields := map[string]any{
		"name":    strings.TrimSpace(in.Name),
		"premium": in.Premium,
		"is_side": in.IsSide,
		"enabled": enabledOrDefault(in.Enabled),
	}
	var food model.Food
	if err := s.update(ctx, &food, id, fields, "food"); err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *CatalogService) DeleteFood(ctx context.Context, id uint) error {
	return s.delete(ctx, &model.Food{}, id, "food")
}

func (s *CatalogService) ListAppetizersDrinks(ctx context.Context, enabledOnly bool) ([]model.AppetizerDrink, error) {
	var items []model.AppetizerDrink
	q := s.db.WithContext(ctx).Order("kind, id")
	if enabledOnly {
		q = q.Where("enabled = ?", true)
	}
	return items, q.Find(&items).Error
}

func (s *CatalogService) CreateAppetizerDrink(ctx context.Context, in AppetizerDrinkInput) (*model.AppetizerDrink, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	item := model.AppetizerDrink{
		Name:    strings.TrimSpace(in.Name),
		Price:   in.Price,
		Kind:    in.Kind,
		Enabled: enabledOrDefault(in.Enabled),
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &item, nil
}

func (s *CatalogService) UpdateAppetizerDrink(ctx context.Context, id uint, in AppetizerDrinkInput) (*model.AppetizerDrink, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"name":    strings.TrimSpace(in.Name),
		"price":   in.Price,
		"kind":    in.Kind,
		"enabled": enabledOrDefault(in.Enabled),
	}
	var item model.AppetizerDrink
	if err := s.update(ctx, &item, id, fields, "appetizer or drink"); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CatalogService) DeleteAppetizerDrink(ctx context.Context, id uint) error {
	return s.delete(ctx, &model.AppetizerDrink{}, id, "appetizer or drink")
}

// update overwrites fields of row id and reloads it into dest. A write that matches no
// row is reported as ErrNotFound.
func (s *CatalogService) update(ctx context.Context, dest any, id uint, fields map[string]any, what string) error {
	res := s.db.WithContext(ctx).Model(dest).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, what)
	}
	if res.RowsAffected == 0 {
		return notFoundf("%s %d", what, id)
	}
	s.invalidate(ctx)
	return translate(s.db.WithContext(ctx).First(dest, id).Error, what)
}

func (s *CatalogService) delete(ctx context.Context, row any, id uint, what string) error {
	res := s.db.WithContext(ctx).Delete(row, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFoundf("%s %d", what, id)
	}
	s.invalidate(ctx)
	return nil
}

type Menu struct {
	Sizes           []model.Size           `json:"sizes"`
	Entrees         []model.Food           `json:"entrees"`
	Sides           []model.Food           `json:"sides"`
	Appetizers      []model.AppetizerDrink `json:"appetizers"`
	Drinks          []model.AppetizerDrink `json:"drinks"`
	PremiumUpcharge decimal.Decimal        `json:"premium_upcharge"`
}

// Menu returns the enabled-only catalog, served from the cache when one is configured.
func (s *CatalogService) Menu(ctx context.Context) (*Menu, error) {
	var menu Menu
	found, err := s.menu.Get(ctx, &menu)
	if err != nil {
		config.LogError(config.GetLogger(), "catalog", "Menu", "menu cache read", nil, err)
	}
	if found {
		return &menu, nil
	}

	menu = Menu{PremiumUpcharge: model.PremiumUpcharge}
	if menu.Sizes, err = s.ListSizes(ctx, true); err != nil {
		return nil, err
	}
	foods, err := s.ListFoods(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, f := range foods {
		if f.IsSide {
			menu.Sides = append(menu.Sides, f)
		} else {
			menu.Entrees = append(menu.Entrees, f)
		}
	}
	items, err := s.ListAppetizersDrinks(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.Kind == model.KindDrink {
			menu.Drinks = append(menu.Drinks, it)
		} else {
			menu.Appetizers = append(menu.Appetizers, it)
		}
	}

	if err := s.menu.Set(ctx, &menu); err != nil {
		config.LogError(config.GetLogger(), "catalog", "Menu", "menu cache write", nil, err)
	}
	return &menu, nil
}
