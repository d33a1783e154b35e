package service

import (
	"context"
	"errors"

	"pos/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ComboInput struct {
	Size  string   `json:"size"`
	Items []string `json:"items"`
	Sides []string `json:"sides"`
}

type OrderInput struct {
	Combos     []ComboInput    `json:"combos"`
	Appetizers []string        `json:"appetizers"`
	Drinks     []string        `json:"drinks"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func (in OrderInput) empty() bool {
	return len(in.Combos) == 0 && len(in.Appetizers) == 0 && len(in.Drinks) == 0
}

type cartExtra struct {
	kind model.ItemKind
	name string
}

// extras lists appetizer and drink lines. Each line keeps the kind of the list it was
// sent in, which is the kind its result reports whether or not it resolves.
func (in OrderInput) extras() []cartExtra {
	lines := make([]cartExtra, 0, len(in.Appetizers)+len(in.Drinks))
	for _, name := range in.Appetizers {
		lines = append(lines, cartExtra{model.KindAppetizer, name})
	}
	for _, name := range in.Drinks {
		lines = append(lines, cartExtra{model.KindDrink, name})
	}
	return lines
}

const (
	ItemResolved        = "resolved"
	ItemSkippedNotFound = "skipped_not_found"
)

// ItemResult records what happened to one named cart line.
type ItemResult struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Combo  *int   `json:"combo,omitempty"`
	Status string `json:"status"`
}

type SubmitResult struct {
	OrderID uint         `json:"orderId"`
	Items   []ItemResult `json:"items"`
}

type OrderService struct {
	db      *gorm.DB
	clock   Clock
	taxRate decimal.Decimal
}

func NewOrderService(db *gorm.DB, clock Clock, taxRate decimal.Decimal) *OrderService {
	return &OrderService{db: db, clock: clock, taxRate: taxRate}
}

// Submit records a finalized cart. The order and all of its selections are written in one
// transaction. Unknown size names skip their whole combo; unknown entree, side, appetizer
// or drink names skip only that line. Skips are reported in the result, never fatal.
func (s *OrderService) Submit(ctx context.Context, in OrderInput) (*SubmitResult, error) {
	if in.TotalPrice.IsNegative() {
		return nil, validationf("totalPrice must not be negative")
	}
	if in.empty() {
		return nil, validationf("order has no items")
	}

	var result SubmitResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := model.Order{PlacedAt: s.clock.now().UTC(), Cost: in.TotalPrice.Round(2)}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		result = SubmitResult{OrderID: order.ID}

		for i, combo := range in.Combos {
			idx := i
			size, err := findByName[model.Size](tx, combo.Size, "size")
			if err != nil {
				if !skippable(err) {
					return err
				}
				result.Items = append(result.Items, ItemResult{Kind: "size", Name: combo.Size, Combo: &idx, Status: ItemSkippedNotFound})
				continue
			}
			if err := tx.Create(&model.OrderSizeSelection{OrderID: order.ID, SizeID: size.ID, ComboIndex: idx}).Error; err != nil {
				return err
			}
			result.Items = append(result.Items, ItemResult{Kind: "size", Name: size.Name, Combo: &idx, Status: ItemResolved})

			lines := []struct {
				role  model.FoodRole
				names []string
			}{
				{model.RoleEntree, combo.Items},
				{model.RoleSide, combo.Sides},
			}
			for _, line := range lines {
				for _, name := range line.names {
					food, err := findByName[model.Food](tx, name, "food")
					if err != nil {
						if !skippable(err) {
							return err
						}
						result.Items = append(result.Items, ItemResult{Kind: string(line.role), Name: name, Combo: &idx, Status: ItemSkippedNotFound})
						continue
					}
					sel := model.OrderFoodSelection{OrderID: order.ID, FoodID: food.ID, Role: line.role, ComboIndex: idx}
					if err := tx.Create(&sel).Error; err != nil {
						return err
					}
					result.Items = append(result.Items, ItemResult{Kind: string(line.role), Name: food.Name, Combo: &idx, Status: ItemResolved})
				}
			}
		}

		for _, line := range in.extras() {
			item, err := findByName[model.AppetizerDrink](tx, line.name, "appetizer or drink")
			if err != nil {
				if !skippable(err) {
					return err
				}
				result.Items = append(result.Items, ItemResult{Kind: string(line.kind), Name: line.name, Status: ItemSkippedNotFound})
				continue
			}
			if err := tx.Create(&model.OrderAppetizerDrink{OrderID: order.ID, AppetizerDrinkID: item.ID}).Error; err != nil {
				return err
			}
			result.Items = append(result.Items, ItemResult{Kind: string(line.kind), Name: item.Name, Status: ItemResolved})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// skippable reports whether a name lookup failure should skip the line instead of
// failing the order. Blank names are treated like unknown ones.
func skippable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation)
}

type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Upcharge decimal.Decimal `json:"premium_upcharge"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Items    []ItemResult    `json:"items"`
}

// Quote prices a cart from the catalog: size prices, the premium upcharge per premium
// entree and appetizer/drink prices, plus tax. Unknown names contribute nothing.
func (s *OrderService) Quote(ctx context.Context, in OrderInput) (*Quote, error) {
	if in.empty() {
		return nil, validationf("order has no items")
	}
	db := s.db.WithContext(ctx)

	q := Quote{Subtotal: decimal.Zero}
	premium := 0
	for i, combo := range in.Combos {
		idx := i
		size, err := findByName[model.Size](db, combo.Size, "size")
		if err != nil {
			if !skippable(err) {
				return nil, err
			}
			q.Items = append(q.Items, ItemResult{Kind: "size", Name: combo.Size, Combo: &idx, Status: ItemSkippedNotFound})
			continue
		}
		q.Subtotal = q.Subtotal.Add(size.Price)
		q.Items = append(q.Items, ItemResult{Kind: "size", Name: size.Name, Combo: &idx, Status: ItemResolved})

		for _, name := range combo.Items {
			food, err := findByName[model.Food](db, name, "food")
			if err != nil {
				if !skippable(err) {
					return nil, err
				}
				q.Items = append(q.Items, ItemResult{Kind: string(model.RoleEntree), Name: name, Combo: &idx, Status: ItemSkippedNotFound})
				continue
			}
			if food.Premium {
				premium++
			}
			q.Items = append(q.Items, ItemResult{Kind: string(model.RoleEntree), Name: food.Name, Combo: &idx, Status: ItemResolved})
		}
		for _, name := range combo.Sides {
			status := ItemResolved
			if _, err := findByName[model.Food](db, name, "food"); err != nil {
				if !skippable(err) {
					return nil, err
				}
				status = ItemSkippedNotFound
			}
			q.Items = append(q.Items, ItemResult{Kind: string(model.RoleSide), Name: name, Combo: &idx, Status: status})
		}
	}

	for _, line := range in.extras() {
		item, err := findByName[model.AppetizerDrink](db, line.name, "appetizer or drink")
		if err != nil {
			if !skippable(err) {
				return nil, err
			}
			q.Items = append(q.Items, ItemResult{Kind: string(line.kind), Name: line.name, Status: ItemSkippedNotFound})
			continue
		}
		q.Subtotal = q.Subtotal.Add(item.Price)
		q.Items = append(q.Items, ItemResult{Kind: string(line.kind), Name: item.Name, Status: ItemResolved})
	}

	q.Upcharge = model.PremiumSurcharge(premium)
	q.Subtotal = q.Subtotal.Add(q.Upcharge).Round(2)
	q.Tax = q.Subtotal.Mul(s.taxRate).Round(2)
	q.Total = q.Subtotal.Add(q.Tax)
	return &q, nil
}

// Get returns one order rebuilt into combos and appetizers.
func (s *OrderService) Get(ctx context.Context, id uint) (*Ticket, error) {
	var order model.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, translate(err, "order")
	}
	tickets, err := loadTickets(s.db.WithContext(ctx), []ticketRow{{Order: order}})
	if err != nil {
		return nil, err
	}
	return &tickets[0], nil
}
