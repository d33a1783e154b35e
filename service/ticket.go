package service

import (
	"sort"
	"strings"
	"time"

	"pos/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TicketCombo struct {
	Size    string   `json:"size"`
	Entrees []string `json:"entrees"`
	Sides   []string `json:"sides"`
}

// Ticket is an order rebuilt from its selection rows for display.
type Ticket struct {
	ID          uint                `json:"id"`
	PlacedAt    time.Time           `json:"placed_at"`
	Cost        decimal.Decimal     `json:"cost"`
	Status      model.KitchenStatus `json:"status,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	SizeLabel   string              `json:"size"`
	Entrees     []string            `json:"entrees"`
	Sides       []string            `json:"sides"`
	Appetizers  []string            `json:"appetizers"`
	Combos      []TicketCombo       `json:"combos"`
}

type ticketRow struct {
	model.Order
	Status      model.KitchenStatus
	CompletedAt *time.Time
}

type sizeLine struct {
	OrderID    uint
	ComboIndex int
	Name       string
}

type foodLine struct {
	OrderID    uint
	ComboIndex int
	Role       model.FoodRole
	Name       string
}

type extraLine struct {
	OrderID uint
	Name    string
}

// loadTickets fetches the selections of all given orders with three queries and groups
// them per order and combo. Names resolve even for soft-deleted catalog rows.
func loadTickets(db *gorm.DB, rows []ticketRow) ([]Ticket, error) {
	if len(rows) == 0 {
		return []Ticket{}, nil
	}
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	var sizes []sizeLine
	if err := db.Table("order_size_selections AS s").
		Select("s.order_id, s.combo_index, sz.name").
		Joins("JOIN sizes sz ON sz.id = s.size_id").
		Where("s.order_id IN ?", ids).
		Order("s.order_id, s.combo_index, s.id").
		Scan(&sizes).Error; err != nil {
		return nil, err
	}

	var foods []foodLine
	if err := db.Table("order_food_selections AS f").
		Select("f.order_id, f.combo_index, f.role, fd.name").
		Joins("JOIN foods fd ON fd.id = f.food_id").
		Where("f.order_id IN ?", ids).
		Order("f.order_id, f.combo_index, f.id").
		Scan(&foods).Error; err != nil {
		return nil, err
	}

	var extras []extraLine
	if err := db.Table("order_to_appetizer_drink AS a").
		Select("a.order_id, ad.name").
		Joins("JOIN appetizers_and_drinks ad ON ad.id = a.appetizer_drink_id").
		Where("a.order_id IN ?", ids).
		Order("a.order_id, a.id").
		Scan(&extras).Error; err != nil {
		return nil, err
	}

	combos := make(map[uint]map[int]*TicketCombo, len(rows))
	combo := func(orderID uint, idx int) *TicketCombo {
		byIdx, ok := combos[orderID]
		if !ok {
			byIdx = make(map[int]*TicketCombo)
			combos[orderID] = byIdx
		}
		c, ok := byIdx[idx]
		if !ok {
			c = &TicketCombo{Entrees: []string{}, Sides: []string{}}
			byIdx[idx] = c
		}
		return c
	}
	for _, s := range sizes {
		combo(s.OrderID, s.ComboIndex).Size = s.Name
	}
	for _, f := range foods {
		c := combo(f.OrderID, f.ComboIndex)
		if f.Role == model.RoleSide {
			c.Sides = append(c.Sides, f.Name)
		} else {
			c.Entrees = append(c.Entrees, f.Name)
		}
	}
	appetizers := make(map[uint][]string)
	for _, e := range extras {
		appetizers[e.OrderID] = append(appetizers[e.OrderID], e.Name)
	}

	tickets := make([]Ticket, 0, len(rows))
	for _, r := range rows {
		t := Ticket{
			ID:          r.ID,
			PlacedAt:    r.PlacedAt,
			Cost:        r.Cost,
			Status:      r.Status,
			CompletedAt: r.CompletedAt,
			Entrees:     []string{},
			Sides:       []string{},
			Appetizers:  []string{},
			Combos:      []TicketCombo{},
		}
		if a, ok := appetizers[r.ID]; ok {
			t.Appetizers = a
		}

		byIdx := combos[r.ID]
		keys := make([]int, 0, len(byIdx))
		for k := range byIdx {
			keys = append(keys, k)
		}
		sort.Ints(keys)

		labels := make([]string, 0, len(keys))
		for _, k := range keys {
			c := byIdx[k]
			t.Combos = append(t.Combos, *c)
			t.Entrees = append(t.Entrees, c.Entrees...)
			t.Sides = append(t.Sides, c.Sides...)
			if c.Size != "" {
				labels = append(labels, c.Size)
			}
		}
		t.SizeLabel = strings.Join(labels, ", ")
		tickets = append(tickets, t)
	}
	return tickets, nil
}
