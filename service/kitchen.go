package service

import (
	"context"
	"time"

	"pos/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	currentTicketLimit = 20
	pastTicketLimit    = 50
)

type KitchenService struct {
	db    *gorm.DB
	clock Clock
}

func NewKitchenService(db *gorm.DB, clock Clock) *KitchenService {
	return &KitchenService{db: db, clock: clock}
}

type KitchenBoard struct {
	Current []Ticket `json:"current"`
	Past    []Ticket `json:"past"`
}

// EnsureInitialized gives every order placed today an in-progress status row if it has
// none yet. It is safe to call any number of times and returns how many rows it added.
func (s *KitchenService) EnsureInitialized(ctx context.Context) (int64, error) {
	_, start, end := s.clock.Today()
	db := s.db.WithContext(ctx)

	var ids []uint
	err := db.Model(&model.Order{}).
		Where("placed_at >= ? AND placed_at < ?", start.UTC(), end.UTC()).
		Where("NOT EXISTS (SELECT 1 FROM order_statuses st WHERE st.order_id = orders.id)").
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, err
	}

	statuses := make([]model.OrderStatus, 0, len(ids))
	for _, id := range ids {
		statuses = append(statuses, model.OrderStatus{OrderID: id, Status: model.StatusInProgress})
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses)
	return res.RowsAffected, res.Error
}

func (s *KitchenService) Complete(ctx context.Context, orderID uint) (*model.OrderStatus, error) {
	now := s.clock.now().UTC()
	return s.setStatus(ctx, orderID, model.StatusCompleted, &now)
}

func (s *KitchenService) MarkIncomplete(ctx context.Context, orderID uint) (*model.OrderStatus, error) {
	return s.setStatus(ctx, orderID, model.StatusInProgress, nil)
}

func (s *KitchenService) setStatus(ctx context.Context, orderID uint, status model.KitchenStatus, completedAt *time.Time) (*model.OrderStatus, error) {
	db := s.db.WithContext(ctx)

	var order model.Order
	if err := db.Select("id").First(&order, orderID).Error; err != nil {
		return nil, translate(err, "order")
	}

	row := model.OrderStatus{OrderID: orderID, Status: status, CompletedAt: completedAt}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "completed_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Remake re-fires an order as a fresh ticket: a new order with the same cost and copies
// of every selection row. The status row is not copied.
func (s *KitchenService) Remake(ctx context.Context, orderID uint) (*model.Order, error) {
	var remade model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src model.Order
		if err := tx.First(&src, orderID).Error; err != nil {
			return translate(err, "order")
		}

		remade = model.Order{PlacedAt: s.clock.now().UTC(), Cost: src.Cost}
		if err := tx.Create(&remade).Error; err != nil {
			return err
		}

		var sizes []model.OrderSizeSelection
		if err := tx.Where("order_id = ?", src.ID).Order("id").Find(&sizes).Error; err != nil {
			return err
		}
		for i := range sizes {
			sizes[i].ID = 0
			sizes[i].OrderID = remade.ID
		}
		if len(sizes) > 0 {
			if err := tx.Create(&sizes).Error; err != nil {
				return err
			}
		}

		var foods []model.OrderFoodSelection
		if err := tx.Where("order_id = ?", src.ID).Order("id").Find(&foods).Error; err != nil {
			return err
		}
		for i := range foods {
			foods[i].ID = 0
			foods[i].OrderID = remade.ID
		}
		if len(foods) > 0 {
			if err := tx.Create(&foods).Error; err != nil {
				return err
			}
		}

		var extras []model.OrderAppetizerDrink
		if err := tx.Where("order_id = ?", src.ID).Order("id").Find(&extras).Error; err != nil {
			return err
		}
		for i := range extras {
			extras[i].ID = 0
			extras[i].OrderID = remade.ID
		}
		if len(extras) > 0 {
			if err := tx.Create(&extras).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &remade, nil
}

// ListOrders initializes missing status rows, then returns today's in-progress tickets
// oldest first and today's completed tickets most recently completed first.
func (s *KitchenService) ListOrders(ctx context.Context) (*KitchenBoard, error) {
	if _, err := s.EnsureInitialized(ctx); err != nil {
		return nil, err
	}
	_, start, end := s.clock.Today()
	db := s.db.WithContext(ctx)

	board := &KitchenBoard{}
	var err error
	board.Current, err = s.tickets(db, start, end, model.StatusInProgress, "o.placed_at ASC, o.id ASC", currentTicketLimit)
	if err != nil {
		return nil, err
	}
	board.Past, err = s.tickets(db, start, end, model.StatusCompleted, "st.completed_at DESC, o.id DESC", pastTicketLimit)
	if err != nil {
		return nil, err
	}
	return board, nil
}

func (s *KitchenService) tickets(db *gorm.DB, start, end time.Time, status model.KitchenStatus, order string, limit int) ([]Ticket, error) {
	var rows []ticketRow
	err := db.Table("orders AS o").
		Select("o.id, o.placed_at, o.cost, st.status, st.completed_at").
		Joins("JOIN order_statuses st ON st.order_id = o.id").
		Where("o.placed_at >= ? AND o.placed_at < ?", start.UTC(), end.UTC()).
		Where("st.status = ?", status).
		Order(order).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return loadTickets(db, rows)
}
