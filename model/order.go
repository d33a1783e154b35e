package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	PlacedAt time.Time       `json:"placed_at" gorm:"not null;index"`
	Cost     decimal.Decimal `json:"cost" gorm:"type:decimal(10,2);not null"`
}

type FoodRole string

const (
	RoleEntree FoodRole = "entree"
	RoleSide   FoodRole = "side"
)

// OrderSizeSelection and OrderFoodSelection share ComboIndex so a combo's entrees and
// sides stay attached to the size they were ordered in.
type OrderSizeSelection struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	OrderID    uint `json:"order_id" gorm:"not null;index"`
	SizeID     uint `json:"size_id" gorm:"not null"`
	ComboIndex int  `json:"combo_index"`
}

type OrderFoodSelection struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null;index"`
	FoodID     uint     `json:"food_id" gorm:"not null;index"`
	Role       FoodRole `json:"role" gorm:"size:10;not null"`
	ComboIndex int      `json:"combo_index"`
}

type OrderAppetizerDrink struct {
	ID               uint `json:"id" gorm:"primaryKey"`
	OrderID          uint `json:"order_id" gorm:"not null;index"`
	AppetizerDrinkID uint `json:"appetizer_drink_id" gorm:"not null"`
}

func (OrderAppetizerDrink) TableName() string {
	return "order_to_appetizer_drink"
}

type KitchenStatus string

const (
	StatusInProgress KitchenStatus = "in-progress"
	StatusCompleted  KitchenStatus = "completed"
)

type OrderStatus struct {
	OrderID     uint          `json:"order_id" gorm:"primaryKey;autoIncrement:false"`
	Status      KitchenStatus `json:"status" gorm:"size:16;not null;index"`
	CompletedAt *time.Time    `json:"completed_at"`
}
