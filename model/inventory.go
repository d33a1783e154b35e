package model

import "gorm.io/gorm"

const (
	StatusRunningLow = "Running Low"
	StatusLow        = "Low"
	StatusInStock    = "In Stock"

	runningLowThreshold = 10
	lowThreshold        = 50
)

type InventoryItem struct {
	gorm.Model
	Name     string `json:"name" gorm:"size:120;index;not null"`
	Quantity int    `json:"quantity"`
}

// InventoryStatus is never stored; it is derived from the quantity on every read.
func InventoryStatus(quantity int) string {
	switch {
	case quantity <= runningLowThreshold:
		return StatusRunningLow
	case quantity <= lowThreshold:
		return StatusLow
	default:
		return StatusInStock
	}
}

type FoodInventory struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	FoodID      uint `json:"food_id" gorm:"not null;uniqueIndex:idx_food_inventory"`
	InventoryID uint `json:"inventory_id" gorm:"not null;uniqueIndex:idx_food_inventory"`
	ServingSize int  `json:"serving_size" gorm:"not null"`
}

func (FoodInventory) TableName() string {
	return "food_to_inventory"
}

// SizeFood declares which entrees and sides may be chosen within a size.
type SizeFood struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	SizeID uint `json:"size_id" gorm:"not null;uniqueIndex:idx_size_food"`
	FoodID uint `json:"food_id" gorm:"not null;uniqueIndex:idx_size_food"`
}

func (SizeFood) TableName() string {
	return "size_to_food"
}
