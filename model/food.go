package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Food is an entree or a side; both live in the same table and IsSide tells them apart.
type Food struct {
	gorm.Model
	Name    string `json:"name" gorm:"size:120;index;not null"`
	Premium bool   `json:"premium"`
	IsSide  bool   `json:"is_side"`
	Enabled bool   `json:"enabled"`
}

type Size struct {
	gorm.Model
	Name            string          `json:"name" gorm:"size:120;index;not null"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	NumberOfEntrees int             `json:"number_of_entrees"`
	NumberOfSides   int             `json:"number_of_sides"`
	Enabled         bool            `json:"enabled"`
}

type ItemKind string

const (
	KindAppetizer ItemKind = "appetizer"
	KindDrink     ItemKind = "drink"
)

type AppetizerDrink struct {
	gorm.Model
	Name    string          `json:"name" gorm:"size:120;index;not null"`
	Price   decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Kind    ItemKind        `json:"kind" gorm:"size:16;not null"`
	Enabled bool            `json:"enabled"`
}

func (AppetizerDrink) TableName() string {
	return "appetizers_and_drinks"
}
