package service

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// findByName resolves a catalog or inventory row by case-insensitive name.
func findByName[T any](tx *gorm.DB, name string, what string) (*T, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("%s name is required", what)
	}
	var row T
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&row).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("%s %q", what, name))
	}
	return &row, nil
}

// insertOrFind inserts row unless a live row with the same case-insensitive name already
// exists, in which case that row is returned with existed set. Concurrent inserts of one
// name settle on a single row through the unique LOWER(name) index.
func insertOrFind[T any](tx *gorm.DB, row *T, name, what string) (*T, bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return row, false, nil
	}
	existing, err := findByName[T](tx, name, what)
	if err != nil {
		return nil, false, err
	}
	return existing, true, nil
}
